package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adrianliechti/portrait/pkg/portrait"
)

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest

	// an unreadable body is treated the same as a missing image
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, portrait.ErrMissingImage)
		return
	}

	result, err := h.portrait.Generate(r.Context(), req.FaceImage)

	if err != nil {
		writeError(w, r, statusCode(err), err)
		return
	}

	writeJson(w, GenerateResponse{
		Output: result.URL,
	})
}

func statusCode(err error) int {
	var validationErr *portrait.ValidationError

	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
