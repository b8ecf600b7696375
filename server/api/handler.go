package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/adrianliechti/portrait/pkg/portrait"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	portrait *portrait.Service
}

func New(service *portrait.Service) (*Handler, error) {
	h := &Handler{
		portrait: service,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Get("/preset", h.handlePreset)
	r.Post("/generate", h.handleGenerate)
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, err error) {
	slog.ErrorContext(r.Context(), "error generating image", "status", code, "error", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	text := http.StatusText(code)

	if err != nil {
		text = err.Error()
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(ErrorResponse{
		Error: text,
	})
}
