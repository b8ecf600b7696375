package api

import (
	"net/http"
)

func (h *Handler) handlePreset(w http.ResponseWriter, r *http.Request) {
	p := h.portrait.Preset()

	writeJson(w, Preset{
		Model:  p.Model,
		Prompt: p.Prompt,

		LoRA: p.LoRA,

		Outputs:     p.Outputs,
		AspectRatio: p.AspectRatio,

		Format:  p.Format,
		Quality: p.Quality,

		Guidance: p.Guidance,
		Strength: p.Strength,
		Steps:    p.Steps,

		Conditioning: p.Conditioning,
	})
}
