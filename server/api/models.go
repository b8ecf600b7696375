package api

type GenerateRequest struct {
	FaceImage string `json:"faceImage"`
}

type GenerateResponse struct {
	Output string `json:"output"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Preset struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`

	LoRA string `json:"lora,omitempty"`

	Outputs     int    `json:"num_outputs"`
	AspectRatio string `json:"aspect_ratio"`

	Format  string `json:"output_format"`
	Quality int    `json:"output_quality"`

	Guidance float64 `json:"guidance_scale"`
	Strength float64 `json:"prompt_strength"`
	Steps    int     `json:"num_inference_steps"`

	Conditioning bool `json:"conditioning"`
}
