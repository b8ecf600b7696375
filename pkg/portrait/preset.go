package portrait

import (
	"github.com/adrianliechti/portrait/pkg/provider"
	"github.com/adrianliechti/portrait/pkg/provider/replicate/lora"
)

const SunflowerPrompt = `A realistic outdoor portrait of a young Vietnamese woman standing next to tall and lush blooming wild sunflower bushes. The flowers are bright golden yellow, resembling large daisies with elongated petals and deep orange centers, surrounded by serrated green leaves. She wears a soft white-blue ao dai, gracefully holding a wide-brimmed conical hat (non la) in her hand, creating an elegant and harmonious look. Her straight shoulder-length hair frames her gentle face; her skin is bright, smooth, and healthy with a natural subtle closed-mouth smile. She stands gracefully beside a classic white bicycle, with a basket of freshly picked wild sunflowers in the wicker basket. The scene evokes a peaceful, nostalgic, and poetic atmosphere, recreating the natural beauty of wild sunflowers blooming along rustic country roads. Lighting: soft golden sunset light, natural backlighting, cinematic depth, warm gentle tones. Style: photorealistic, full-frame focus, high detail, professional photography, natural face proportions preserved, Vietnamese features, genuine expression, outdoor natural lighting`

// Preset is the fixed prompt and parameter set sent with every generation.
// It is passed by value; nothing in a request changes it.
type Preset struct {
	Model  string
	Prompt string

	LoRA string

	Outputs     int   
	AspectRatio string

	Format  string
	Quality int   

	Guidance float64
	Strength float64
	Steps    int    

	// Conditioning sends the uploaded face image to the model as its input image.
	Conditioning bool
}

func DefaultPreset() Preset {
	return Preset{
		Model:  lora.FluxDevLora,
		Prompt: SunflowerPrompt,

		LoRA: "alvdansen/frosting_lane_flux",

		Outputs:     1,
		AspectRatio: "3:4",

		Format:  "webp",
		Quality: 90,

		Guidance: 3.5,
		Strength: 0.8,
		Steps:    28,
	}
}

func (p Preset) renderOptions(images ...provider.File) *provider.RenderOptions {
	return &provider.RenderOptions{
		Images: images,

		Count:   p.Outputs,
		Adapter: p.LoRA,

		AspectRatio: p.AspectRatio,

		Format:  p.Format,
		Quality: p.Quality,

		Steps:    p.Steps,
		Guidance: p.Guidance,
		Strength: p.Strength,
	}
}
