package provider

import (
	"context"
)

type Renderer interface {
	Render(ctx context.Context, input string, options *RenderOptions) (*Rendering, error)
}

type RenderOptions struct {
	Images []File

	Count int

	Adapter string

	AspectRatio string

	Format  string
	Quality int

	Steps    int
	Guidance float64
	Strength float64
}

type Rendering struct {
	ID    string
	Model string

	URL string
}
