package otel

import (
	"context"
	"time"

	"github.com/adrianliechti/portrait/pkg/provider"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/semconv/v1.38.0/genaiconv"
)

type Renderer interface {
	Observable
	provider.Renderer
}

type observableRenderer struct {
	model    string
	provider string

	renderer provider.Renderer

	operationDurationMetric genaiconv.ClientOperationDuration
}

func NewRenderer(provider, model string, p provider.Renderer) Renderer {
	meter := otel.Meter(instrumentationName)

	operationDurationMetric, _ := genaiconv.NewClientOperationDuration(meter)

	return &observableRenderer{
		renderer: p,

		model:    model,
		provider: provider,

		operationDurationMetric: operationDurationMetric,
	}
}

func (p *observableRenderer) otelSetup() {
}

func (p *observableRenderer) Render(ctx context.Context, input string, options *provider.RenderOptions) (*provider.Rendering, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "render "+p.model)
	defer span.End()

	span.SetAttributes(EndUserAttrs(ctx)...)
	span.SetAttributes(renderAttrs(options)...)

	timestamp := time.Now()

	result, err := p.renderer.Render(ctx, input, options)

	duration := time.Since(timestamp).Seconds()

	attrs := []attribute.KeyValue{
		p.operationDurationMetric.AttrRequestModel(p.model),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		attrs = append(attrs, attribute.String("error.type", "provider_error"))
	}

	if result != nil {
		model := p.model

		if result.Model != "" {
			model = result.Model
		}

		span.SetAttributes(attribute.String("gen_ai.response.id", result.ID))

		attrs = append(attrs, p.operationDurationMetric.AttrResponseModel(model))
	}

	p.operationDurationMetric.Record(ctx, duration,
		genaiconv.OperationNameGenerateContent,
		genaiconv.ProviderNameAttr(p.provider),
		attrs...,
	)

	return result, err
}

func renderAttrs(options *provider.RenderOptions) []attribute.KeyValue {
	if options == nil {
		return nil
	}

	attrs := []attribute.KeyValue{
		attribute.Int("portrait.images", len(options.Images)),
	}

	if options.Adapter != "" {
		attrs = append(attrs, attribute.String("portrait.lora", options.Adapter))
	}

	if options.AspectRatio != "" {
		attrs = append(attrs, attribute.String("portrait.aspect_ratio", options.AspectRatio))
	}

	if options.Steps > 0 {
		attrs = append(attrs, attribute.Int("portrait.steps", options.Steps))
	}

	return attrs
}
