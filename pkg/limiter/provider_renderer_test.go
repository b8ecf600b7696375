package limiter

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/adrianliechti/portrait/pkg/provider"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type countingRenderer struct {
	calls atomic.Int64
}

func (r *countingRenderer) Render(ctx context.Context, input string, options *provider.RenderOptions) (*provider.Rendering, error) {
	r.calls.Add(1)
	return &provider.Rendering{URL: "https://example.com/" + input}, nil
}

func TestRendererWithoutLimiter(t *testing.T) {
	p := &countingRenderer{}
	r := NewRenderer(nil, p)

	result, err := r.Render(context.Background(), "a", nil)
	require.NoError(t, err)
	require.Equal(t, "https://example.com/a", result.URL)
	require.Equal(t, int64(1), p.calls.Load())
}

func TestRendererCancelledWhileWaiting(t *testing.T) {
	p := &countingRenderer{}
	l := rate.NewLimiter(rate.Limit(0.001), 1)
	r := NewRenderer(l, p)

	_, err := r.Render(context.Background(), "a", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Render(ctx, "b", nil)
	require.Error(t, err)
	require.Equal(t, int64(1), p.calls.Load())
}
