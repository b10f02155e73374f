package providers

import (
	"context"
	"time"

	"github.com/aceyai/acey-backend/internal/metrics"
)

// instrumented wraps a Provider and records request duration metrics.
type instrumented struct {
	inner Provider
}

// Instrument decorates a provider with Prometheus request timing.
func Instrument(p Provider) Provider {
	return &instrumented{inner: p}
}

func (i *instrumented) GenerateText(ctx context.Context, config Config) (string, error) {
	start := time.Now()
	text, err := i.inner.GenerateText(ctx, config)
	metrics.ProviderRequestDuration.WithLabelValues("text", statusLabel(err)).Observe(time.Since(start).Seconds())
	return text, err
}

func (i *instrumented) AnalyzeImage(ctx context.Context, config Config) (string, error) {
	start := time.Now()
	text, err := i.inner.AnalyzeImage(ctx, config)
	metrics.ProviderRequestDuration.WithLabelValues("vision", statusLabel(err)).Observe(time.Since(start).Seconds())
	return text, err
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
