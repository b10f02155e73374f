package providers

import (
	"context"
	"errors"
	"strings"
)

// ErrQuotaExhausted indicates the upstream LLM rejected the call because the
// API quota is spent. Handlers use this to trip the per-session rate limit.
var ErrQuotaExhausted = errors.New("provider quota exhausted")

// Config represents a single request to an LLM provider
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
	ImageData   []byte // optional, for vision requests
	ImageMIME   string // e.g. "jpeg", "png"
}

// Provider defines the interface for an LLM provider
type Provider interface {
	GenerateText(ctx context.Context, config Config) (string, error)
	AnalyzeImage(ctx context.Context, config Config) (string, error)
}

// IsQuotaErr reports whether err looks like a quota or rate-limit rejection
// from any of the supported providers.
func IsQuotaErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQuotaExhausted) {
		return true
	}
	msg := err.Error()
	for _, marker := range []string{"429", "RESOURCE_EXHAUSTED", "quota", "rate limit", "rate_limit"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
