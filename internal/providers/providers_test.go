package providers

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsQuotaErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "sentinel", err: ErrQuotaExhausted, want: true},
		{name: "wrapped sentinel", err: fmt.Errorf("call failed: %w", ErrQuotaExhausted), want: true},
		{name: "429 status", err: errors.New("googleapi: Error 429: Quota exceeded"), want: true},
		{name: "resource exhausted", err: errors.New("rpc error: code = RESOURCE_EXHAUSTED"), want: true},
		{name: "rate limit text", err: errors.New("openai: rate limit reached"), want: true},
		{name: "unrelated error", err: errors.New("connection refused"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsQuotaErr(tt.err); got != tt.want {
				t.Errorf("IsQuotaErr(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
