package gemini

import (
	"context"
	"fmt"
	"os"

	"github.com/aceyai/acey-backend/internal/providers"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini is a provider for Google Gemini
type Gemini struct{}

// New returns a new Gemini provider
func New() *Gemini {
	return &Gemini{}
}

// GenerateText generates a text completion for the given prompt using Gemini
func (g *Gemini) GenerateText(ctx context.Context, config providers.Config) (string, error) {
	return g.generate(ctx, config, genai.Text(config.Prompt))
}

// AnalyzeImage sends an image plus prompt to a vision-capable Gemini model
func (g *Gemini) AnalyzeImage(ctx context.Context, config providers.Config) (string, error) {
	if len(config.ImageData) == 0 {
		return "", fmt.Errorf("no image data provided")
	}
	format := config.ImageMIME
	if format == "" {
		format = "jpeg"
	}
	return g.generate(ctx, config, genai.ImageData(format, config.ImageData), genai.Text(config.Prompt))
}

func (g *Gemini) generate(ctx context.Context, config providers.Config, parts ...genai.Part) (string, error) {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GOOGLE_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(config.Model)
	model.SetTemperature(float32(config.Temperature))

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		if providers.IsQuotaErr(err) {
			return "", fmt.Errorf("gemini quota exhausted: %w", providers.ErrQuotaExhausted)
		}
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty content returned from Gemini")
	}

	if txt, ok := candidate.Content.Parts[0].(genai.Text); ok {
		return string(txt), nil
	}

	return "", fmt.Errorf("unexpected response format from Gemini")
}
