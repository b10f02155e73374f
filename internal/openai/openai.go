package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/aceyai/acey-backend/internal/providers"
)

// OpenAI is a provider for OpenAI
type OpenAI struct{}

// New returns a new OpenAI provider
func New() *OpenAI {
	return &OpenAI{}
}

// GenerateText generates a text completion for the given prompt using OpenAI
func (o *OpenAI) GenerateText(ctx context.Context, config providers.Config) (string, error) {
	content := []map[string]interface{}{
		{"type": "text", "text": config.Prompt},
	}
	return o.complete(ctx, config, content)
}

// AnalyzeImage sends an image plus prompt to a vision-capable OpenAI model
func (o *OpenAI) AnalyzeImage(ctx context.Context, config providers.Config) (string, error) {
	if len(config.ImageData) == 0 {
		return "", fmt.Errorf("no image data provided")
	}
	mime := config.ImageMIME
	if mime == "" {
		mime = "jpeg"
	}
	dataURL := fmt.Sprintf("data:image/%s;base64,%s", mime, base64.StdEncoding.EncodeToString(config.ImageData))
	content := []map[string]interface{}{
		{"type": "text", "text": config.Prompt},
		{"type": "image_url", "image_url": map[string]string{"url": dataURL}},
	}
	return o.complete(ctx, config, content)
}

func (o *OpenAI) complete(ctx context.Context, config providers.Config, content []map[string]interface{}) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	url := "https://api.openai.com/v1/chat/completions"

	requestBody, err := json.Marshal(map[string]interface{}{
		"model": config.Model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": content,
			},
		},
		"temperature": config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("openai rate limited: %w", providers.ErrQuotaExhausted)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI")
	}

	return response.Choices[0].Message.Content, nil
}
