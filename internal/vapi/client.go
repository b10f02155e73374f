package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the Vapi REST API endpoint.
const DefaultBaseURL = "https://api.vapi.ai"

// Client represents a Vapi API client
type Client struct {
	BaseURL    string
	APIKey     string
	httpClient *http.Client
}

// TranscriberConfig configures speech-to-text for the assistant.
type TranscriberConfig struct {
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
	Language string `json:"language,omitempty"`
}

// Message is one entry of the assistant's model message list.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ModelConfig configures the LLM behind the assistant.
type ModelConfig struct {
	Provider string    `json:"provider"`
	Model    string    `json:"model"`
	Messages []Message `json:"messages,omitempty"`
}

// VoiceConfig configures text-to-speech for the assistant.
type VoiceConfig struct {
	Provider string `json:"provider"`
	VoiceID  string `json:"voiceId"`
}

// AssistantRequest is the payload for creating an assistant.
type AssistantRequest struct {
	Name         string             `json:"name"`
	Transcriber  *TranscriberConfig `json:"transcriber,omitempty"`
	Model        *ModelConfig       `json:"model,omitempty"`
	Voice        *VoiceConfig       `json:"voice,omitempty"`
	FirstMessage string             `json:"firstMessage,omitempty"`
	ServerURL    string             `json:"serverUrl,omitempty"`
}

// Assistant is the platform's record of a configured voice assistant.
type Assistant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// NewClient creates a new Vapi client
func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		APIKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateAssistant registers a new assistant configuration with Vapi and
// returns the platform-issued assistant.
func (c *Client) CreateAssistant(ctx context.Context, req AssistantRequest) (*Assistant, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal assistant request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/assistant", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call Vapi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("vapi API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var assistant Assistant
	if err := json.NewDecoder(resp.Body).Decode(&assistant); err != nil {
		return nil, fmt.Errorf("failed to decode assistant response: %w", err)
	}

	if assistant.ID == "" {
		return nil, fmt.Errorf("vapi returned an assistant without an id")
	}

	return &assistant, nil
}
