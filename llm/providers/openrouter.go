// Package providers registers the concrete LLM wire formats with the llm
// provider registry via init().
package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/llm"
)

// OpenRouterProvider implements the OpenAI-compatible chat completions API
// served by OpenRouter.
type OpenRouterProvider struct{}

func init() {
	llm.RegisterProvider(&OpenRouterProvider{})
}

// Name returns the provider identifier.
func (o *OpenRouterProvider) Name() string {
	return "openrouter"
}

// BuildURL constructs the chat completions endpoint.
func (o *OpenRouterProvider) BuildURL(baseURL, _, _ string) string {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	if strings.HasSuffix(baseURL, "/chat/completions") {
		return baseURL
	}
	return baseURL + "/chat/completions"
}

// SetHeaders adds bearer auth and the OpenRouter attribution headers.
func (o *OpenRouterProvider) SetHeaders(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("X-Title", "ArguMate")
}

// chatRequest is the OpenAI-compatible request format.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// BuildRequestBody creates the chat completions request body. wantJSON maps
// to response_format json_object; downstream normalization never relies on
// the provider honoring it.
func (o *OpenRouterProvider) BuildRequestBody(model, system, prompt string, wantJSON bool) ([]byte, error) {
	var messages []chatMessage
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	req := chatRequest{
		Model:    model,
		Messages: messages,
	}
	if wantJSON {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	return json.Marshal(req)
}

// chatResponse is the OpenAI-compatible response format.
type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// ParseResponse extracts the assistant message content. A response with no
// choices yields an empty string, which the client reports as an empty
// completion.
func (o *OpenRouterProvider) ParseResponse(body []byte) (string, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse openrouter response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
