package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/llm"
)

// GeminiProvider implements the Google Generative Language generateContent
// API. The credential travels as a URL query parameter, not a header.
type GeminiProvider struct{}

func init() {
	llm.RegisterProvider(&GeminiProvider{})
}

// Name returns the provider identifier.
func (g *GeminiProvider) Name() string {
	return "gemini"
}

// BuildURL constructs the per-model generateContent endpoint with the key
// attached as a query parameter.
func (g *GeminiProvider) BuildURL(baseURL, model, apiKey string) string {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s", baseURL, model, url.QueryEscape(apiKey))
}

// SetHeaders is a no-op beyond Content-Type; Gemini authenticates via URL.
func (g *GeminiProvider) SetHeaders(_ *http.Request, _ string) {}

// generateRequest is the generateContent request format.
type generateRequest struct {
	Contents          []geminiContent   `json:"contents"`
	SystemInstruction *geminiContent    `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

// BuildRequestBody creates the generateContent request body. wantJSON maps
// to responseMimeType application/json.
func (g *GeminiProvider) BuildRequestBody(_, system, prompt string, wantJSON bool) ([]byte, error) {
	req := generateRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	}
	if system != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}
	if wantJSON {
		req.GenerationConfig = &generationConfig{ResponseMimeType: "application/json"}
	}

	return json.Marshal(req)
}

// generateResponse is the generateContent response format.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// ParseResponse joins the text parts of the first candidate.
func (g *GeminiProvider) ParseResponse(body []byte) (string, error) {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse gemini response: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
