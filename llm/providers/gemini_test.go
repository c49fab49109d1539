package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeminiBuildURLDefaultsBase(t *testing.T) {
	g := &GeminiProvider{}
	url := g.BuildURL("", "gemini-1.5-flash-latest", "my-key")
	assert.Equal(t,
		"https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash-latest:generateContent?key=my-key",
		url)
}

func TestGeminiBuildURLEscapesAPIKey(t *testing.T) {
	g := &GeminiProvider{}
	url := g.BuildURL("http://localhost:11434/v1beta", "gemini-1.5-flash-latest", "k&y+1%2")
	assert.Equal(t,
		"http://localhost:11434/v1beta/models/gemini-1.5-flash-latest:generateContent?key=k%26y%2B1%252",
		url)
}

func TestOpenRouterBuildURLIdempotentSuffix(t *testing.T) {
	o := &OpenRouterProvider{}
	assert.Equal(t, "http://localhost:11434/v1/chat/completions",
		o.BuildURL("http://localhost:11434/v1", "", ""))
	assert.Equal(t, "http://localhost:11434/v1/chat/completions",
		o.BuildURL("http://localhost:11434/v1/chat/completions", "", ""))
}
