package llm

import (
	"net/http"
	"sync"
)

// Provider defines the wire format of one LLM API.
type Provider interface {
	// Name returns the provider identifier (e.g., "openrouter", "gemini").
	Name() string

	// BuildURL constructs the full endpoint URL. Providers that carry the
	// credential in the URL (Gemini) consume apiKey here.
	BuildURL(baseURL, model, apiKey string) string

	// SetHeaders adds provider-specific headers, including bearer auth
	// where the provider uses it.
	SetHeaders(req *http.Request, apiKey string)

	// BuildRequestBody creates the JSON request body. system may be empty.
	// wantJSON asks the provider to emit structured JSON; it is a hint and
	// callers must not rely on it being honored.
	BuildRequestBody(model, system, prompt string, wantJSON bool) ([]byte, error)

	// ParseResponse extracts the completion text from the provider's JSON.
	// An empty string with nil error means the provider succeeded but
	// produced nothing usable.
	ParseResponse(body []byte) (string, error)
}

// providerRegistry holds registered providers.
var (
	providerRegistry = make(map[string]Provider)
	providerMu       sync.RWMutex
)

// RegisterProvider adds a provider to the registry.
func RegisterProvider(p Provider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	providerRegistry[p.Name()] = p
}

// GetProvider retrieves a provider by name.
func GetProvider(name string) Provider {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return providerRegistry[name]
}

// ListProviders returns all registered provider names.
func ListProviders() []string {
	providerMu.RLock()
	defer providerMu.RUnlock()

	names := make([]string, 0, len(providerRegistry))
	for name := range providerRegistry {
		names = append(names, name)
	}
	return names
}
