// Package main implements a mock LLM server for offline development and e2e
// runs of the ArguMate backend. It serves both provider dialects the backend
// speaks — OpenAI-compatible /v1/chat/completions (OpenRouter) and Google
// /v1beta/models/{model}:generateContent (Gemini) — from JSON fixture files,
// routing by model name. No real provider credentials or network access are
// needed.
//
// Usage:
//
//	mock-llm -fixtures /path/to/fixtures -port 11434
//
// Fixture files are named by model with path separators replaced
// (e.g. "google-gemini-2.0-flash-001.json"). The file content is returned
// verbatim as the completion text, so fenced-JSON fixtures exercise the
// backend's fence stripping.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// --- OpenAI-compatible types (OpenRouter dialect) ---

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// --- Google generateContent types (Gemini dialect) ---

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content candidateContent `json:"content"`
}

type candidateContent struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// --- Server ---

type server struct {
	fixtures map[string]string // sanitized model name → completion text

	mu    sync.Mutex
	calls map[string]int // per-model call counts, for /stats
}

func newServer(fixtures map[string]string) *server {
	return &server{
		fixtures: fixtures,
		calls:    make(map[string]int),
	}
}

// lookup resolves the fixture for a model, counting the call.
func (s *server) lookup(model string) (string, bool) {
	s.mu.Lock()
	s.calls[model]++
	s.mu.Unlock()

	content, ok := s.fixtures[sanitizeModel(model)]
	return content, ok
}

func main() {
	fixtureDir := flag.String("fixtures", "", "directory containing fixture response files")
	port := flag.Int("port", 11434, "port to listen on")
	flag.Parse()

	if envDir := os.Getenv("MOCK_LLM_FIXTURES"); envDir != "" && *fixtureDir == "" {
		*fixtureDir = envDir
	}
	if *fixtureDir == "" {
		*fixtureDir = "fixtures"
	}

	fixtures, err := loadFixtures(*fixtureDir)
	if err != nil {
		log.Fatalf("Failed to load fixtures from %s: %v", *fixtureDir, err)
	}
	log.Printf("Loaded %d fixture(s) from %s", len(fixtures), *fixtureDir)
	for model := range fixtures {
		log.Printf("  model: %s", model)
	}

	s := newServer(fixtures)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/v1/chat/completions", s.handleChatCompletions)
	mux.HandleFunc("/v1beta/models/", s.handleGenerateContent)
	mux.HandleFunc("/stats", s.handleStats)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Mock LLM server listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleChatCompletions serves the OpenRouter dialect.
func (s *server) handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	content, ok := s.lookup(req.Model)
	if !ok {
		log.Printf("WARNING: no fixture for model=%q", req.Model)
		http.Error(w, fmt.Sprintf("no fixture for model %q", req.Model), http.StatusNotFound)
		return
	}
	log.Printf("chat/completions model=%s → %d bytes", req.Model, len(content))

	resp := chatResponse{
		ID:      fmt.Sprintf("mock-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []chatChoice{
			{
				Index:        0,
				Message:      chatMessage{Role: "assistant", Content: content},
				FinishReason: "stop",
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// handleGenerateContent serves the Gemini dialect. The model name sits in
// the path: /v1beta/models/{model}:generateContent.
func (s *server) handleGenerateContent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1beta/models/")
	model, _, ok := strings.Cut(rest, ":")
	if !ok {
		http.Error(w, "expected /v1beta/models/{model}:generateContent", http.StatusBadRequest)
		return
	}

	content, found := s.lookup(model)
	if !found {
		log.Printf("WARNING: no fixture for model=%q", model)
		http.Error(w, fmt.Sprintf("no fixture for model %q", model), http.StatusNotFound)
		return
	}
	log.Printf("generateContent model=%s → %d bytes", model, len(content))

	resp := generateResponse{
		Candidates: []candidate{
			{Content: candidateContent{Role: "model", Parts: []part{{Text: content}}}},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// handleStats returns per-model call counts for test assertions.
func (s *server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	callsByModel := make(map[string]int, len(s.calls))
	total := 0
	for model, n := range s.calls {
		callsByModel[model] = n
		total += n
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"total_calls":    total,
		"calls_by_model": callsByModel,
	})
}

// loadFixtures reads every .json file in dir into a model → content map,
// keyed by the filename without extension.
func loadFixtures(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	fixtures := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read fixture %s: %w", entry.Name(), err)
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		fixtures[name] = string(data)
	}

	if len(fixtures) == 0 {
		return nil, fmt.Errorf("no .json fixtures in %s", dir)
	}
	return fixtures, nil
}

// sanitizeModel maps a model identifier to a safe fixture filename stem:
// "google/gemini-2.0-flash-001" → "google-gemini-2.0-flash-001".
func sanitizeModel(model string) string {
	return strings.NewReplacer("/", "-", ":", "-").Replace(model)
}
