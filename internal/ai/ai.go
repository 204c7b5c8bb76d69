// Package ai implements upstream model clients for code generation.
//
// Providers share a single HTTP client and differ only in how they build the
// request body, set auth headers, and locate the generated text in the
// response. The provider kind is inferred from the configured endpoint.
package ai

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/abhinavsaxena2308/codegen/internal/config"
)

const clientTimeout = 60 * time.Second

// defaultGeminiBase is the hosted Gemini API base URL.
const defaultGeminiBase = "https://generativelanguage.googleapis.com"

// Provider is an upstream text-generation model.
type Provider interface {
	// Name identifies the provider kind for logging.
	Name() string

	// Generate sends the model prompt upstream and returns the raw text
	// output. Any failure aborts the whole generation call.
	Generate(ctx context.Context, prompt string) (string, error)
}

// New builds a provider from config, or nil when no upstream model is
// configured. A nil provider is valid: the orchestrator substitutes a
// deterministic local fallback artifact, keeping the pipeline total.
func New(cfg *config.Config) Provider {
	apiKey := ""
	if cfg.APIKeyEnv != "" {
		apiKey = os.Getenv(cfg.APIKeyEnv)
	}

	endpoint := strings.TrimRight(cfg.ModelEndpoint, "/")
	if endpoint == "" {
		if apiKey == "" {
			return nil
		}
		endpoint = defaultGeminiBase
	}

	client := &http.Client{Timeout: clientTimeout}

	if isChatCompletions(endpoint) {
		return &chatProvider{
			endpoint:   endpoint,
			modelID:    cfg.ModelID,
			apiKey:     apiKey,
			httpClient: client,
		}
	}
	return &geminiProvider{
		base:       endpoint,
		modelID:    cfg.ModelID,
		apiKey:     apiKey,
		httpClient: client,
	}
}

// isChatCompletions reports whether the endpoint speaks the OpenAI-compatible
// chat-completions shape rather than the Gemini generateContent shape.
func isChatCompletions(endpoint string) bool {
	return strings.Contains(endpoint, "/chat/completions")
}
