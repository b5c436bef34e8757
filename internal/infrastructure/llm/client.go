package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shoplens/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Supported providers
const (
	ProviderOpenAI    = "openai"
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Default endpoints and models per provider
const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultGroqBaseURL   = "https://api.groq.com/openai/v1"
	DefaultOllamaBaseURL = "http://localhost:11434"

	DefaultOpenAIModel    = "gpt-3.5-turbo"
	DefaultGroqModel      = "mixtral-8x7b-32768"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
	DefaultOllamaModel    = "llama2"
)

// ErrUnknownProvider is returned for a provider name this package has no adapter for
var ErrUnknownProvider = errors.New("unknown model provider")

// Config selects and configures a model backend
type Config struct {
	Provider          string
	APIKey            string
	Model             string
	BaseURL           string
	SystemPrompt      string
	Temperature       float64
	MaxTokens         int
	Timeout           time.Duration
	RequestsPerSecond float64
}

// New builds the Completer for cfg.Provider
func New(cfg Config) (domain.Completer, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}

	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI:
		return NewOpenAIClient(ProviderOpenAI, withDefaults(cfg, DefaultOpenAIBaseURL, DefaultOpenAIModel)), nil
	case ProviderGroq:
		return NewOpenAIClient(ProviderGroq, withDefaults(cfg, DefaultGroqBaseURL, DefaultGroqModel)), nil
	case ProviderAnthropic:
		return NewAnthropicClient(withDefaults(cfg, "", DefaultAnthropicModel)), nil
	case ProviderOllama:
		return NewOllamaClient(withDefaults(cfg, DefaultOllamaBaseURL, DefaultOllamaModel)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

func withDefaults(cfg Config, baseURL, model string) Config {
	if cfg.BaseURL == "" {
		cfg.BaseURL = baseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = model
	}
	return cfg
}

// newLimiter returns nil when requestsPerSecond is not positive (unthrottled)
func newLimiter(requestsPerSecond float64) *rate.Limiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

func waitLimiter(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return nil
	}
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}
	return nil
}
