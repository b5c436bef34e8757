package llm

import (
	"context"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"
)

// Messager is the slice of the Anthropic SDK the client depends on
type Messager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// AnthropicClient sends prompts to the Anthropic Messages API
type AnthropicClient struct {
	messages     Messager
	model        string
	systemPrompt string
	temperature  float64
	maxTokens    int
	rateLimiter  *rate.Limiter
}

// NewAnthropicClient creates a client using the SDK's default transport
func NewAnthropicClient(cfg Config) *AnthropicClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	c := anthropic.NewClient(opts...)
	return newAnthropicClient(&c.Messages, cfg)
}

func newAnthropicClient(messages Messager, cfg Config) *AnthropicClient {
	return &AnthropicClient{
		messages:     messages,
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,
		temperature:  cfg.Temperature,
		maxTokens:    cfg.MaxTokens,
		rateLimiter:  newLimiter(cfg.RequestsPerSecond),
	}
}

// Name returns the provider name
func (c *AnthropicClient) Name() string { return ProviderAnthropic }

// Complete sends a single user message and concatenates the text blocks of the reply
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := waitLimiter(ctx, c.rateLimiter); err != nil {
		return "", err
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(c.maxTokens),
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(c.temperature),
	}
	if c.systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: c.systemPrompt}}
	}

	resp, err := c.messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
