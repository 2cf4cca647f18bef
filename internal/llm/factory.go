package llm

import (
	"fmt"

	"github.com/Veraticus/the-receipts-must-flow/internal/common"
)

// NewClient creates an LLM client based on the provider configuration.
func NewClient(cfg Config) (Client, error) {
	var (
		client Client
		err    error
	)

	switch cfg.Provider {
	case "openai":
		client, err = newOpenAIClient(cfg)
	case "anthropic":
		client, err = newAnthropicClient(cfg)
	case "":
		return nil, fmt.Errorf("%w: llm provider not set", common.ErrMissingConfig)
	default:
		return nil, fmt.Errorf("%w: unsupported llm provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RateLimit > 0 {
		client = newRateLimitedClient(client, cfg.RateLimit)
	}
	return client, nil
}
