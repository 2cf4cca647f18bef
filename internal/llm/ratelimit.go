package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// rateLimitedClient wraps a Client with a token-bucket request limiter so
// batch runs stay under provider rate limits.
type rateLimitedClient struct {
	inner   Client
	limiter *rate.Limiter
}

func newRateLimitedClient(inner Client, requestsPerSecond int) Client {
	return &rateLimitedClient{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

func (c *rateLimitedClient) ClassifyExpense(ctx context.Context, req ExpenseRequest) (ClassificationResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return ClassificationResponse{}, fmt.Errorf("rate limit wait: %w", err)
	}
	return c.inner.ClassifyExpense(ctx, req)
}
