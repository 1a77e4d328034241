package llm

import (
	"VaultMind/backend/go/internal/analysis/interfaces"
	"VaultMind/backend/go/internal/analysis/schema"
	"context"

	"VaultMind/backend/go/pkg/circuitbreaker"
)

// BreakerClient wraps an LLM client with a circuit breaker so that a
// provider outage fails parallel prompt tasks fast instead of letting every
// task run into its own timeout.
type BreakerClient struct {
	inner   interfaces.LLM
	breaker circuitbreaker.CircuitBreaker
}

// NewBreakerClient wraps the given client with the circuit breaker.
func NewBreakerClient(inner interfaces.LLM, breaker circuitbreaker.CircuitBreaker) *BreakerClient {
	return &BreakerClient{inner: inner, breaker: breaker}
}

// Generate delegates to the wrapped client under the circuit breaker.
func (c *BreakerClient) Generate(ctx context.Context, req *schema.GenerateRequest) (*schema.GenerateResult, error) {
	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.inner.Generate(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return res.(*schema.GenerateResult), nil
}

// compile-time check to ensure BreakerClient implements the LLM interface
var _ interfaces.LLM = (*BreakerClient)(nil)
