package gateway

import (
	"github.com/sony/gobreaker/v2"

	"nextchapter/internal/config"
	"nextchapter/internal/errors"
)

// Breaker wraps gateway requests with circuit breaker protection so a
// misbehaving backend stops receiving traffic for a cool-down period.
type Breaker struct {
	cb *gobreaker.CircuitBreaker[*httpResult]
}

// NewBreaker creates a circuit breaker for gateway calls. Returns nil when
// the breaker is disabled; a nil Breaker executes calls directly.
func NewBreaker(cfg *config.CircuitBreakerConfig, logger *errors.Logger) *Breaker {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        "gateway",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests &&
				failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger != nil {
				logger.Info("Circuit breaker state changed",
					"name", name,
					"from", from.String(),
					"to", to.String(),
					"max_requests", cfg.MaxRequests,
					"failure_threshold", cfg.FailureThreshold)
			}
		},
	}

	return &Breaker{
		cb: gobreaker.NewCircuitBreaker[*httpResult](settings),
	}
}

// Execute executes the provided function with circuit breaker protection
func (b *Breaker) Execute(fn func() (*httpResult, error)) (*httpResult, error) {
	if b == nil || b.cb == nil {
		return fn()
	}

	result, err := b.cb.Execute(fn)
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil, errors.NewGatewayError(errors.ErrCodeCircuitOpen,
			"Gateway circuit breaker is open", err)
	}
	return result, err
}

// GetStats returns circuit breaker statistics
func (b *Breaker) GetStats() map[string]any {
	if b == nil || b.cb == nil {
		return map[string]any{
			"enabled": false,
		}
	}

	return map[string]any{
		"name":    b.cb.Name(),
		"state":   b.cb.State().String(),
		"counts":  b.cb.Counts(),
		"enabled": true,
	}
}

// IsHealthy returns true if the circuit breaker is in closed state
func (b *Breaker) IsHealthy() bool {
	if b == nil || b.cb == nil {
		return true
	}
	return b.cb.State() == gobreaker.StateClosed
}
