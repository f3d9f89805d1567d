package integration

import (
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/iliyamo/storage-booking/internal/utils"
)

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			utils.Logger.Warnf("circuit breaker %s: %s -> %s", name, from, to)
		},
	})
}

// guarded runs fn through cb.  An open breaker becomes an
// UnavailableError; provider errors are wrapped in ErrExternalService.
func guarded[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var zero T
	out, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, &UnavailableError{Service: cb.Name(), Reason: "temporarily unavailable"}
		}
		return zero, fmt.Errorf("%s: %w: %v", cb.Name(), ErrExternalService, err)
	}
	return out.(T), nil
}
