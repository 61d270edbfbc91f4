package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/lysyi3m/mt-api/internal/metrics"
)

// Breaker stops sending statements to a catalog store that keeps failing.
// While open, calls fail fast with ErrStorageUnavailable
type Breaker struct {
	name string
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func NewBreaker(name string, failures uint32, cooldown time.Duration) *Breaker {
	settings := gobreaker.Settings{
		Name:    name,
		Timeout: cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return failures > 0 && counts.ConsecutiveFailures >= failures
		},
		// Cancelled requests do not count as store failures
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			metrics.BreakerState.WithLabelValues(name).Set(float64(to))
		},
	}

	metrics.BreakerState.WithLabelValues(name).Set(float64(gobreaker.StateClosed))

	return &Breaker{
		name: name,
		cb:   gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

func (b *Breaker) Do(fn func() error) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, fn()
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, b.name, err)
	}

	return err
}

func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
