// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package insights

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/careermatch/internal/logging"
	"github.com/tomtom215/careermatch/internal/metrics"
)

// BreakerSettings configures a BreakerGenerator.
type BreakerSettings struct {
	// Name labels the breaker in logs and metrics.
	Name string

	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures uint32

	// OpenInterval is how long the circuit stays open before a trial call.
	OpenInterval time.Duration
}

// BreakerGenerator wraps a Generator with a circuit breaker. While the
// circuit is open calls fail fast with gobreaker.ErrOpenState.
type BreakerGenerator struct {
	next Generator
	cb   *gobreaker.CircuitBreaker[string]
	name string
}

// NewBreakerGenerator wraps next.
// Circuit breaker configuration:
// - 1 trial request in half-open state
// - opens after MaxFailures consecutive failures
// - stays open for OpenInterval
func NewBreakerGenerator(next Generator, s BreakerSettings) *BreakerGenerator {
	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.OpenInterval,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= s.MaxFailures
			if trip {
				logging.Warn().
					Str("breaker", s.Name).
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return trip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &BreakerGenerator{next: next, cb: cb, name: s.Name}
}

// Generate calls the wrapped generator through the breaker.
func (b *BreakerGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := b.cb.Execute(func() (string, error) {
		return b.next.Generate(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		}
		return "", err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return text, nil
}

// State returns the current breaker state.
func (b *BreakerGenerator) State() gobreaker.State {
	return b.cb.State()
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
