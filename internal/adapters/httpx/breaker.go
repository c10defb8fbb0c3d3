package httpx

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"trip_planner/internal/adapters/observability"
)

// NewBreaker trips after at least minRequests calls with a failure ratio of
// 0.6 or more, and probes again after openFor.
func NewBreaker(name string, minRequests uint32, openFor time.Duration) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
}

// Guard runs fn through cb. Calls rejected by an open breaker never reach the
// transport, so they are counted here under the breaker_open status.
func Guard[T any](cb *gobreaker.CircuitBreaker, service, endpoint string, fn func() (T, error)) (T, error) {
	out, err := cb.Execute(func() (interface{}, error) { return fn() })
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			observability.ObserveExternalErr(service, endpoint, err, 0)
		}
		var zero T
		return zero, err
	}
	return out.(T), nil
}
