package media

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"nestify/internal/logging"
	"nestify/internal/metrics"
)

const breakerName = "media-host"

// Breaker wraps a Delegate with a circuit breaker. While the circuit is open
// calls fail fast with the same errors the wrapped Delegate would return.
type Breaker struct {
	next Delegate
	cb   *gobreaker.CircuitBreaker[string]
}

var _ Delegate = (*Breaker)(nil)

// BreakerSettings tunes when the circuit opens.
type BreakerSettings struct {
	MinRequests  uint32
	FailureRatio float64
	Interval     time.Duration
	Timeout      time.Duration
}

// DefaultBreakerSettings opens after 60% failures over at least 5 calls and
// retries after 30 seconds.
var DefaultBreakerSettings = BreakerSettings{
	MinRequests:  5,
	FailureRatio: 0.6,
	Interval:     time.Minute,
	Timeout:      30 * time.Second,
}

// NewBreaker wraps next.
func NewBreaker(next Delegate, s BreakerSettings) *Breaker {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= s.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &Breaker{next: next, cb: cb}
}

// State reports the current breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Check fails while the circuit is open. It backs the health endpoint.
func (b *Breaker) Check(context.Context) error {
	if state := b.State(); state == gobreaker.StateOpen {
		return fmt.Errorf("%s circuit %s", breakerName, state)
	}
	return nil
}

func (b *Breaker) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	url, err := b.execute("upload", func() (string, error) {
		return b.next.Upload(ctx, file)
	})
	if isRejected(err) {
		return "", uploadFailed(err)
	}
	return url, err
}

func (b *Breaker) Delete(ctx context.Context, publicID string) error {
	_, err := b.execute("delete", func() (string, error) {
		return "", b.next.Delete(ctx, publicID)
	})
	if isRejected(err) {
		return deleteFailed(err)
	}
	return err
}

func (b *Breaker) execute(operation string, fn func() (string, error)) (string, error) {
	result, err := b.cb.Execute(fn)
	switch {
	case err == nil:
		metrics.RecordMediaCall(operation, "success")
	case isRejected(err):
		metrics.RecordMediaCall(operation, "rejected")
	default:
		metrics.RecordMediaCall(operation, "failure")
	}
	return result, err
}

func isRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

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
