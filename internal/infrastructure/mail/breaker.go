package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// ErrUnavailable is returned without contacting the provider while the
// breaker is open.
var ErrUnavailable = errors.New("mail delivery temporarily unavailable")

type breakerMailer struct {
	next Mailer
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker opens after maxFailures consecutive delivery failures and
// lets a single trial delivery through once timeout has elapsed.
func NewBreaker(next Mailer, maxFailures uint32, timeout time.Duration) Mailer {
	if maxFailures == 0 {
		maxFailures = 1
	}
	st := gobreaker.Settings{
		Name:        "mail",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			// Callers giving up is not a provider failure.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state", "name", name, "from", from.String(), "to", to.String())
		},
	}
	return &breakerMailer{next: next, cb: gobreaker.NewCircuitBreaker(st)}
}

func (b *breakerMailer) SendEmail(ctx context.Context, to, subject, html string) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.next.SendEmail(ctx, to, subject, html)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}
