// Package wait provides fixed-interval polling for remote resources
// that converge to a target state asynchronously.
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Config holds polling configuration.
type Config struct {
	Interval    time.Duration
	MaxAttempts int
}

// Option is a functional option for polling configuration.
type Option func(*Config)

// TimeoutError reports that a resource did not reach its target state
// before the attempt ceiling was exhausted. It is distinguishable from
// both success and ordinary API failures via errors.As.
type TimeoutError struct {
	Resource string
	Target   string
	Attempts int
	Elapsed  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for %s to reach %s after %d attempts (%v)",
		e.Resource, e.Target, e.Attempts, e.Elapsed.Round(time.Second))
}

// IsTimeout checks if an error is a polling timeout.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// ForState polls check at a fixed interval until it reports the resource
// reached the target state, the attempt ceiling is exhausted, or the
// context is cancelled. The first check happens immediately, before any
// sleep. A check error aborts polling and is returned as-is.
//
// On exhaustion a *TimeoutError is returned, never a silent success.
func ForState(ctx context.Context, resource, target string, check func(ctx context.Context) (bool, error), opts ...Option) error {
	cfg := &Config{
		Interval:    10 * time.Second,
		MaxAttempts: 20,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	start := time.Now()

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		done, err := check(ctx)
		if err != nil {
			return fmt.Errorf("checking state of %s: %w", resource, err)
		}
		if done {
			return nil
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled waiting for %s after %d attempts: %w", resource, attempt, ctx.Err())
		case <-time.After(cfg.Interval):
		}
	}

	return &TimeoutError{
		Resource: resource,
		Target:   target,
		Attempts: cfg.MaxAttempts,
		Elapsed:  time.Since(start),
	}
}

// WithInterval sets the delay between polling attempts.
func WithInterval(d time.Duration) Option {
	return func(c *Config) {
		c.Interval = d
	}
}

// WithMaxAttempts sets the attempt ceiling.
func WithMaxAttempts(n int) Option {
	return func(c *Config) {
		c.MaxAttempts = n
	}
}
