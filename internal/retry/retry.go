// Package retry provides a bounded exponential-backoff executor for
// fallible remote calls.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Config controls retry behavior for a single executor.
type Config struct {
	MaxRetries    int
	InitialDelay  time.Duration
	BackoffFactor float64
}

// DefaultConfig mirrors the dashboard's retry defaults.
func DefaultConfig() Config {
	return Config{
		MaxRetries:    3,
		InitialDelay:  time.Second,
		BackoffFactor: 2,
	}
}

// ExhaustedError reports that every attempt failed. It wraps the last error
// so callers cannot mistake exhaustion for success.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

// Executor retries an operation with exponential backoff. Invocations are
// independent; the zero value is not usable, construct with New.
type Executor struct {
	cfg   Config
	sleep func(ctx context.Context, d time.Duration) error
}

// New constructs an Executor, normalizing non-positive config values to the
// defaults.
func New(cfg Config) *Executor {
	def := DefaultConfig()
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = def.InitialDelay
	}
	if cfg.BackoffFactor <= 0 {
		cfg.BackoffFactor = def.BackoffFactor
	}
	return &Executor{cfg: cfg, sleep: sleepCtx}
}

// Do runs fn up to MaxRetries+1 times. The delay before attempt k+1 is
// InitialDelay * BackoffFactor^(k-1). Context cancellation aborts the wait.
func (e *Executor) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	delay := e.cfg.InitialDelay
	attempts := 0

	var lastErr error
	for {
		attempts++
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempts > e.cfg.MaxRetries {
			return &ExhaustedError{Attempts: attempts, Err: lastErr}
		}
		if err := e.sleep(ctx, delay); err != nil {
			return err
		}
		delay = time.Duration(float64(delay) * e.cfg.BackoffFactor)
	}
}

// Do runs a value-returning operation under the executor. On exhaustion the
// zero value is returned together with the ExhaustedError.
func Do[T any](ctx context.Context, e *Executor, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := e.Do(ctx, func(ctx context.Context) error {
		val, err := fn(ctx)
		if err != nil {
			return err
		}
		out = val
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
