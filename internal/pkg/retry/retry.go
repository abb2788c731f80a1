package retry

import (
	"context"
	"math/rand"
	"time"

	"github.com/TemirB/merchant-orders-sync/internal/config"
)

// Do calls fn until it succeeds or the policy's attempts run out.
func Do(ctx context.Context, retryPolicy config.Retry, fn func() error) error {
	return DoIf(ctx, retryPolicy, func(error) bool { return true }, fn)
}

// DoIf is Do but stops at the first error for which retryable returns false.
func DoIf(ctx context.Context, retryPolicy config.Retry, retryable func(error) bool, fn func() error) error {
	d := retryPolicy.Base
	var err error

	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	attempts := retryPolicy.Attempts
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if !retryable(err) || i == attempts-1 {
			return err
		}

		delay := d
		if retryPolicy.JitterFactor > 0 {
			jitter := 1 + retryPolicy.JitterFactor*(2*r.Float64()-1)
			delay = time.Duration(float64(delay) * jitter)
		}

		if retryPolicy.Max > 0 && delay > retryPolicy.Max {
			delay = retryPolicy.Max
		}

		t := time.NewTimer(delay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		}

		d *= 2
		if retryPolicy.Max > 0 && d > retryPolicy.Max {
			d = retryPolicy.Max
		}
	}
	return err
}
