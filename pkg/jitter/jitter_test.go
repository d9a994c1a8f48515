package jitter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDurationStaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := time.Duration(rapid.Int64Range(0, int64(time.Minute)).Draw(t, "d"))
		factor := rapid.Float64Range(0, 1).Draw(t, "factor")

		got := Duration(d, factor)
		if got < d || float64(got) > float64(d)*(1+factor)+1 {
			t.Fatalf("Duration(%v, %v) = %v out of range", d, factor, got)
		}
	})
}

func TestExponentialBackoffIsCapped(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, ExponentialBackoff(100*time.Millisecond, time.Second, 0, 0))
	assert.Equal(t, 400*time.Millisecond, ExponentialBackoff(100*time.Millisecond, time.Second, 2, 0))
	assert.Equal(t, time.Second, ExponentialBackoff(100*time.Millisecond, time.Second, 10, 0))
}

func TestRetry(t *testing.T) {
	errTemporary := errors.New("temporary")
	policy := Policy{Attempts: 3, Base: time.Millisecond, Max: 2 * time.Millisecond}

	t.Run("succeeds after failures", func(t *testing.T) {
		var calls int
		err := Retry(context.Background(), policy, func(ctx context.Context, attempt int) error {
			calls++
			if attempt < 2 {
				return errTemporary
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error", func(t *testing.T) {
		var calls int
		err := Retry(context.Background(), policy, func(ctx context.Context, attempt int) error {
			calls++
			return errTemporary
		})

		assert.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 3, calls)
	})

	t.Run("zero attempts still calls once", func(t *testing.T) {
		var calls int
		_ = Retry(context.Background(), Policy{}, func(ctx context.Context, attempt int) error {
			calls++
			return errTemporary
		})

		assert.Equal(t, 1, calls)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		slow := Policy{Attempts: 5, Base: time.Hour, Max: time.Hour}

		var calls int
		err := Retry(ctx, slow, func(ctx context.Context, attempt int) error {
			calls++
			cancel()
			return errTemporary
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
