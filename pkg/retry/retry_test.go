package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		Enabled:      true,
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_GivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	sentinel := errors.New("broken")
	err := Do(context.Background(), fastConfig(), func() error {
		calls++
		return sentinel
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 3, calls)
}

func TestDo_Disabled_SingleAttempt(t *testing.T) {
	cfg := fastConfig()
	cfg.Enabled = false

	calls := 0
	err := Do(context.Background(), cfg, func() error {
		calls++
		return errors.New("nope")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetryIfStopsEarly(t *testing.T) {
	cfg := fastConfig()
	cfg.RetryIf = func(err error) bool { return false }

	calls := 0
	err := Do(context.Background(), cfg, func() error {
		calls++
		return errors.New("permanent")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, fastConfig(), func() error {
		return errors.New("should not matter")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDoWithResult_ReturnsValue(t *testing.T) {
	got, err := DoWithResult(context.Background(), fastConfig(), func() (string, error) {
		return "payload", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "payload", got)
}

func TestBackoffDelay_CappedAtMaxDelay(t *testing.T) {
	cfg := Config{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     300 * time.Millisecond,
		Multiplier:   2.0,
	}

	assert.Equal(t, 100*time.Millisecond, backoffDelay(cfg, 0))
	assert.Equal(t, 200*time.Millisecond, backoffDelay(cfg, 1))
	assert.Equal(t, 300*time.Millisecond, backoffDelay(cfg, 2))
	assert.Equal(t, 300*time.Millisecond, backoffDelay(cfg, 5))
}

func TestBackoffDelay_JitterStaysInRange(t *testing.T) {
	cfg := Config{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}

	for i := 0; i < 50; i++ {
		d := backoffDelay(cfg, 0)
		assert.GreaterOrEqual(t, d, 75*time.Millisecond)
		assert.LessOrEqual(t, d, 125*time.Millisecond)
	}
}
