package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netapedia/internal/apperrors"
)

func TestDoRetriesUntilSuccess(t *testing.T) {
	// N 次可重试失败 + 1 次成功，应该正好尝试 N+1 次
	failures := 3
	attempts := 0
	cfg := Config{
		MaxAttempts:  10,
		Strategy:     StrategyConstant,
		BaseDelay:    time.Millisecond,
		RetryIf:      apperrors.IsRetryable,
		JitterFactor: 0,
	}

	err := Do(context.Background(), cfg, func() error {
		attempts++
		if attempts <= failures {
			return apperrors.New(apperrors.CategoryNetwork, apperrors.SeverityMedium, "timeout")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, failures+1, attempts)
}

func TestDoNonRetryableFailsFast(t *testing.T) {
	attempts := 0
	cfg := DefaultConfig()
	cfg.BaseDelay = time.Millisecond

	err := Do(context.Background(), cfg, func() error {
		attempts++
		return apperrors.Validation("bad input")
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDoExhaustsAttempts(t *testing.T) {
	attempts := 0
	cfg := Config{
		MaxAttempts: 4,
		Strategy:    StrategyConstant,
		BaseDelay:   time.Millisecond,
		RetryIf:     func(error) bool { return true },
	}

	wantErr := errors.New("still broken")
	err := Do(context.Background(), cfg, func() error {
		attempts++
		return wantErr
	})

	assert.Equal(t, wantErr, err)
	assert.Equal(t, 4, attempts)
}

func TestExponentialDelaySequence(t *testing.T) {
	cfg := Config{
		Strategy:  StrategyExponential,
		BaseDelay: 100 * time.Millisecond,
		MaxDelay:  500 * time.Millisecond,
	}

	// d, 2d, 4d, 然后被 MaxDelay 截断
	assert.Equal(t, 100*time.Millisecond, cfg.delay(0))
	assert.Equal(t, 200*time.Millisecond, cfg.delay(1))
	assert.Equal(t, 400*time.Millisecond, cfg.delay(2))
	assert.Equal(t, 500*time.Millisecond, cfg.delay(3))
	assert.Equal(t, 500*time.Millisecond, cfg.delay(10))
}

func TestLinearDelaySequence(t *testing.T) {
	cfg := Config{
		Strategy:  StrategyLinear,
		BaseDelay: 50 * time.Millisecond,
		MaxDelay:  time.Second,
	}

	assert.Equal(t, 50*time.Millisecond, cfg.delay(0))
	assert.Equal(t, 100*time.Millisecond, cfg.delay(1))
	assert.Equal(t, 150*time.Millisecond, cfg.delay(2))
}

func TestJitterStaysInRange(t *testing.T) {
	cfg := Config{
		Strategy:     StrategyConstant,
		BaseDelay:    100 * time.Millisecond,
		JitterFactor: 0.5,
	}

	for i := 0; i < 100; i++ {
		d := cfg.delay(0)
		assert.GreaterOrEqual(t, d, 50*time.Millisecond)
		assert.LessOrEqual(t, d, 150*time.Millisecond)
	}
}

func TestDoRespectsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	cfg := Config{
		MaxAttempts: 100,
		Strategy:    StrategyConstant,
		BaseDelay:   50 * time.Millisecond,
		RetryIf:     func(error) bool { return true },
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := Do(ctx, cfg, func() error {
		attempts++
		return apperrors.New(apperrors.CategoryNetwork, apperrors.SeverityLow, "flaky")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, attempts, 5)
}
