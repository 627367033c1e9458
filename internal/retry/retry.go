package retry

import (
	"context"
	"math"
	"math/rand"
	"time"

	"netapedia/internal/apperrors"
)

// Strategy 退避策略
type Strategy string

const (
	StrategyExponential Strategy = "exponential"
	StrategyLinear      Strategy = "linear"
	StrategyConstant    Strategy = "constant"
)

// Config 重试配置
type Config struct {
	MaxAttempts  int           // 最大尝试次数（含首次）
	Strategy     Strategy      // 退避策略
	BaseDelay    time.Duration // 基础延迟
	MaxDelay     time.Duration // 延迟上限
	JitterFactor float64       // 抖动系数 [0,1]，0 表示无抖动
	RetryIf      func(error) bool
}

// DefaultConfig 默认配置：指数退避，基于错误类别判断可重试性
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		Strategy:     StrategyExponential,
		BaseDelay:    200 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		JitterFactor: 0.2,
		RetryIf:      apperrors.IsRetryable,
	}
}

// delay 计算第 attempt 次失败后的等待时间（attempt 从 0 开始）
func (c Config) delay(attempt int) time.Duration {
	var d time.Duration
	switch c.Strategy {
	case StrategyLinear:
		d = c.BaseDelay * time.Duration(attempt+1)
	case StrategyConstant:
		d = c.BaseDelay
	default:
		// 指数退避: d, 2d, 4d, ...
		d = time.Duration(float64(c.BaseDelay) * math.Pow(2, float64(attempt)))
	}

	if c.MaxDelay > 0 && d > c.MaxDelay {
		d = c.MaxDelay
	}

	if c.JitterFactor > 0 {
		// 在 [d*(1-j), d*(1+j)] 区间内随机
		jitter := (rand.Float64()*2 - 1) * c.JitterFactor * float64(d)
		d = time.Duration(float64(d) + jitter)
		if d < 0 {
			d = 0
		}
	}
	return d
}

// Do 执行 fn，失败且可重试时按配置退避后重试
// 不可重试的错误只尝试一次；context 取消时立即返回
func Do(ctx context.Context, cfg Config, fn func() error) error {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.RetryIf == nil {
		cfg.RetryIf = apperrors.IsRetryable
	}

	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !cfg.RetryIf(lastErr) {
			return lastErr
		}
		// 最后一次失败后不再等待
		if attempt == cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-time.After(cfg.delay(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
