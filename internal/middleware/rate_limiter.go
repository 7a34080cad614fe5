package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RateLimiter 提供了关键的限流功能
type RateLimiter struct {
	mu            sync.RWMutex
	requestsCount int64
	lastReset     time.Time
	window        time.Duration
	maxRequests   int64
}

// NewRateLimiter 创建新的速率限制器
func NewRateLimiter(maxRequests int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		maxRequests: maxRequests,
		window:      window,
		lastReset:   time.Now(),
	}
}

// Check 检查是否超过限额
func (rl *RateLimiter) Check() bool {
	if rl.maxRequests <= 0 {
		return true // 无限额
	}

	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// 重置窗口周期
	if now.Sub(rl.lastReset) >= rl.window {
		rl.requestsCount = 0
		rl.lastReset = now
	}

	if rl.requestsCount < rl.maxRequests {
		rl.requestsCount++
		return true
	}

	return false
}

// GetStatus 获取当前状态
func (rl *RateLimiter) GetStatus() Status {
	now := time.Now()

	rl.mu.RLock()
	defer rl.mu.RUnlock()

	remaining := rl.maxRequests - rl.requestsCount
	if remaining < 0 {
		remaining = 0
	}

	percentUsed := 0.0
	if rl.maxRequests > 0 {
		percentUsed = float64(rl.requestsCount) / float64(rl.maxRequests) * 100
	}

	return Status{
		Limit:       rl.maxRequests,
		Used:        rl.requestsCount,
		Remaining:   remaining,
		PercentUsed: percentUsed,
		ResetIn:     rl.window - now.Sub(rl.lastReset),
	}
}

// Status 速率限制状态
type Status struct {
	Limit       int64
	Used        int64
	Remaining   int64
	PercentUsed float64
	ResetIn     time.Duration
}

// WithLimiter 使用限流器
func (rl *RateLimiter) WithLimiter(ctx context.Context, fn func() error) error {
	if rl.Check() {
		return fn()
	}

	return &RateLimitError{Status: rl.GetStatus()}
}

// RateLimitError 限流错误
type RateLimitError struct {
	Status Status
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded: %d/%d used, reset in %v",
		e.Status.Used, e.Status.Limit, e.Status.ResetIn.Round(time.Second))
}

// SleepWithContext 可被context取消的延迟等待，
// 用于生成尝试之间的固定间隔
func SleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
