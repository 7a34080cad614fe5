package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterWithinLimit(t *testing.T) {
	limiter := NewRateLimiter(3, time.Hour)

	assert.True(t, limiter.Check())
	assert.True(t, limiter.Check())
	assert.True(t, limiter.Check())
	assert.False(t, limiter.Check())

	status := limiter.GetStatus()
	assert.Equal(t, int64(3), status.Used)
	assert.Equal(t, int64(0), status.Remaining)
}

// 限额为0或负数时不限流
func TestRateLimiterUnlimited(t *testing.T) {
	limiter := NewRateLimiter(0, time.Hour)

	for i := 0; i < 100; i++ {
		assert.True(t, limiter.Check())
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	limiter := NewRateLimiter(1, 10*time.Millisecond)

	assert.True(t, limiter.Check())
	assert.False(t, limiter.Check())

	time.Sleep(15 * time.Millisecond)
	assert.True(t, limiter.Check())
}

func TestWithLimiterReturnsRateLimitError(t *testing.T) {
	limiter := NewRateLimiter(1, time.Hour)
	require.NoError(t, limiter.WithLimiter(context.Background(), func() error { return nil }))

	err := limiter.WithLimiter(context.Background(), func() error { return nil })
	require.Error(t, err)
	var rateLimitErr *RateLimitError
	assert.ErrorAs(t, err, &rateLimitErr)
}

func TestSleepWithContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := SleepWithContext(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)

	assert.NoError(t, SleepWithContext(context.Background(), 0))
}

func TestMetricsCollectorReport(t *testing.T) {
	metrics := NewMetricsCollector()

	metrics.RecordAPICall(100*time.Millisecond, true)
	metrics.RecordAPICall(200*time.Millisecond, false)
	metrics.RecordAttempt("success")
	metrics.RecordAttempt("timeout")
	metrics.RecordAttempt("service_error")
	metrics.RecordFallback()
	metrics.RecordArticlePersisted(80)
	metrics.RecordArticlePersisted(90)

	report := metrics.GetReport()
	assert.Equal(t, int64(2), report.APIStats.TotalCalls)
	assert.Equal(t, int64(1), report.APIStats.Failed)
	assert.Equal(t, 50.0, report.APIStats.SuccessRate)
	assert.Equal(t, int64(3), report.GenerationStats.Attempts)
	assert.Equal(t, int64(1), report.GenerationStats.Timeouts)
	assert.Equal(t, int64(1), report.GenerationStats.ServiceErrors)
	assert.Equal(t, int64(1), report.GenerationStats.Fallbacks)
	assert.Equal(t, int64(2), report.GenerationStats.Persisted)
	assert.Equal(t, 85.0, report.GenerationStats.AverageScore)
}
