package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/wolfitem/ai-writer/internal/infrastructure/logger"
)

// MetricsCollector 收集性能指标
type MetricsCollector struct {
	mu sync.RWMutex

	startTime time.Time

	// API调用统计
	apiCalls     int64
	apiFailures  int64
	apiDurations []time.Duration

	// 生成统计
	attempts      int64
	timeouts      int64
	serviceErrors int64
	fallbacks     int64
	persisted     int64
	scoreSum      float64
	scoredCount   int64
}

// NewMetricsCollector 创建新的性能监控器
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		startTime:    time.Now(),
		apiDurations: make([]time.Duration, 0, 1000),
	}
}

// RecordAPICall 记录API调用
func (m *MetricsCollector) RecordAPICall(duration time.Duration, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.apiCalls++
	if !success {
		m.apiFailures++
	}

	m.apiDurations = append(m.apiDurations, duration)
	if len(m.apiDurations) > 1000 {
		m.apiDurations = m.apiDurations[1:]
	}
}

// RecordAttempt 记录一次生成尝试及其结局
func (m *MetricsCollector) RecordAttempt(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempts++
	switch outcome {
	case "timeout":
		m.timeouts++
	case "service_error":
		m.serviceErrors++
	}
}

// RecordFallback 记录一次降级到备用内容
func (m *MetricsCollector) RecordFallback() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fallbacks++
}

// RecordArticlePersisted 记录文章落库及其质量分
func (m *MetricsCollector) RecordArticlePersisted(score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.persisted++
	m.scoreSum += score
	m.scoredCount++
}

// GetReport 获取性能报告
func (m *MetricsCollector) GetReport() Report {
	m.mu.RLock()
	defer m.mu.RUnlock()

	upTime := time.Since(m.startTime)
	avgDuration := m.getAverageAPIDuration()

	avgScore := 0.0
	if m.scoredCount > 0 {
		avgScore = m.scoreSum / float64(m.scoredCount)
	}

	return Report{
		RuntimeInfo: RuntimeInfo{
			StartTime:  m.startTime,
			Uptime:     upTime,
			ProcessSec: int64(upTime.Seconds()),
		},
		APIStats: APIStats{
			TotalCalls:     m.apiCalls,
			Successful:     m.apiCalls - m.apiFailures,
			Failed:         m.apiFailures,
			SuccessRate:    m.calculateSuccessRate(),
			AverageLatency: avgDuration.Milliseconds(),
		},
		GenerationStats: GenerationStats{
			Attempts:      m.attempts,
			Timeouts:      m.timeouts,
			ServiceErrors: m.serviceErrors,
			Fallbacks:     m.fallbacks,
			Persisted:     m.persisted,
			AverageScore:  avgScore,
		},
	}
}

// getAverageAPIDuration 获取平均API响应时间
func (m *MetricsCollector) getAverageAPIDuration() time.Duration {
	if len(m.apiDurations) == 0 {
		return 0
	}

	var total time.Duration
	for _, d := range m.apiDurations {
		total += d
	}
	return total / time.Duration(len(m.apiDurations))
}

// calculateSuccessRate 计算成功率
func (m *MetricsCollector) calculateSuccessRate() float64 {
	if m.apiCalls == 0 {
		return 100.0
	}
	return float64(m.apiCalls-m.apiFailures) / float64(m.apiCalls) * 100
}

// Report 运行时报告
type Report struct {
	RuntimeInfo     RuntimeInfo
	APIStats        APIStats
	GenerationStats GenerationStats
}

// RuntimeInfo 运行时信息
type RuntimeInfo struct {
	StartTime  time.Time
	Uptime     time.Duration
	ProcessSec int64
}

// APIStats API统计信息
type APIStats struct {
	TotalCalls     int64
	Successful     int64
	Failed         int64
	SuccessRate    float64
	AverageLatency int64
}

// GenerationStats 生成流程统计
type GenerationStats struct {
	Attempts      int64
	Timeouts      int64
	ServiceErrors int64
	Fallbacks     int64
	Persisted     int64
	AverageScore  float64
}

// LogMetrics 记录指标到日志
func LogMetrics(metrics *MetricsCollector) {
	report := metrics.GetReport()
	logger.Info("📊 性能上报",
		"start_time", report.RuntimeInfo.StartTime,
		"uptime", report.RuntimeInfo.Uptime,
		"api_calls", report.APIStats.TotalCalls,
		"api_success_rate", fmt.Sprintf("%.2f%%", report.APIStats.SuccessRate),
		"api_avg_latency", fmt.Sprintf("%dms", report.APIStats.AverageLatency),
		"attempts", report.GenerationStats.Attempts,
		"timeouts", report.GenerationStats.Timeouts,
		"service_errors", report.GenerationStats.ServiceErrors,
		"fallbacks", report.GenerationStats.Fallbacks,
		"articles_persisted", report.GenerationStats.Persisted,
		"avg_quality_score", fmt.Sprintf("%.1f", report.GenerationStats.AverageScore),
	)
}
