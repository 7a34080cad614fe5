package service

import (
	"github.com/wolfitem/ai-writer/internal/domain/model"
	"github.com/wolfitem/ai-writer/internal/infrastructure/logger"
)

// StatusResolver 根据质量分与来源决定文章的生命周期状态
type StatusResolver struct {
	autoApprovalScore int
}

// NewStatusResolver 创建状态决策器
func NewStatusResolver(autoApprovalScore int) *StatusResolver {
	if autoApprovalScore <= 0 {
		autoApprovalScore = 70
	}
	return &StatusResolver{autoApprovalScore: autoApprovalScore}
}

// Resolve 决定文章状态。
// 兜底文章的质量分是模拟值而非实测值，因此一律保持draft状态；
// 外部生成的文章达到自动批准阈值则auto_approved，否则needs_review
func (s *StatusResolver) Resolve(qualityScore int, isFallback bool) string {
	if isFallback {
		return model.StatusDraft
	}

	status := model.StatusNeedsReview
	if qualityScore >= s.autoApprovalScore {
		status = model.StatusAutoApproved
	}

	logger.Debug("状态决策完成", "quality_score", qualityScore, "threshold", s.autoApprovalScore, "status", status)
	return status
}
