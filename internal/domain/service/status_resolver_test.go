package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wolfitem/ai-writer/internal/domain/model"
)

func TestResolveStatusByScore(t *testing.T) {
	resolver := NewStatusResolver(70)

	assert.Equal(t, model.StatusAutoApproved, resolver.Resolve(70, false))
	assert.Equal(t, model.StatusAutoApproved, resolver.Resolve(95, false))
	assert.Equal(t, model.StatusNeedsReview, resolver.Resolve(69, false))
	assert.Equal(t, model.StatusNeedsReview, resolver.Resolve(0, false))
}

// 兜底文章的分数是模拟值，无论多高都保持draft
func TestResolveFallbackAlwaysDraft(t *testing.T) {
	resolver := NewStatusResolver(70)

	assert.Equal(t, model.StatusDraft, resolver.Resolve(98, true))
	assert.Equal(t, model.StatusDraft, resolver.Resolve(10, true))
}

func TestResolveDefaultThreshold(t *testing.T) {
	resolver := NewStatusResolver(0)

	assert.Equal(t, model.StatusAutoApproved, resolver.Resolve(70, false))
	assert.Equal(t, model.StatusNeedsReview, resolver.Resolve(69, false))
}
