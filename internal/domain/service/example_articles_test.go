package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfitem/ai-writer/internal/domain/model"
)

func TestExampleArticles(t *testing.T) {
	articles := ExampleArticles()
	require.Len(t, articles, 5)

	ids := map[string]bool{}
	for _, article := range articles {
		assert.NotEmpty(t, article.Title)
		assert.NotEmpty(t, article.Content)
		assert.Equal(t, model.StatusDraft, article.Metadata.Status)
		assert.True(t, article.Metadata.IsFallbackArticle)
		assert.True(t, article.Metadata.IsMockArticle)
		assert.NotEmpty(t, article.Metadata.TemplateUsed)
		assert.Greater(t, article.Metadata.QualityScore, 0)
		ids[article.Metadata.ID] = true
	}
	// 每次调用分配全新的文章ID
	assert.Len(t, ids, 5)
}
