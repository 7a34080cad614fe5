package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfitem/ai-writer/internal/domain/model"
)

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTopics(t *testing.T) {
	path := writeCatalog(t, "topics.json", `[
		{"id": 1, "title": "Index Fund Basics", "category": "investing", "keywords": ["index funds"], "priority": "high"},
		{"id": 2, "title": "Emergency Fund", "category": "saving", "keywords": ["emergency fund"], "priority": "medium"}
	]`)

	topics, err := LoadTopics(path)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "Index Fund Basics", topics[0].Title)
	assert.Equal(t, "saving", topics[1].Category)
}

// 空目录是致命配置错误
func TestLoadTopicsEmptyCatalog(t *testing.T) {
	path := writeCatalog(t, "topics.json", `[]`)

	_, err := LoadTopics(path)
	require.Error(t, err)
	var loadErr *model.ConfigurationLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestLoadTopicsMissingFile(t *testing.T) {
	_, err := LoadTopics(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	var loadErr *model.ConfigurationLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestLoadTopicsInvalidPriority(t *testing.T) {
	path := writeCatalog(t, "topics.json", `[
		{"id": 1, "title": "Bad Topic", "category": "investing", "keywords": [], "priority": "urgent"}
	]`)

	_, err := LoadTopics(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "优先级非法")
}

// 关键词分组缺失不是致命错误
func TestLoadKeywordGroupsLenient(t *testing.T) {
	groups, err := LoadKeywordGroups("")
	require.NoError(t, err)
	assert.Empty(t, groups.LongTailKeywords)

	groups, err = LoadKeywordGroups(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Empty(t, groups.LongTailKeywords)
}

func TestLoadKeywordGroups(t *testing.T) {
	path := writeCatalog(t, "keywords.json", `{
		"longTailKeywords": ["best index funds for beginners", "how to build an emergency fund fast"],
		"groups": {"investing": ["etf", "dividends"]}
	}`)

	groups, err := LoadKeywordGroups(path)
	require.NoError(t, err)
	assert.Len(t, groups.LongTailKeywords, 2)
	assert.Equal(t, []string{"etf", "dividends"}, groups.Groups["investing"])
}

func TestApplyDefaults(t *testing.T) {
	content := model.ContentConfig{}
	ApplyContentDefaults(&content)
	assert.Equal(t, 70, content.AutoApprovalScore)
	assert.Equal(t, 2000, content.MinWordCount)
	assert.Equal(t, 85, content.ComplianceThreshold)

	generation := model.GenerationConfig{}
	ApplyGenerationDefaults(&generation)
	assert.Equal(t, 3, generation.MaxRetries)
	assert.Equal(t, 60000, generation.APITimeoutMs)
	assert.Equal(t, 2000, generation.RetryDelayMs)

	// 已设置的值不被覆盖
	content = model.ContentConfig{AutoApprovalScore: 80, MinWordCount: 1500, ComplianceThreshold: 90}
	ApplyContentDefaults(&content)
	assert.Equal(t, 80, content.AutoApprovalScore)
	assert.Equal(t, 1500, content.MinWordCount)
	assert.Equal(t, 90, content.ComplianceThreshold)
}
