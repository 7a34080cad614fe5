package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wolfitem/ai-writer/internal/domain/model"
)

func TestSelectPrimaryKeywords(t *testing.T) {
	selector := NewKeywordSelector(model.KeywordGroups{})

	topic := model.Topic{
		Title:    "Index Fund Basics",
		Keywords: []string{"index funds", "passive investing", "expense ratio", "dividends", "etf"},
	}

	selection := selector.Select(topic)
	// 主关键词最多3个，目标关键词为第一个
	assert.Equal(t, []string{"index funds", "passive investing", "expense ratio"}, selection.Primary)
	assert.Equal(t, "index funds", selection.Target)
}

func TestSelectLongTailBySubstring(t *testing.T) {
	groups := model.KeywordGroups{
		LongTailKeywords: []string{
			"best index funds for beginners",
			"how to start passive investing with $100",
			"index funds vs etf comparison",
			"savings account interest calculator",
		},
	}
	selector := NewKeywordSelector(groups)

	topic := model.Topic{
		Title:    "Index Fund Basics",
		Keywords: []string{"index funds"},
	}

	selection := selector.Select(topic)
	// 子串匹配，最多2个
	assert.Len(t, selection.LongTail, 2)
	assert.Contains(t, selection.LongTail, "best index funds for beginners")
	assert.Contains(t, selection.LongTail, "index funds vs etf comparison")
}

func TestSelectEmptyKeywords(t *testing.T) {
	selector := NewKeywordSelector(model.KeywordGroups{})

	selection := selector.Select(model.Topic{Title: "No Keywords"})
	assert.Empty(t, selection.Primary)
	assert.Empty(t, selection.LongTail)
	assert.Equal(t, "", selection.Target)
}
