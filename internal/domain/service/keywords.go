package service

import (
	"strings"

	"github.com/wolfitem/ai-writer/internal/domain/model"
)

// 关键词选择的数量上限
const (
	maxPrimaryKeywords  = 3
	maxLongTailKeywords = 2
)

// KeywordSelector 为话题派生关键词选择
type KeywordSelector struct {
	groups model.KeywordGroups
}

// NewKeywordSelector 创建关键词选择器
func NewKeywordSelector(groups model.KeywordGroups) *KeywordSelector {
	return &KeywordSelector{groups: groups}
}

// Select 为指定话题派生关键词选择。
// 主关键词取话题种子关键词的前3个，目标关键词为第一个主关键词；
// 长尾关键词从longTailKeywords组中按子串匹配话题关键词取前2个
func (k *KeywordSelector) Select(topic model.Topic) model.KeywordSelection {
	selection := model.KeywordSelection{}

	for i, keyword := range topic.Keywords {
		if i >= maxPrimaryKeywords {
			break
		}
		selection.Primary = append(selection.Primary, keyword)
	}

	if len(selection.Primary) > 0 {
		selection.Target = selection.Primary[0]
	}

	selection.LongTail = k.matchLongTail(topic.Keywords)

	return selection
}

// matchLongTail 从长尾关键词组中找出包含任一话题关键词的条目
func (k *KeywordSelector) matchLongTail(topicKeywords []string) []string {
	var matched []string
	for _, longTail := range k.groups.LongTailKeywords {
		if len(matched) >= maxLongTailKeywords {
			break
		}
		lowerLongTail := strings.ToLower(longTail)
		for _, keyword := range topicKeywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(lowerLongTail, strings.ToLower(keyword)) {
				matched = append(matched, longTail)
				break
			}
		}
	}
	return matched
}
