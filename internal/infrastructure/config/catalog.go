package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/wolfitem/ai-writer/internal/domain/model"
	"github.com/wolfitem/ai-writer/internal/infrastructure/logger"
)

// 话题优先级的合法取值
var validPriorities = map[string]bool{
	model.PriorityHigh:   true,
	model.PriorityMedium: true,
	model.PriorityLow:    true,
}

// LoadTopics 加载话题目录JSON文件。
// 目录缺失、格式非法或为空均视为致命配置错误，在启动阶段终止运行
func LoadTopics(filePath string) ([]model.Topic, error) {
	logger.Info("加载话题目录", "file", filePath)

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &model.ConfigurationLoadError{Source: filePath, Err: fmt.Errorf("读取话题目录失败: %w", err)}
	}

	var topics []model.Topic
	if err := json.Unmarshal(data, &topics); err != nil {
		return nil, &model.ConfigurationLoadError{Source: filePath, Err: fmt.Errorf("解析话题目录失败: %w", err)}
	}

	// 空目录是致命配置错误
	if len(topics) == 0 {
		return nil, &model.ConfigurationLoadError{Source: filePath, Err: errors.New("话题目录为空")}
	}

	for i, topic := range topics {
		if topic.Title == "" {
			return nil, &model.ConfigurationLoadError{Source: filePath, Err: fmt.Errorf("第%d个话题缺少标题", i+1)}
		}
		if !validPriorities[topic.Priority] {
			return nil, &model.ConfigurationLoadError{Source: filePath, Err: fmt.Errorf("话题 %q 的优先级非法: %q", topic.Title, topic.Priority)}
		}
	}

	logger.Info("话题目录加载成功", "topics_count", len(topics))
	return topics, nil
}

// LoadKeywordGroups 加载关键词分组JSON文件。
// 文件缺失时返回空分组而非报错：长尾关键词是增强项，不是必需品
func LoadKeywordGroups(filePath string) (model.KeywordGroups, error) {
	logger.Info("加载关键词分组", "file", filePath)

	var groups model.KeywordGroups
	if filePath == "" {
		logger.Warn("未配置关键词分组文件，使用空分组")
		return groups, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("关键词分组文件不存在，使用空分组", "file", filePath)
			return groups, nil
		}
		return groups, &model.ConfigurationLoadError{Source: filePath, Err: fmt.Errorf("读取关键词分组失败: %w", err)}
	}

	if err := json.Unmarshal(data, &groups); err != nil {
		return groups, &model.ConfigurationLoadError{Source: filePath, Err: fmt.Errorf("解析关键词分组失败: %w", err)}
	}

	logger.Info("关键词分组加载成功", "long_tail_count", len(groups.LongTailKeywords))
	return groups, nil
}

// ApplyContentDefaults 为内容阈值配置填充默认值
func ApplyContentDefaults(content *model.ContentConfig) {
	if content.AutoApprovalScore <= 0 {
		content.AutoApprovalScore = 70
	}
	if content.MinWordCount <= 0 {
		content.MinWordCount = 2000
	}
	if content.ComplianceThreshold <= 0 {
		content.ComplianceThreshold = 85
	}
}

// ApplyGenerationDefaults 为编排器配置填充默认值
func ApplyGenerationDefaults(generation *model.GenerationConfig) {
	if generation.MaxRetries <= 0 {
		generation.MaxRetries = 3
	}
	if generation.APITimeoutMs <= 0 {
		generation.APITimeoutMs = 60000
	}
	if generation.RetryDelayMs <= 0 {
		generation.RetryDelayMs = 2000
	}
}
