package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wolfitem/ai-writer/internal/domain/model"
)

// Validator 提供输入验证功能
type Validator struct{}

// NewValidator 创建新的验证器实例
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCatalogPath 验证目录文件路径安全性。
// 只允许工作目录内的.json文件，且大小不超过10MB
func (v *Validator) ValidateCatalogPath(filePath string) error {
	if strings.TrimSpace(filePath) == "" {
		return errors.New("目录文件路径不能为空")
	}

	cleanPath := filepath.Clean(filePath)

	// 检查路径是否包含目录遍历尝试
	if strings.Contains(cleanPath, "..") || strings.Contains(cleanPath, "~") {
		return fmt.Errorf("路径包含非法字符: %s", cleanPath)
	}

	// 相对路径相对于工作目录解析
	if !filepath.IsAbs(cleanPath) {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("获取工作目录失败: %w", err)
		}
		cleanPath = filepath.Clean(filepath.Join(wd, cleanPath))
	}

	// 确保路径在工作目录下
	allowedRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("获取工作目录失败: %w", err)
	}
	relPath, err := filepath.Rel(allowedRoot, cleanPath)
	if err != nil {
		return fmt.Errorf("验证路径相对位置失败: %w", err)
	}
	if strings.HasPrefix(relPath, "..") {
		return fmt.Errorf("路径尝试访问工作目录外部: %s", cleanPath)
	}

	// 目录文件必须是JSON格式
	if !strings.HasSuffix(strings.ToLower(cleanPath), ".json") {
		return fmt.Errorf("只允许.json目录文件: %s", cleanPath)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("文件访问失败: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("路径指向目录而非文件: %s", cleanPath)
	}

	// 验证文件大小合理性（最大10MB限制）
	if info.Size() > 10*1024*1024 {
		return fmt.Errorf("文件过大(>10MB): %s", cleanPath)
	}

	return nil
}

// GetAPIKey 安全获取Deepseek API密钥，环境变量优先于配置文件
func (v *Validator) GetAPIKey(config *model.DeepseekConfig) (string, error) {
	if apiKey := os.Getenv("DEEPSEEK_API_KEY"); apiKey != "" {
		return apiKey, nil
	}

	if config == nil || config.APIKey == "" {
		return "", errors.New("未找到Deepseek API密钥配置，请设置环境变量: export DEEPSEEK_API_KEY=your-key-here")
	}

	// 检查是否为占位符
	if strings.Contains(config.APIKey, "****") {
		return "", errors.New("检测到占位符API密钥，请使用环境变量设置真实密钥")
	}

	return config.APIKey, nil
}
