package service

import (
	"context"
)

// GenerationRequest 一次外部文本生成请求
type GenerationRequest struct {
	SystemPrompt string  // 系统提示词
	UserPrompt   string  // 用户提示词
	Model        string  // 模型名称
	MaxTokens    int     // 最大令牌数
	Temperature  float64 // 采样温度
	Structured   bool    // 是否请求结构化JSON输出
}

// GenerationResponse 外部服务返回的结构化文章内容
type GenerationResponse struct {
	Title           string `json:"title"`           // 文章标题
	MetaDescription string `json:"meta_description"` // SEO描述
	Content         string `json:"content"`         // HTML正文
	CTA             string `json:"cta"`             // 行动号召
}

// AIClient 定义外部文本生成服务的客户端接口
type AIClient interface {
	// GenerateArticle 请求外部服务生成一篇文章。
	// 结构化模式失败时实现方应自行降级到文本标记解析。
	GenerateArticle(ctx context.Context, req GenerationRequest) (*GenerationResponse, error)
}
