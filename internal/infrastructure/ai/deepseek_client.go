package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wolfitem/ai-writer/internal/domain/model"
	"github.com/wolfitem/ai-writer/internal/domain/service"
	"github.com/wolfitem/ai-writer/internal/infrastructure/logger"
	"github.com/wolfitem/ai-writer/internal/middleware"
)

// 默认的API端点
const defaultAPIURL = "https://api.deepseek.com/v1/chat/completions"

// DeepseekClient 实现service.AIClient接口
type DeepseekClient struct {
	config  model.DeepseekConfig
	client  *http.Client
	limiter *middleware.RateLimiter
}

// NewDeepseekClient 创建新的Deepseek客户端
func NewDeepseekClient(config model.DeepseekConfig) *DeepseekClient {
	// 设置安全的HTTP客户端配置。
	// 不设置客户端级超时，单次调用的超时由编排器传入的context控制，
	// 超时同时会取消底层连接
	transport := &http.Transport{
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 10 * time.Second,
		TLSHandshakeTimeout:   15 * time.Second,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
	}

	return &DeepseekClient{
		config:  config,
		client:  &http.Client{Transport: transport},
		limiter: middleware.NewRateLimiter(int64(config.MaxCalls), 24*time.Hour),
	}
}

// GenerateArticle 请求外部服务生成一篇文章。
// 结构化模式的响应解析失败时自动降级为文本标记解析
func (c *DeepseekClient) GenerateArticle(ctx context.Context, req service.GenerationRequest) (*service.GenerationResponse, error) {
	if !c.limiter.Check() {
		status := c.limiter.GetStatus()
		logger.Warn("已达到API调用次数上限", "used", status.Used, "limit", status.Limit)
		return nil, &model.GenerationServiceError{
			Model: req.Model,
			Err:   &middleware.RateLimitError{Status: status},
		}
	}

	if c.config.APIKey == "" {
		return nil, &model.GenerationServiceError{Model: req.Model, Err: fmt.Errorf("未配置Deepseek API密钥")}
	}

	// 记录API请求参数（不包含完整的API密钥）
	apiKeyMasked := "****"
	if len(c.config.APIKey) >= 4 {
		apiKeyMasked = "****" + c.config.APIKey[len(c.config.APIKey)-4:]
	}
	logger.Debug("Deepseek API请求参数",
		"model", req.Model,
		"max_tokens", req.MaxTokens,
		"structured", req.Structured,
		"api_key", apiKeyMasked,
		"prompt_length", len(req.UserPrompt))

	content, err := c.callAPI(ctx, req)
	if err != nil {
		return nil, err
	}

	response, err := c.parseResponse(req, content)
	if err != nil {
		return nil, &model.GenerationServiceError{Model: req.Model, Err: err}
	}
	return response, nil
}

// callAPI 调用Deepseek API并返回原始文本内容
func (c *DeepseekClient) callAPI(ctx context.Context, req service.GenerationRequest) (string, error) {
	endpoint := c.config.APIUrl
	if endpoint == "" {
		endpoint = defaultAPIURL
		logger.Warn("未配置Deepseek API URL，使用默认值", "default_url", endpoint)
	}

	// 验证URL
	if _, err := url.Parse(endpoint); err != nil {
		return "", &model.GenerationServiceError{Model: req.Model, Err: fmt.Errorf("无效的API端点: %w", err)}
	}

	// 构建请求体
	requestBody := map[string]interface{}{
		"model": req.Model,
		"messages": []map[string]string{
			{"role": "system", "content": req.SystemPrompt},
			{"role": "user", "content": req.UserPrompt},
		},
		"max_tokens":  req.MaxTokens,
		"stream":      false,
		"temperature": req.Temperature,
	}
	if req.Structured {
		requestBody["response_format"] = map[string]string{"type": "json_object"}
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", &model.GenerationServiceError{Model: req.Model, Err: fmt.Errorf("构建请求体失败: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", &model.GenerationServiceError{Model: req.Model, Err: fmt.Errorf("创建请求失败: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	httpReq.Header.Set("User-Agent", "AI-Writer-Client/1.0")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		// context超时由编排器识别为超时结果，其余归为服务错误
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &model.GenerationServiceError{Model: req.Model, Err: fmt.Errorf("发送请求失败: %w", err)}
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return "", &model.GenerationServiceError{Model: req.Model, Err: fmt.Errorf("读取API响应失败: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &model.GenerationServiceError{
			Model: req.Model,
			Err:   c.statusError(resp.StatusCode, responseBody, duration),
		}
	}

	var apiResponse struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
			TotalTokens      int `json:"total_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(responseBody, &apiResponse); err != nil {
		return "", &model.GenerationServiceError{Model: req.Model, Err: fmt.Errorf("解析API响应失败: %w", err)}
	}
	if len(apiResponse.Choices) == 0 {
		return "", &model.GenerationServiceError{Model: req.Model, Err: fmt.Errorf("响应不包含有效内容")}
	}

	logger.Info("Deepseek API调用成功",
		"model", req.Model,
		"duration_ms", duration.Milliseconds(),
		"prompt_tokens", apiResponse.Usage.PromptTokens,
		"total_tokens", apiResponse.Usage.TotalTokens)

	return strings.TrimSpace(apiResponse.Choices[0].Message.Content), nil
}

// statusError 根据状态码构造更具体的错误信息
func (c *DeepseekClient) statusError(statusCode int, responseBody []byte, duration time.Duration) error {
	logger.Error("API请求返回错误",
		"status_code", statusCode,
		"response", string(responseBody),
		"request_duration_ms", duration.Milliseconds())

	switch statusCode {
	case http.StatusTooManyRequests:
		return fmt.Errorf("API请求频率过高，请稍后重试")
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("API认证失败，请检查API密钥")
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("API服务器错误，请稍后重试")
	default:
		return fmt.Errorf("API请求返回错误(状态码:%d): %s", statusCode, string(responseBody))
	}
}

// parseResponse 解析模型返回的文章内容。
// 优先按结构化JSON解析，失败后降级为TITLE:/META_DESCRIPTION:/CONTENT:/CTA:
// 文本标记的逐行解析
func (c *DeepseekClient) parseResponse(req service.GenerationRequest, content string) (*service.GenerationResponse, error) {
	if req.Structured {
		var response service.GenerationResponse
		if err := json.Unmarshal([]byte(content), &response); err == nil && response.Title != "" && response.Content != "" {
			return &response, nil
		}
		logger.Warn("结构化响应解析失败，降级为文本标记解析", "model", req.Model)
	}

	response := parseMarkedResponse(content)
	if response.Title == "" || response.Content == "" {
		return nil, fmt.Errorf("响应缺少必需的标题或正文内容")
	}
	return response, nil
}

// parseMarkedResponse 逐行解析带文本标记的响应
func parseMarkedResponse(content string) *service.GenerationResponse {
	response := &service.GenerationResponse{}
	section := ""
	var body strings.Builder

	flush := func() {
		text := strings.TrimSpace(body.String())
		switch section {
		case "title":
			response.Title = text
		case "meta":
			response.MetaDescription = text
		case "content":
			response.Content = text
		case "cta":
			response.CTA = text
		}
		body.Reset()
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "TITLE:"):
			flush()
			section = "title"
			body.WriteString(strings.TrimSpace(strings.TrimPrefix(trimmed, "TITLE:")))
		case strings.HasPrefix(trimmed, "META_DESCRIPTION:"):
			flush()
			section = "meta"
			body.WriteString(strings.TrimSpace(strings.TrimPrefix(trimmed, "META_DESCRIPTION:")))
		case strings.HasPrefix(trimmed, "CONTENT:"):
			flush()
			section = "content"
			body.WriteString(strings.TrimSpace(strings.TrimPrefix(trimmed, "CONTENT:")))
		case strings.HasPrefix(trimmed, "CTA:"):
			flush()
			section = "cta"
			body.WriteString(strings.TrimSpace(strings.TrimPrefix(trimmed, "CTA:")))
		default:
			if section != "" {
				body.WriteString("\n")
				body.WriteString(line)
			}
		}
	}
	flush()

	return response
}
