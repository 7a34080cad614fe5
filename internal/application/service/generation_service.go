package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wolfitem/ai-writer/internal/domain/model"
	"github.com/wolfitem/ai-writer/internal/domain/service"
	"github.com/wolfitem/ai-writer/internal/infrastructure/ai"
	"github.com/wolfitem/ai-writer/internal/infrastructure/config"
	"github.com/wolfitem/ai-writer/internal/infrastructure/database"
	"github.com/wolfitem/ai-writer/internal/infrastructure/logger"
	"github.com/wolfitem/ai-writer/internal/middleware"
)

// GenerationResult 单篇文章的生成结果
type GenerationResult struct {
	Article    model.Article             // 最终文章
	Attempts   []model.GenerationAttempt // 外部生成尝试记录，示例文章为空
	Compliance *model.ComplianceReport   // 合规报告，兜底与示例文章为nil
}

// BatchSummary 一个批次的汇总结果
type BatchSummary struct {
	Requested      int                // 请求的文章数
	Results        []GenerationResult // 实际产出
	FallbackCount  int                // 其中兜底合成的数量
	UsedExamples   bool               // 是否启用了示例文章库
	PersistedCount int                // 成功落库的数量
}

// GenerationService 定义文章生成编排器的应用服务接口
type GenerationService interface {
	// GenerateBatch 顺序生成指定数量的文章
	GenerateBatch(ctx context.Context, params model.GenerateParams) (*BatchSummary, error)
}

// generationService 实现GenerationService接口
type generationService struct {
	// clientFactory 便于在测试中注入假的AI客户端
	clientFactory func(model.DeepseekConfig) service.AIClient
	metrics       *middleware.MetricsCollector

	// 数据库相关
	db          database.Database
	articleRepo database.ArticleRepository
}

// NewGenerationService 创建一个新的生成编排器服务实例
func NewGenerationService() GenerationService {
	return &generationService{
		clientFactory: func(cfg model.DeepseekConfig) service.AIClient {
			return ai.NewDeepseekClient(cfg)
		},
		metrics: middleware.NewMetricsCollector(),
	}
}

// NewGenerationServiceWithClient 使用指定的AI客户端创建编排器，测试专用
func NewGenerationServiceWithClient(client service.AIClient) GenerationService {
	return &generationService{
		clientFactory: func(model.DeepseekConfig) service.AIClient { return client },
		metrics:       middleware.NewMetricsCollector(),
	}
}

// GenerateBatch 顺序生成指定数量的文章。
// 该函数是整个生成流程的入口点，包括选题轮换、外部生成、质量评分、
// 合规校验、状态判定和落库
func (s *generationService) GenerateBatch(ctx context.Context, params model.GenerateParams) (*BatchSummary, error) {
	logger.Info("开始批量生成文章", "count", params.Count)
	defer logger.TimeTrack("GenerateBatch")()

	// 记录初始内存使用情况，批次运行期间周期性上报
	logger.LogMemStatsOnce()
	memMonitor := logger.NewMemStatsMonitor(30 * time.Second)
	memMonitor.Start()
	defer memMonitor.Stop()

	if params.Count <= 0 {
		return nil, fmt.Errorf("无效的生成数量: %d", params.Count)
	}

	config.ApplyGenerationDefaults(&params.Generation)
	config.ApplyContentDefaults(&params.Content)

	// 解析API密钥，环境变量优先
	validator := service.NewValidator()
	apiKey, err := validator.GetAPIKey(&params.DeepseekConfig)
	if err != nil {
		logger.Warn("API密钥解析失败，所有外部尝试都将失败并降级到兜底内容", "error", err)
	} else {
		params.DeepseekConfig.APIKey = apiKey
	}

	// 加载话题目录，目录缺失或为空是致命的配置错误
	if err := validator.ValidateCatalogPath(params.Catalogs.TopicsFile); err != nil {
		logger.Error("话题目录路径校验失败", "error", err)
		return nil, fmt.Errorf("话题目录路径校验失败: %w", err)
	}
	topics, err := config.LoadTopics(params.Catalogs.TopicsFile)
	if err != nil {
		logger.Error("加载话题目录失败", "error", err)
		return nil, fmt.Errorf("加载话题目录失败: %w", err)
	}
	keywordGroups, err := config.LoadKeywordGroups(params.Catalogs.KeywordsFile)
	if err != nil {
		logger.Error("加载关键词分组失败", "error", err)
		return nil, fmt.Errorf("加载关键词分组失败: %w", err)
	}

	// 初始化数据库（如果启用）
	if params.DatabaseConfig.Enabled {
		if err := s.initDatabase(params.DatabaseConfig); err != nil {
			logger.Error("初始化数据库失败", "error", err)
			return nil, fmt.Errorf("初始化数据库失败: %w", err)
		}
		defer func() {
			if s.db != nil {
				s.db.Close()
			}
		}()
	}

	// 组装领域服务
	client := s.clientFactory(params.DeepseekConfig)
	rotator := service.NewRotator(topics)
	keywordSelector := service.NewKeywordSelector(keywordGroups)
	synthesizer := service.NewFallbackSynthesizer()
	scorer := service.NewQualityScorer(params.Content)
	complianceValidator := service.NewComplianceValidator(params.Content.ComplianceThreshold)
	statusResolver := service.NewStatusResolver(params.Content.AutoApprovalScore)

	summary := &BatchSummary{Requested: params.Count}

	// 严格顺序生成，保证轮换计数的确定性
	for i := 0; i < params.Count; i++ {
		if ctx.Err() != nil {
			logger.Warn("批量生成被取消", "generated", len(summary.Results))
			break
		}

		topic, profile := rotator.SelectTopic()
		keywords := keywordSelector.Select(topic)
		logger.Info("开始生成文章",
			"index", i+1,
			"topic", topic.Title,
			"content_type", profile.Name,
			"angle", string(profile.Angle),
			"target_keyword", keywords.Target)

		result := s.generateOne(ctx, client, topic, keywords, params,
			scorer, complianceValidator, statusResolver, synthesizer)
		summary.Results = append(summary.Results, result)
		if result.Article.Metadata.IsFallbackArticle {
			summary.FallbackCount++
		}
	}

	// 二级兜底：整个批次颗粒无收时改用预置示例文章库
	if len(summary.Results) == 0 {
		for _, article := range service.ExampleArticles() {
			summary.Results = append(summary.Results, GenerationResult{Article: article})
			if len(summary.Results) >= params.Count {
				break
			}
		}
		summary.UsedExamples = true
	}
	if len(summary.Results) == 0 {
		return nil, errors.New("批量生成失败：没有产出任何文章")
	}

	// 保存文章到数据库（如果启用），单篇失败不中断流程
	if params.DatabaseConfig.Enabled && s.articleRepo != nil {
		for _, result := range summary.Results {
			if err := s.articleRepo.SaveArticle(result.Article); err != nil {
				logger.Error("保存文章到数据库失败", "title", result.Article.Title, "error", err)
				continue
			}
			summary.PersistedCount++
			s.metrics.RecordArticlePersisted(float64(result.Article.Metadata.QualityScore))
		}
	}

	middleware.LogMetrics(s.metrics)
	logger.Info("批量生成完成",
		"requested", summary.Requested,
		"produced", len(summary.Results),
		"fallbacks", summary.FallbackCount,
		"persisted", summary.PersistedCount)
	return summary, nil
}

// generateOne 生成单篇文章，外部生成耗尽重试后降级到兜底合成
func (s *generationService) generateOne(
	ctx context.Context,
	client service.AIClient,
	topic model.Topic,
	keywords model.KeywordSelection,
	params model.GenerateParams,
	scorer service.QualityScorer,
	complianceValidator service.ComplianceValidator,
	statusResolver *service.StatusResolver,
	synthesizer service.FallbackSynthesizer,
) GenerationResult {
	response, attempts, err := s.generateWithRetry(ctx, client, topic, keywords, params)
	if err != nil {
		logger.Warn("外部生成失败，降级到兜底合成",
			"topic", topic.Title,
			"attempts", len(attempts),
			"error", err)
		s.metrics.RecordFallback()
		article := synthesizer.Synthesize(topic, keywords)
		return GenerationResult{Article: article, Attempts: attempts}
	}

	article := s.assembleArticle(topic, keywords, response)
	score := scorer.Score(article, keywords)
	article.Metadata.QualityScore = score.Overall
	article.Metadata.Status = statusResolver.Resolve(score.Overall, false)

	report := complianceValidator.Validate(article)
	if !report.Passed {
		logger.Warn("文章未通过合规校验",
			"title", article.Title,
			"compliance_score", report.OverallScore,
			"critical_issues", len(report.CriticalIssues))
	}

	logger.Info("文章生成成功",
		"title", article.Title,
		"quality_score", score.Overall,
		"compliance_score", report.OverallScore,
		"status", article.Metadata.Status,
		"word_count", article.Metadata.WordCount)
	return GenerationResult{Article: article, Attempts: attempts, Compliance: &report}
}

// generateWithRetry 执行带重试的外部生成。
// 每次尝试都用派生的超时context与API调用竞速，超时同时取消在途调用；
// 模型级错误后同一次尝试内立即改用备用模型
func (s *generationService) generateWithRetry(
	ctx context.Context,
	client service.AIClient,
	topic model.Topic,
	keywords model.KeywordSelection,
	params model.GenerateParams,
) (*service.GenerationResponse, []model.GenerationAttempt, error) {
	timeout := time.Duration(params.Generation.APITimeoutMs) * time.Millisecond
	delay := time.Duration(params.Generation.RetryDelayMs) * time.Millisecond
	userPrompt := buildUserPrompt(topic, keywords, params.Content.MinWordCount)

	var attempts []model.GenerationAttempt
	var lastErr error

	for attempt := 1; attempt <= params.Generation.MaxRetries; attempt++ {
		record := model.GenerationAttempt{
			AttemptNumber: attempt,
			StartedAt:     time.Now(),
			Model:         params.DeepseekConfig.Model,
		}

		response, err := s.callWithTimeout(ctx, client, service.GenerationRequest{
			SystemPrompt: systemPrompt,
			UserPrompt:   userPrompt,
			Model:        params.DeepseekConfig.Model,
			MaxTokens:    params.DeepseekConfig.MaxTokens,
			Temperature:  0.7,
			Structured:   true,
		}, timeout)

		// 模型级错误后在同一次尝试内改用备用模型重试一次
		if err != nil && !errors.Is(err, context.DeadlineExceeded) && params.DeepseekConfig.BackupModel != "" {
			logger.Warn("主模型调用失败，改用备用模型",
				"attempt", attempt,
				"model", params.DeepseekConfig.Model,
				"backup_model", params.DeepseekConfig.BackupModel,
				"error", err)
			record.Model = params.DeepseekConfig.BackupModel
			response, err = s.callWithTimeout(ctx, client, service.GenerationRequest{
				SystemPrompt: systemPrompt,
				UserPrompt:   userPrompt,
				Model:        params.DeepseekConfig.BackupModel,
				MaxTokens:    params.DeepseekConfig.MaxTokens,
				Temperature:  0.7,
				Structured:   true,
			}, timeout)
		}

		switch {
		case err == nil:
			record.Outcome = model.OutcomeSuccess
			attempts = append(attempts, record)
			s.metrics.RecordAttempt(record.Outcome)
			return response, attempts, nil
		case errors.Is(err, context.DeadlineExceeded):
			record.Outcome = model.OutcomeTimeout
			lastErr = &model.GenerationTimeoutError{Attempt: attempt, Timeout: timeout}
			logger.Warn("生成尝试超时", "attempt", attempt, "timeout_ms", timeout.Milliseconds())
		default:
			record.Outcome = model.OutcomeServiceError
			lastErr = err
			logger.Warn("生成尝试失败", "attempt", attempt, "error", err)
		}
		attempts = append(attempts, record)
		s.metrics.RecordAttempt(record.Outcome)

		// 批次被取消时不再继续尝试
		if ctx.Err() != nil {
			return nil, attempts, ctx.Err()
		}

		// 失败尝试之间的固定间隔
		if attempt < params.Generation.MaxRetries {
			if err := middleware.SleepWithContext(ctx, delay); err != nil {
				return nil, attempts, err
			}
		}
	}

	return nil, attempts, fmt.Errorf("已达到最大重试次数(%d): %w", params.Generation.MaxRetries, lastErr)
}

// callWithTimeout 将单次API调用与超时竞速。
// 使用派生context保证超时路径同时取消在途的HTTP请求
func (s *generationService) callWithTimeout(
	ctx context.Context,
	client service.AIClient,
	req service.GenerationRequest,
	timeout time.Duration,
) (*service.GenerationResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type callResult struct {
		response *service.GenerationResponse
		err      error
	}
	done := make(chan callResult, 1)
	start := time.Now()

	go func() {
		response, err := client.GenerateArticle(callCtx, req)
		done <- callResult{response: response, err: err}
	}()

	select {
	case result := <-done:
		s.metrics.RecordAPICall(time.Since(start), result.err == nil)
		if result.err != nil && callCtx.Err() != nil && ctx.Err() == nil {
			// 客户端把context超时包装后返回时统一归为超时
			return nil, context.DeadlineExceeded
		}
		return result.response, result.err
	case <-callCtx.Done():
		s.metrics.RecordAPICall(time.Since(start), false)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, context.DeadlineExceeded
	}
}

// assembleArticle 把外部生成的响应组装为完整文章
func (s *generationService) assembleArticle(topic model.Topic, keywords model.KeywordSelection, response *service.GenerationResponse) model.Article {
	allKeywords := append(append([]string{}, keywords.Primary...), keywords.LongTail...)
	wordCount := service.CountWords(response.Content)

	return model.Article{
		Title:           response.Title,
		MetaDescription: response.MetaDescription,
		Content:         response.Content,
		CTA:             response.CTA,
		Category:        topic.Category,
		Keywords:        allKeywords,
		Metadata: model.ArticleMetadata{
			ID:             uuid.NewString(),
			WordCount:      wordCount,
			ReadingTime:    wordCount/200 + 1,
			CreatedAt:      time.Now(),
			TargetKeywords: allKeywords,
		},
	}
}

// initDatabase 初始化数据库
func (s *generationService) initDatabase(config model.DatabaseConfig) error {
	logger.Info("初始化数据库", "enabled", config.Enabled, "file_path", config.FilePath)

	if !config.Enabled {
		logger.Info("数据库功能未启用，跳过初始化")
		return nil
	}

	s.db = database.NewSQLiteDatabase(config.FilePath)
	if err := s.db.Init(); err != nil {
		logger.Error("初始化数据库失败", "error", err)
		return fmt.Errorf("初始化数据库失败: %w", err)
	}

	s.articleRepo = database.NewSQLiteArticleRepository(s.db)
	logger.Info("数据库和文章存储库初始化成功")
	return nil
}
