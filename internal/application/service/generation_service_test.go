package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfitem/ai-writer/internal/domain/model"
	"github.com/wolfitem/ai-writer/internal/domain/service"
)

// failingClient 每次调用都返回服务错误
type failingClient struct {
	calls int
}

func (c *failingClient) GenerateArticle(ctx context.Context, req service.GenerationRequest) (*service.GenerationResponse, error) {
	c.calls++
	return nil, errors.New("服务暂不可用")
}

// blockingClient 阻塞到context被取消，模拟挂起的外部调用
type blockingClient struct{}

func (c *blockingClient) GenerateArticle(ctx context.Context, req service.GenerationRequest) (*service.GenerationResponse, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// echoClient 返回固定的结构化响应
type echoClient struct {
	response service.GenerationResponse
}

func (c *echoClient) GenerateArticle(ctx context.Context, req service.GenerationRequest) (*service.GenerationResponse, error) {
	resp := c.response
	return &resp, nil
}

// backupOnlyClient 主模型失败，备用模型成功
type backupOnlyClient struct {
	backupModel string
	response    service.GenerationResponse
	models      []string
}

func (c *backupOnlyClient) GenerateArticle(ctx context.Context, req service.GenerationRequest) (*service.GenerationResponse, error) {
	c.models = append(c.models, req.Model)
	if req.Model != c.backupModel {
		return nil, errors.New("模型过载")
	}
	resp := c.response
	return &resp, nil
}

// setupTopicsCatalog 在临时目录写入话题文件并切换工作目录，
// 目录路径校验要求文件位于当前工作目录内
func setupTopicsCatalog(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	topics := `[
		{"id": 1, "title": "Index Fund Investing for Beginners", "category": "investing",
		 "keywords": ["index funds", "passive investing", "low cost index funds for beginners"],
		 "priority": "high"}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "topics.json"), []byte(topics), 0644))

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}

func testParams(count int) model.GenerateParams {
	return model.GenerateParams{
		Count: count,
		DeepseekConfig: model.DeepseekConfig{
			APIKey:    "test-key",
			Model:     "deepseek-chat",
			MaxTokens: 4000,
		},
		Generation: model.GenerationConfig{
			MaxRetries:   3,
			APITimeoutMs: 200,
			RetryDelayMs: 1,
		},
		Content: model.ContentConfig{
			AutoApprovalScore:   70,
			MinWordCount:        2000,
			ComplianceThreshold: 85,
		},
		Catalogs: model.CatalogConfig{TopicsFile: "topics.json"},
	}
}

func TestGenerateBatchRejectsInvalidCount(t *testing.T) {
	svc := NewGenerationServiceWithClient(&failingClient{})

	_, err := svc.GenerateBatch(context.Background(), testParams(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "无效的生成数量")
}

func TestGenerateBatchFailsWithoutTopicsCatalog(t *testing.T) {
	setupTopicsCatalog(t)

	params := testParams(1)
	params.Catalogs.TopicsFile = "missing.json"

	svc := NewGenerationServiceWithClient(&echoClient{})
	_, err := svc.GenerateBatch(context.Background(), params)
	require.Error(t, err)
}

// 外部生成耗尽重试后应降级到兜底合成，且尝试记录完整
func TestGenerateBatchServiceErrorFallsBackToSynthesis(t *testing.T) {
	setupTopicsCatalog(t)

	client := &failingClient{}
	svc := NewGenerationServiceWithClient(client)

	summary, err := svc.GenerateBatch(context.Background(), testParams(1))
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)

	result := summary.Results[0]
	require.Len(t, result.Attempts, 3)
	for i, attempt := range result.Attempts {
		assert.Equal(t, i+1, attempt.AttemptNumber)
		assert.Equal(t, model.OutcomeServiceError, attempt.Outcome)
		assert.Equal(t, "deepseek-chat", attempt.Model)
	}
	assert.Equal(t, 3, client.calls)

	article := result.Article
	assert.True(t, article.Metadata.IsFallbackArticle)
	assert.True(t, article.Metadata.IsMockArticle)
	assert.Equal(t, model.StatusDraft, article.Metadata.Status)
	assert.GreaterOrEqual(t, article.Metadata.QualityScore, 70)
	assert.LessOrEqual(t, article.Metadata.QualityScore, 98)
	assert.NotEmpty(t, article.Metadata.TemplateUsed)

	assert.Equal(t, 1, summary.FallbackCount)
	assert.False(t, summary.UsedExamples)
	assert.Nil(t, result.Compliance)
}

// 挂起的外部调用应被派生context的超时取消并记为超时结局
func TestGenerateBatchTimeoutAttempts(t *testing.T) {
	setupTopicsCatalog(t)

	params := testParams(1)
	params.Generation.MaxRetries = 2
	params.Generation.APITimeoutMs = 30

	svc := NewGenerationServiceWithClient(&blockingClient{})
	summary, err := svc.GenerateBatch(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)

	result := summary.Results[0]
	require.Len(t, result.Attempts, 2)
	for _, attempt := range result.Attempts {
		assert.Equal(t, model.OutcomeTimeout, attempt.Outcome)
	}
	assert.True(t, result.Article.Metadata.IsFallbackArticle)
}

func TestGenerateBatchSuccess(t *testing.T) {
	setupTopicsCatalog(t)

	content := "<h1>Index Fund Investing for Beginners</h1>" +
		"<p>Index funds offer a simple path into passive investing. Investing is a long game, " +
		"and broad market exposure keeps costs low while compounding does the heavy lifting.</p>" +
		"<h2>How Index Funds Work</h2><p>A fund tracks a market index and holds every constituent, " +
		"so investors own a slice of the whole market instead of picking winners.</p>" +
		"<h2>Getting Started</h2><ul><li>Open a brokerage account</li><li>Pick a broad market fund</li>" +
		"<li>Automate monthly contributions</li></ul>" +
		"<p>All investments carry risk. Past performance does not guarantee future results. " +
		"This content is for informational purposes only and not financial advice.</p>"

	client := &echoClient{response: service.GenerationResponse{
		Title:           "Index Fund Investing for Beginners: A Practical Start",
		MetaDescription: "A beginner's walkthrough of index funds, passive investing and how to start with low costs.",
		Content:         content,
		CTA:             "Subscribe for weekly investing breakdowns.",
	}}

	svc := NewGenerationServiceWithClient(client)
	summary, err := svc.GenerateBatch(context.Background(), testParams(1))
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)

	result := summary.Results[0]
	require.Len(t, result.Attempts, 1)
	assert.Equal(t, model.OutcomeSuccess, result.Attempts[0].Outcome)

	article := result.Article
	assert.False(t, article.Metadata.IsFallbackArticle)
	assert.NotEmpty(t, article.Metadata.ID)
	assert.Greater(t, article.Metadata.WordCount, 0)
	assert.Greater(t, article.Metadata.ReadingTime, 0)
	assert.Equal(t, "investing", article.Category)
	assert.Contains(t, []string{model.StatusAutoApproved, model.StatusNeedsReview}, article.Metadata.Status)

	require.NotNil(t, result.Compliance)
	assert.GreaterOrEqual(t, result.Compliance.OverallScore, 0)
	assert.Equal(t, 0, summary.FallbackCount)
}

// 模型级错误后应在同一次尝试内改用备用模型
func TestGenerateBatchBackupModelWithinAttempt(t *testing.T) {
	setupTopicsCatalog(t)

	client := &backupOnlyClient{
		backupModel: "deepseek-reasoner",
		response: service.GenerationResponse{
			Title:   "Index Funds Explained",
			Content: "<h1>Index Funds</h1><p>Low cost diversification for patient investors.</p>",
		},
	}

	params := testParams(1)
	params.DeepseekConfig.BackupModel = "deepseek-reasoner"

	svc := NewGenerationServiceWithClient(client)
	summary, err := svc.GenerateBatch(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)

	result := summary.Results[0]
	require.Len(t, result.Attempts, 1)
	assert.Equal(t, model.OutcomeSuccess, result.Attempts[0].Outcome)
	assert.Equal(t, "deepseek-reasoner", result.Attempts[0].Model)
	assert.Equal(t, []string{"deepseek-chat", "deepseek-reasoner"}, client.models)
	assert.False(t, result.Article.Metadata.IsFallbackArticle)
}

func TestGenerateBatchCancelledContext(t *testing.T) {
	setupTopicsCatalog(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// 批次开始前就被取消：循环不产出，启用示例文章库
	svc := NewGenerationServiceWithClient(&echoClient{})
	summary, err := svc.GenerateBatch(ctx, testParams(2))
	require.NoError(t, err)
	assert.True(t, summary.UsedExamples)
	require.NotEmpty(t, summary.Results)
	assert.LessOrEqual(t, len(summary.Results), 2)
	for _, result := range summary.Results {
		assert.True(t, result.Article.Metadata.IsMockArticle)
		assert.Equal(t, model.StatusDraft, result.Article.Metadata.Status)
	}
}

func TestBuildUserPrompt(t *testing.T) {
	topic := model.Topic{
		Title:    "Index Fund Investing for Beginners",
		Category: "investing",
		Profile:  &model.ContentTypeProfile{Name: "实用技巧", Angle: model.AnglePracticalTips},
	}
	keywords := model.KeywordSelection{
		Primary:  []string{"index funds", "passive investing"},
		LongTail: []string{"low cost index funds for beginners"},
		Target:   "index funds",
	}

	prompt := buildUserPrompt(topic, keywords, 2000)
	assert.Contains(t, prompt, topic.Title)
	assert.Contains(t, prompt, "index funds")
	assert.Contains(t, prompt, "2000")

	// 未知角度使用通用模板
	topic.Profile = &model.ContentTypeProfile{Angle: model.ContentAngle("unknown")}
	generic := buildUserPrompt(topic, keywords, 1500)
	assert.Contains(t, generic, topic.Title)
	assert.NotEmpty(t, generic)

	// 无画像时同样走通用模板
	topic.Profile = nil
	assert.NotEmpty(t, buildUserPrompt(topic, keywords, 1500))
}

// 确保成功路径的文章关键词来自选择结果
func TestAssembleArticleKeywords(t *testing.T) {
	svc := &generationService{}
	topic := model.Topic{Title: "Budgeting Basics", Category: "saving"}
	keywords := model.KeywordSelection{
		Primary:  []string{"budgeting", "saving money"},
		LongTail: []string{"how to budget on a low income"},
		Target:   "budgeting",
	}
	response := &service.GenerationResponse{
		Title:   "Budgeting Basics That Stick",
		Content: "<h1>Budgeting Basics</h1>\n<p>" + strings.Repeat("word ", 400) + "</p>",
	}

	article := svc.assembleArticle(topic, keywords, response)
	assert.Equal(t, []string{"budgeting", "saving money", "how to budget on a low income"}, article.Keywords)
	assert.Equal(t, "saving", article.Category)
	assert.Equal(t, 402, article.Metadata.WordCount)
	assert.Equal(t, 402/200+1, article.Metadata.ReadingTime)
}
