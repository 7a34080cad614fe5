package model

import "time"

// ContentAngle 表示文章的内容类型角度，用于提示词构建和兜底模板的分发
type ContentAngle string

// 五种固定的内容类型角度
const (
	AngleMarketNews        ContentAngle = "market_news"
	AngleContrarianOpinion ContentAngle = "contrarian_opinion"
	AnglePracticalTips     ContentAngle = "practical_tips"
	AngleProductReview     ContentAngle = "product_review"
	AngleCaseStudy         ContentAngle = "case_study"
)

// 话题优先级
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// 文章生命周期状态
const (
	StatusDraft        = "draft"
	StatusAutoApproved = "auto_approved"
	StatusNeedsReview  = "needs_review"
)

// Topic 表示话题目录中的一个条目
type Topic struct {
	ID       int      `json:"id"`       // 话题ID
	Title    string   `json:"title"`    // 话题标题
	Category string   `json:"category"` // 话题分类
	Keywords []string `json:"keywords"` // 种子关键词（有序）
	Priority string   `json:"priority"` // 优先级: high/medium/low

	// Profile 是本次选题时附加的内容类型画像，仅在选题后有值
	Profile *ContentTypeProfile `json:"-"`
}

// ContentTypeProfile 表示五种固定内容类型画像之一
type ContentTypeProfile struct {
	Name                string       // 画像名称
	Angle               ContentAngle // 分发用的角度标签
	TargetPercent       int          // 在10篇轮换周期中的目标占比
	PreferredCategories []string     // 偏好的话题分类
}

// KeywordSelection 表示为单个话题派生的关键词选择
type KeywordSelection struct {
	Primary  []string // 主关键词，最多3个
	LongTail []string // 长尾关键词，最多2个
	Target   string   // 目标关键词，等于Primary[0]
}

// 单次生成尝试的结果
const (
	OutcomeSuccess      = "success"
	OutcomeTimeout      = "timeout"
	OutcomeServiceError = "service_error"
)

// GenerationAttempt 记录一次外部生成尝试
type GenerationAttempt struct {
	AttemptNumber int       // 第几次尝试，从1开始
	StartedAt     time.Time // 尝试开始时间
	Outcome       string    // success/timeout/service_error
	Model         string    // 本次使用的模型
}

// ArticleMetadata 保存文章的元数据
type ArticleMetadata struct {
	ID                string    `json:"id"`              // 文章唯一ID
	QualityScore      int       `json:"quality_score"`   // 综合质量分
	WordCount         int       `json:"word_count"`      // 词数
	ReadingTime       int       `json:"reading_time"`    // 预计阅读分钟数
	Status            string    `json:"status"`          // 生命周期状态
	CreatedAt         time.Time `json:"created_at"`      // 创建时间
	IsFallbackArticle bool      `json:"is_fallback"`     // 是否为兜底生成的文章
	IsMockArticle     bool      `json:"is_mock"`         // 质量分是否为模拟值
	TemplateUsed      string    `json:"template_used"`   // 兜底模板名称（兜底文章专用）
	TargetKeywords    []string  `json:"target_keywords"` // 目标关键词
}

// Article 表示一篇完整的文章
type Article struct {
	Title           string          `json:"title"`            // 文章标题
	MetaDescription string          `json:"meta_description"` // SEO描述
	Content         string          `json:"content"`          // HTML正文
	CTA             string          `json:"cta"`              // 行动号召
	Category        string          `json:"category"`         // 分类
	Keywords        []string        `json:"keywords"`         // 关键词
	Metadata        ArticleMetadata `json:"metadata"`         // 元数据
}

// QualityBreakdown 六个独立子指标的得分
type QualityBreakdown struct {
	Readability    int `json:"readability"`     // 可读性
	SEO            int `json:"seo"`             // SEO质量
	KeywordDensity int `json:"keyword_density"` // 关键词密度
	Structure      int `json:"structure"`       // 结构完整性
	Length         int `json:"length"`          // 长度
	Originality    int `json:"originality"`     // 原创性
}

// QualityScore 表示一次质量评分的完整结果，计算完成后不可变
type QualityScore struct {
	Overall         int                `json:"overall"`         // 综合得分 0-100
	Breakdown       QualityBreakdown   `json:"breakdown"`       // 子指标得分
	Weights         map[string]float64 `json:"weights"`         // 各子指标权重，总和为1.0
	Recommendations []string           `json:"recommendations"` // 改进建议
}

// DisclaimerResult 免责声明覆盖检查结果
type DisclaimerResult struct {
	Required []string `json:"required"` // 该分类要求的声明类型
	Found    []string `json:"found"`    // 检测到的声明类型
	Missing  []string `json:"missing"`  // 缺失的声明类型
	Score    int      `json:"score"`    // found/required*100，无要求时为100
}

// EEATSignals E-E-A-T四类信号的检测结果
type EEATSignals struct {
	Experience        int `json:"experience"`        // 经验信号
	Expertise         int `json:"expertise"`         // 专业性信号
	Authoritativeness int `json:"authoritativeness"` // 权威性信号
	Trustworthiness   int `json:"trustworthiness"`   // 可信度信号
	OverallScore      int `json:"overall_score"`     // 加权综合
}

// AttributionResult 论断归因检查结果
type AttributionResult struct {
	Claims             int `json:"claims"`              // 检测到的论断总数
	UnattributedClaims int `json:"unattributed_claims"` // 未归因的论断数
	Score              int `json:"score"`               // 归因得分
}

// 违规严重程度与风险等级
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
	RiskLevelNone    = "none"
)

// PolicyViolation 表示一条被命中的违规规则
type PolicyViolation struct {
	Category string `json:"category"` // 违规分类
	Severity string `json:"severity"` // 严重程度
	Match    string `json:"match"`    // 命中的文本片段
}

// PolicyViolationResult 政策违规检查结果
type PolicyViolationResult struct {
	Violations        []PolicyViolation `json:"violations"`         // 所有命中的违规
	SeverityBreakdown map[string]int    `json:"severity_breakdown"` // 按严重程度统计
	RiskLevel         string            `json:"risk_level"`         // 风险等级
	Score             int               `json:"score"`              // 扣分后的得分，下限为0
}

// ComplianceReport 合规校验的完整报告
type ComplianceReport struct {
	OverallScore     int                   `json:"overall_score"`     // 综合合规分 0-100
	Disclaimers      DisclaimerResult      `json:"disclaimers"`       // 免责声明检查
	EEATSignals      EEATSignals           `json:"eat_signals"`       // E-E-A-T信号
	Attribution      AttributionResult     `json:"attribution"`       // 归因检查
	PolicyViolations PolicyViolationResult `json:"policy_violations"` // 政策违规
	CriticalIssues   []string              `json:"critical_issues"`   // 致命问题
	Warnings         []string              `json:"warnings"`          // 警告
	Recommendations  []string              `json:"recommendations"`   // 修复建议
	Passed           bool                  `json:"passed"`            // 是否可自动发布
}

// DeepseekConfig 包含Deepseek API的配置信息
type DeepseekConfig struct {
	APIKey      string // API密钥
	Model       string // 主模型名称
	BackupModel string // 备用模型名称
	MaxTokens   int    // 最大令牌数
	MaxCalls    int    // 24小时内最大调用次数
	APIUrl      string // API接口地址
}

// GenerationConfig 生成编排器的配置
type GenerationConfig struct {
	MaxRetries   int // 最大尝试次数，默认3
	APITimeoutMs int // 单次尝试超时毫秒数，默认60000
	RetryDelayMs int // 失败尝试之间的等待毫秒数，默认2000
}

// ContentConfig 内容相关的阈值配置
type ContentConfig struct {
	AutoApprovalScore   int // 自动批准阈值，默认70
	MinWordCount        int // 最小目标词数，默认2000
	ComplianceThreshold int // 合规通过阈值，默认85
}

// DatabaseConfig 包含数据库的配置信息
type DatabaseConfig struct {
	Enabled  bool   // 是否启用数据库
	FilePath string // 数据库文件路径
}

// CatalogConfig 目录文件的路径配置
type CatalogConfig struct {
	TopicsFile   string // 话题目录JSON文件路径
	KeywordsFile string // 关键词分组JSON文件路径
}

// GenerateParams 包含批量生成文章的所有参数
type GenerateParams struct {
	Count          int              // 要生成的文章数量
	DeepseekConfig DeepseekConfig   // Deepseek API配置
	Generation     GenerationConfig // 编排器配置
	Content        ContentConfig    // 内容阈值配置
	DatabaseConfig DatabaseConfig   // 数据库配置
	Catalogs       CatalogConfig    // 目录文件配置
}

// KeywordGroups 关键词分组目录
type KeywordGroups struct {
	LongTailKeywords []string            `json:"longTailKeywords"` // 长尾关键词组
	Groups           map[string][]string `json:"groups"`           // 其他分组
}
