package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wolfitem/ai-writer/internal/application/service"
	"github.com/wolfitem/ai-writer/internal/domain/model"
	"github.com/wolfitem/ai-writer/internal/infrastructure/logger"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <count>",
	Short: "批量生成文章并执行质量评分与合规校验",
	Long: `按内容类型轮换选题，调用Deepseek API顺序生成指定数量的文章，
对每篇文章执行质量评分、合规校验和状态判定，结果保存到SQLite数据库。
外部生成失败时降级到本地模板合成的兜底内容。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := strconv.Atoi(args[0])
		if err != nil || count <= 0 {
			return fmt.Errorf("无效的生成数量: %q，必须为正整数", args[0])
		}

		// 创建应用服务
		appService := service.NewGenerationService()

		params := model.GenerateParams{
			Count: count,
			DeepseekConfig: model.DeepseekConfig{
				APIKey:      viper.GetString("deepseek.api_key"),
				Model:       viper.GetString("deepseek.model"),
				BackupModel: viper.GetString("deepseek.backup_model"),
				MaxTokens:   viper.GetInt("deepseek.max_tokens"),
				MaxCalls:    viper.GetInt("deepseek.max_calls"),
				APIUrl:      viper.GetString("deepseek.api_url"),
			},
			Generation: model.GenerationConfig{
				MaxRetries:   viper.GetInt("generation.max_retries"),
				APITimeoutMs: viper.GetInt("generation.api_timeout_ms"),
				RetryDelayMs: viper.GetInt("generation.retry_delay_ms"),
			},
			Content: model.ContentConfig{
				AutoApprovalScore:   viper.GetInt("content_generation.auto_approval_score"),
				MinWordCount:        viper.GetInt("content_generation.min_word_count"),
				ComplianceThreshold: viper.GetInt("content_generation.compliance_threshold"),
			},
			DatabaseConfig: model.DatabaseConfig{
				Enabled:  viper.GetBool("database.enabled"),
				FilePath: viper.GetString("database.file_path"),
			},
			Catalogs: model.CatalogConfig{
				TopicsFile:   viper.GetString("catalogs.topics_file"),
				KeywordsFile: viper.GetString("catalogs.keywords_file"),
			},
		}

		summary, err := appService.GenerateBatch(context.Background(), params)
		if err != nil {
			logger.Error("批量生成失败", "error", err)
			return fmt.Errorf("批量生成失败: %w", err)
		}

		// 每篇文章输出一行摘要
		for i, result := range summary.Results {
			kind := "generated"
			if result.Article.Metadata.IsFallbackArticle {
				kind = "fallback"
			}
			fmt.Printf("[%d/%d] %-9s score=%-3d status=%-13s %s\n",
				i+1, len(summary.Results), kind,
				result.Article.Metadata.QualityScore,
				result.Article.Metadata.Status,
				result.Article.Title)
		}
		fmt.Printf("共产出%d篇文章（兜底%d篇，落库%d篇）\n",
			len(summary.Results), summary.FallbackCount, summary.PersistedCount)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
