package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wolfitem/ai-writer/internal/domain/model"
	"github.com/wolfitem/ai-writer/internal/domain/service"
	"github.com/wolfitem/ai-writer/internal/infrastructure/logger"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "对JSON格式的文章草稿执行合规校验",
	Long: `读取一个JSON格式的文章草稿文件，执行免责声明覆盖、E-E-A-T信号、
论断归因和内容政策四个维度的合规校验，输出完整的合规报告。
校验未通过时以非零状态码退出。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("读取草稿文件失败: %w", err)
		}

		var article model.Article
		if err := json.Unmarshal(data, &article); err != nil {
			return fmt.Errorf("解析草稿文件失败: %w", err)
		}
		if article.Title == "" && article.Content == "" {
			return fmt.Errorf("草稿文件缺少标题和正文内容: %s", args[0])
		}

		threshold := viper.GetInt("content_generation.compliance_threshold")
		validator := service.NewComplianceValidator(threshold)
		report := validator.Validate(article)
		logger.Info("合规校验完成",
			"file", args[0],
			"score", report.OverallScore,
			"passed", report.Passed)

		printComplianceReport(article, report)

		if !report.Passed {
			return fmt.Errorf("合规校验未通过 (得分%d)", report.OverallScore)
		}
		return nil
	},
}

// printComplianceReport 输出人类可读的合规报告
func printComplianceReport(article model.Article, report model.ComplianceReport) {
	status := "PASSED"
	if !report.Passed {
		status = "FAILED"
	}

	fmt.Printf("合规报告: %s\n", article.Title)
	fmt.Printf("  综合得分: %d/100 [%s]\n", report.OverallScore, status)
	fmt.Printf("  免责声明: %d (缺失: %s)\n", report.Disclaimers.Score, joinOrNone(report.Disclaimers.Missing))
	fmt.Printf("  E-E-A-T : %d\n", report.EEATSignals.OverallScore)
	fmt.Printf("  论断归因: %d\n", report.Attribution.Score)
	fmt.Printf("  内容政策: %d (风险等级: %s)\n", report.PolicyViolations.Score, report.PolicyViolations.RiskLevel)

	if len(report.CriticalIssues) > 0 {
		fmt.Println("  致命问题:")
		for _, issue := range report.CriticalIssues {
			fmt.Printf("    - %s\n", issue)
		}
	}
	if len(report.Warnings) > 0 {
		fmt.Println("  警告:")
		for _, warning := range report.Warnings {
			fmt.Printf("    - %s\n", warning)
		}
	}
	if len(report.Recommendations) > 0 {
		fmt.Println("  修复建议:")
		for _, rec := range report.Recommendations {
			fmt.Printf("    - %s\n", rec)
		}
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "无"
	}
	return strings.Join(items, ", ")
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
