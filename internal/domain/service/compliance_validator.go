package service

import (
	"fmt"
	"math"
	"regexp"

	"github.com/wolfitem/ai-writer/internal/domain/model"
	"github.com/wolfitem/ai-writer/internal/infrastructure/logger"
)

// 单个致命违规对综合合规分的额外罚分
const criticalOverallPenalty = 50

// ComplianceValidator 定义合规校验器接口，独立于质量评分器，
// 可对任何来源的文章调用
type ComplianceValidator interface {
	// Validate 对文章执行完整的合规校验
	Validate(article model.Article) model.ComplianceReport
}

// complianceValidator 实现ComplianceValidator接口
type complianceValidator struct {
	threshold int
}

// NewComplianceValidator 创建合规校验器，threshold为通过阈值（默认85）
func NewComplianceValidator(threshold int) ComplianceValidator {
	if threshold <= 0 {
		threshold = 85
	}
	return &complianceValidator{threshold: threshold}
}

// Validate 对文章执行完整的合规校验
func (c *complianceValidator) Validate(article model.Article) model.ComplianceReport {
	defer logger.TimeTrack("ComplianceValidate")()

	// 校验基于去除标签后的全文，包括标题和行动号召
	text := article.Title + " " + stripHTMLTags(article.Content) + " " + article.CTA

	report := model.ComplianceReport{
		Disclaimers:      c.checkDisclaimers(article.Category, text),
		EEATSignals:      c.detectEEATSignals(text),
		Attribution:      c.checkAttribution(text),
		PolicyViolations: c.checkPolicyViolations(text),
	}

	// 综合分 = 加权和，再对每个致命违规追加罚分，下限为0
	weighted := float64(report.Disclaimers.Score)*disclaimerWeight +
		float64(report.EEATSignals.OverallScore)*eeatWeight +
		float64(report.Attribution.Score)*attributionWeight +
		float64(report.PolicyViolations.Score)*policyWeight

	criticalCount := report.PolicyViolations.SeverityBreakdown[model.SeverityCritical]
	overall := int(math.Round(weighted)) - criticalCount*criticalOverallPenalty
	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}
	report.OverallScore = overall

	c.collectIssues(&report)
	report.Passed = report.OverallScore >= c.threshold && len(report.CriticalIssues) == 0

	logger.Info("合规校验完成",
		"rule_version", complianceRuleVersion,
		"overall", report.OverallScore,
		"disclaimers", report.Disclaimers.Score,
		"eeat", report.EEATSignals.OverallScore,
		"attribution", report.Attribution.Score,
		"policy", report.PolicyViolations.Score,
		"risk_level", report.PolicyViolations.RiskLevel,
		"passed", report.Passed)

	return report
}

// checkDisclaimers 检查分类要求的免责声明覆盖情况。
// 得分 = 已检出/要求 × 100，该分类无要求时为100
func (c *complianceValidator) checkDisclaimers(category, text string) model.DisclaimerResult {
	required := requiredDisclaimersByCategory[category]
	result := model.DisclaimerResult{Required: required}

	if len(required) == 0 {
		result.Score = 100
		return result
	}

	for _, disclaimerType := range required {
		rule, ok := disclaimerRules[disclaimerType]
		if !ok {
			continue
		}
		if rule.Pattern.MatchString(text) {
			result.Found = append(result.Found, disclaimerType)
		} else {
			result.Missing = append(result.Missing, disclaimerType)
		}
	}

	result.Score = int(math.Round(float64(len(result.Found)) / float64(len(required)) * 100))
	return result
}

// detectEEATSignals 检测四类E-E-A-T信号。
// 每命中一条正则该类加20分（单类上限100），综合为各类的加权和并夹到100
func (c *complianceValidator) detectEEATSignals(text string) model.EEATSignals {
	scores := map[string]int{}
	var weighted float64

	for _, rule := range eeatRules {
		score := 0
		for _, pattern := range rule.Patterns {
			if pattern.MatchString(text) {
				score += 20
			}
		}
		if score > 100 {
			score = 100
		}
		scores[rule.Category] = score
		weighted += float64(score) * rule.Weight
	}

	overall := int(math.Round(weighted))
	if overall > 100 {
		overall = 100
	}

	return model.EEATSignals{
		Experience:        scores["experience"],
		Expertise:         scores["expertise"],
		Authoritativeness: scores["authoritativeness"],
		Trustworthiness:   scores["trustworthiness"],
		OverallScore:      overall,
	}
}

// checkAttribution 检查论断与统计数字的归因情况。
// 每个命中位置向后查找300字符窗口内的归因标记；
// 得分 = (总论断数-未归因数)/总论断数 × 100，无论断时为100
func (c *complianceValidator) checkAttribution(text string) model.AttributionResult {
	patterns := append(append([]*regexp.Regexp{}, claimPatterns...), statisticPatterns...)

	result := model.AttributionResult{}
	for _, pattern := range patterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			result.Claims++

			end := loc[0] + attributionWindow
			if end > len(text) {
				end = len(text)
			}
			window := text[loc[0]:end]

			attributed := false
			for _, marker := range attributionMarkers {
				if marker.MatchString(window) {
					attributed = true
					break
				}
			}
			if !attributed {
				result.UnattributedClaims++
			}
		}
	}

	if result.Claims == 0 {
		result.Score = 100
		return result
	}
	result.Score = int(math.Round(float64(result.Claims-result.UnattributedClaims) / float64(result.Claims) * 100))
	return result
}

// checkPolicyViolations 检查政策违规。
// 得分从100开始，每次命中按严重程度固定扣分，下限为0；
// 风险等级为命中的最高严重程度，中等违规超过2次时升级为高风险
func (c *complianceValidator) checkPolicyViolations(text string) model.PolicyViolationResult {
	result := model.PolicyViolationResult{
		SeverityBreakdown: map[string]int{},
		RiskLevel:         model.RiskLevelNone,
		Score:             100,
	}

	for _, rule := range policyRules {
		for _, pattern := range rule.Patterns {
			for _, match := range pattern.FindAllString(text, -1) {
				snippet := match
				if len(snippet) > 60 {
					snippet = snippet[:60]
				}
				result.Violations = append(result.Violations, model.PolicyViolation{
					Category: rule.Category,
					Severity: rule.Severity,
					Match:    snippet,
				})
				result.SeverityBreakdown[rule.Severity]++
				result.Score -= severityDeductions[rule.Severity]
			}
		}
	}

	if result.Score < 0 {
		result.Score = 0
	}

	result.RiskLevel = resolveRiskLevel(result.SeverityBreakdown)
	return result
}

// resolveRiskLevel 按最高严重程度决定风险等级，含中等违规的升级规则
func resolveRiskLevel(breakdown map[string]int) string {
	switch {
	case breakdown[model.SeverityCritical] > 0:
		return model.SeverityCritical
	case breakdown[model.SeverityHigh] > 0:
		return model.SeverityHigh
	case breakdown[model.SeverityMedium] > 2:
		// 多次中等违规累积为高风险
		return model.SeverityHigh
	case breakdown[model.SeverityMedium] > 0:
		return model.SeverityMedium
	case breakdown[model.SeverityLow] > 0:
		return model.SeverityLow
	default:
		return model.RiskLevelNone
	}
}

// collectIssues 汇总致命问题、警告与修复建议
func (c *complianceValidator) collectIssues(report *model.ComplianceReport) {
	// 致命问题：任何致命违规，或免责声明覆盖不足一半
	for _, violation := range report.PolicyViolations.Violations {
		if violation.Severity == model.SeverityCritical {
			report.CriticalIssues = append(report.CriticalIssues,
				fmt.Sprintf("致命政策违规 [%s]: %q", violation.Category, violation.Match))
		}
	}
	if report.Disclaimers.Score < 50 {
		report.CriticalIssues = append(report.CriticalIssues,
			fmt.Sprintf("免责声明覆盖严重不足: %d%%", report.Disclaimers.Score))
	}

	// 警告：较软的不足
	if report.PolicyViolations.SeverityBreakdown[model.SeverityHigh] > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("存在%d处高严重度违规措辞", report.PolicyViolations.SeverityBreakdown[model.SeverityHigh]))
	}
	if report.Attribution.UnattributedClaims > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("存在%d处未归因的论断或统计数字", report.Attribution.UnattributedClaims))
	}
	if report.EEATSignals.OverallScore < 40 {
		report.Warnings = append(report.Warnings, "E-E-A-T信号整体偏弱")
	}

	// 建议：缺失声明的修复模板、弱信号类别、未归因论断数量
	for _, missing := range report.Disclaimers.Missing {
		if rule, ok := disclaimerRules[missing]; ok {
			report.Recommendations = append(report.Recommendations, rule.Remediation)
		}
	}
	for _, weak := range weakEEATCategories(report.EEATSignals) {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("加强%s类信号：补充第一手经验、资质或权威来源的表述", weak))
	}
	if report.Attribution.UnattributedClaims > 0 {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("为%d处论断补充引用来源或链接", report.Attribution.UnattributedClaims))
	}
}

// weakEEATCategories 返回得分低于60的信号类别名
func weakEEATCategories(signals model.EEATSignals) []string {
	var weak []string
	for _, entry := range []struct {
		name  string
		score int
	}{
		{"experience", signals.Experience},
		{"expertise", signals.Expertise},
		{"authoritativeness", signals.Authoritativeness},
		{"trustworthiness", signals.Trustworthiness},
	} {
		if entry.score < 60 {
			weak = append(weak, entry.name)
		}
	}
	return weak
}
