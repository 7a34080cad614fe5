package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfitem/ai-writer/internal/domain/model"
)

func TestCheckDisclaimersScoreFormula(t *testing.T) {
	v := &complianceValidator{threshold: 85}

	// investing分类要求 investment_risk / general_risk / affiliate 三种声明，
	// 文中只覆盖前两种
	text := "All investments carry risk and past performance does not guarantee anything. " +
		"Individual results may vary."
	result := v.checkDisclaimers("investing", text)

	assert.ElementsMatch(t, []string{"investment_risk", "general_risk"}, result.Found)
	assert.Equal(t, []string{"affiliate"}, result.Missing)
	assert.Equal(t, 67, result.Score) // round(2/3*100)
}

func TestCheckDisclaimersNoRequirement(t *testing.T) {
	v := &complianceValidator{threshold: 85}

	result := v.checkDisclaimers("unlisted-category", "any text at all")
	assert.Equal(t, 100, result.Score)
	assert.Empty(t, result.Missing)
}

func TestDetectEEATSignals(t *testing.T) {
	v := &complianceValidator{threshold: 85}

	text := "In my experience, and according to the Federal Reserve, official data backs this up. " +
		"Our content is fact-checked under strict editorial standards."
	signals := v.detectEEATSignals(text)

	assert.Equal(t, 20, signals.Experience)
	assert.Equal(t, 40, signals.Authoritativeness) // 机构引用 + official data
	assert.Equal(t, 40, signals.Trustworthiness)   // fact-checked + editorial standards
	assert.Equal(t, 0, signals.Expertise)
	assert.Greater(t, signals.OverallScore, 0)
	assert.LessOrEqual(t, signals.OverallScore, 100)
}

func TestCheckAttributionWindow(t *testing.T) {
	v := &complianceValidator{threshold: 85}

	// 论断后300字符内出现归因标记
	attributed := "Studies show that automated savings stick, according to The Journal of Consumer Finance."
	result := v.checkAttribution(attributed)
	assert.Equal(t, 1, result.Claims)
	assert.Equal(t, 0, result.UnattributedClaims)
	assert.Equal(t, 100, result.Score)

	// 同一论断没有任何归因标记
	unattributed := "Studies show that automated savings stick and everyone should do it immediately."
	result = v.checkAttribution(unattributed)
	assert.Equal(t, 1, result.Claims)
	assert.Equal(t, 1, result.UnattributedClaims)
	assert.Equal(t, 0, result.Score)
}

func TestCheckAttributionNoClaims(t *testing.T) {
	v := &complianceValidator{threshold: 85}

	result := v.checkAttribution("A calm paragraph with no claims and no numbers at all.")
	assert.Equal(t, 0, result.Claims)
	assert.Equal(t, 100, result.Score)
}

func TestPolicyViolationsScoreFloor(t *testing.T) {
	v := &complianceValidator{threshold: 85}

	// 三个致命措辞共扣150分，得分必须以0为下限
	text := "Guaranteed returns! A risk-free investment where you cannot lose. 100% guaranteed."
	result := v.checkPolicyViolations(text)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, model.SeverityCritical, result.RiskLevel)
	assert.GreaterOrEqual(t, result.SeverityBreakdown[model.SeverityCritical], 3)
}

func TestMediumViolationsEscalateToHighRisk(t *testing.T) {
	v := &complianceValidator{threshold: 85}

	text := "Everyone knows this. Everyone knows that. Everyone knows the rest. It never fails."
	result := v.checkPolicyViolations(text)

	assert.Equal(t, model.SeverityHigh, result.RiskLevel)
	assert.Greater(t, result.SeverityBreakdown[model.SeverityMedium], 2)
}

// "guaranteed returns"必须把综合合规分拉低至少50分并产生致命问题
func TestCriticalViolationReducesOverall(t *testing.T) {
	v := NewComplianceValidator(85)

	base := model.Article{
		Title:   "A Calm Look at Savings Habits",
		Content: "<p>Building a savings habit takes time and consistent effort over many months.</p>",
	}
	baseline := v.Validate(base)

	risky := base
	risky.Content = strings.Replace(risky.Content, "consistent effort", "guaranteed returns", 1)
	report := v.Validate(risky)

	require.NotEmpty(t, report.CriticalIssues)
	assert.Equal(t, model.SeverityCritical, report.PolicyViolations.RiskLevel)
	assert.False(t, report.Passed)
	assert.GreaterOrEqual(t, baseline.OverallScore-report.OverallScore, 50)
	assert.GreaterOrEqual(t, report.OverallScore, 0)
}

func TestValidatePassedRequiresThresholdAndNoCritical(t *testing.T) {
	v := NewComplianceValidator(85)

	article := model.Article{
		Title:    "How I Rebuilt My Emergency Fund",
		Category: "saving",
		Content: "<h1>How I Rebuilt My Emergency Fund</h1>" +
			"<p>In my experience, after 10 years of industry experience writing about money, " +
			"the habit matters more than the amount. According to the Federal Reserve, official data " +
			"shows most households cannot cover a $400 emergency. This article is fact-checked and " +
			"follows our editorial standards with full transparency.</p>" +
			"<p>This article contains affiliate links and we may earn a commission at no extra cost to you. " +
			"Individual results may vary. This content is for informational purposes only and is not " +
			"financial advice; consult a qualified financial advisor.</p>",
		CTA: "Download the free worksheet.",
	}

	report := v.Validate(article)
	assert.Empty(t, report.CriticalIssues)
	assert.Equal(t, 100, report.Disclaimers.Score)
	assert.True(t, report.Passed, "score=%d", report.OverallScore)
}

func TestMissingDisclaimerRemediationIncluded(t *testing.T) {
	v := NewComplianceValidator(85)

	article := model.Article{
		Title:    "Best Index Funds",
		Category: "investing",
		Content:  "<p>Index funds pool many stocks into one purchase.</p>",
	}

	report := v.Validate(article)
	require.NotEmpty(t, report.Disclaimers.Missing)
	joined := strings.Join(report.Recommendations, "\n")
	assert.Contains(t, joined, "All investments carry risk")
}
