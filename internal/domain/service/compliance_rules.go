package service

import "regexp"

// 合规规则表版本号。规则的增删只改本文件，不触碰校验引擎
const complianceRuleVersion = "2024.2"

// DisclaimerRule 一种免责声明的检测规则与修复模板
type DisclaimerRule struct {
	Type        string         // 声明类型
	Pattern     *regexp.Regexp // 检测正则
	Remediation string         // 修复建议（含可直接插入的英文声明文本）
}

// disclaimerRules 所有已知的免责声明类型
var disclaimerRules = map[string]DisclaimerRule{
	"investment_risk": {
		Type:        "investment_risk",
		Pattern:     regexp.MustCompile(`(?i)(investments?\s+(carry|carries|involve|involves)\s+risk|risk of loss|may lose (value|money)|past performance (is|does) not)`),
		Remediation: `缺少投资风险声明，建议在文末添加: "All investments carry risk, including the potential loss of principal. Past performance does not guarantee future results."`,
	},
	"general_risk": {
		Type:        "general_risk",
		Pattern:     regexp.MustCompile(`(?i)(no guarantee|results (may|will) vary|individual (results|circumstances) (may )?vary|at your own risk)`),
		Remediation: `缺少一般风险声明，建议添加: "Individual results may vary. There is no guarantee of any specific outcome."`,
	},
	"affiliate": {
		Type:        "affiliate",
		Pattern:     regexp.MustCompile(`(?i)(affiliate (link|links|commission|disclosure)|we may (earn|receive) (a )?commission|compensated (through|by))`),
		Remediation: `缺少联盟推广声明，建议添加: "This article contains affiliate links. We may earn a commission at no extra cost to you."`,
	},
	"not_financial_advice": {
		Type:        "not_financial_advice",
		Pattern:     regexp.MustCompile(`(?i)(not (intended as )?(financial|investment) advice|consult (a|your) (licensed |qualified )?(financial advisor|professional)|for (educational|informational) purposes only)`),
		Remediation: `缺少非投资建议声明，建议添加: "This content is for informational purposes only and is not financial advice. Consult a qualified financial advisor before making decisions."`,
	},
	"results_vary": {
		Type:        "results_vary",
		Pattern:     regexp.MustCompile(`(?i)(results are not typical|earnings (are )?not guaranteed|no income (is )?guaranteed)`),
		Remediation: `缺少收益差异声明，建议添加: "Results are not typical. No income or earnings are guaranteed."`,
	},
}

// requiredDisclaimersByCategory 各话题分类要求的免责声明类型。
// 未列出的分类不强制任何声明
var requiredDisclaimersByCategory = map[string][]string{
	"investing":        {"investment_risk", "general_risk", "affiliate"},
	"market-trends":    {"investment_risk", "general_risk"},
	"economy":          {"general_risk"},
	"retirement":       {"investment_risk", "not_financial_advice"},
	"personal-finance": {"not_financial_advice", "affiliate"},
	"saving":           {"affiliate"},
	"budgeting":        {"affiliate"},
	"banking":          {"affiliate", "not_financial_advice"},
	"credit-cards":     {"affiliate", "not_financial_advice"},
	"debt":             {"not_financial_advice"},
	"side-hustle":      {"results_vary"},
	"tools":            {"affiliate"},
}

// EEATRule 一类E-E-A-T信号的检测规则
type EEATRule struct {
	Category string           // experience/expertise/authoritativeness/trustworthiness
	Weight   float64          // 加权系数
	Patterns []*regexp.Regexp // 信号正则，每命中一条加20分，单类上限100
}

// eeatRules 四类E-E-A-T信号规则
var eeatRules = []EEATRule{
	{
		Category: "experience",
		Weight:   0.30,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)in my experience`),
			regexp.MustCompile(`(?i)i (have )?(personally )?(used|tested|tried)`),
			regexp.MustCompile(`(?i)after \d+ years? of`),
			regexp.MustCompile(`(?i)when i (first )?started`),
			regexp.MustCompile(`(?i)we tested`),
		},
	},
	{
		Category: "expertise",
		Weight:   0.40,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)certified financial planner|cfa charter|\bcpa\b`),
			regexp.MustCompile(`(?i)i hold a (degree|certification|license)`),
			regexp.MustCompile(`(?i)published (in|by) [A-Z]`),
			regexp.MustCompile(`(?i)as a (licensed|chartered) `),
			regexp.MustCompile(`(?i)\d+ years? (of )?(industry )?experience`),
		},
	},
	{
		Category: "authoritativeness",
		Weight:   0.30,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)according to (the )?(sec|federal reserve|irs|fdic|bureau of labor statistics)`),
			regexp.MustCompile(`(?i)(cited by|featured in|quoted (in|by))`),
			regexp.MustCompile(`(?i)peer[- ]reviewed`),
			regexp.MustCompile(`(?i)official (data|statistics|figures)`),
			regexp.MustCompile(`(?i)government (report|data|survey)`),
		},
	},
	{
		Category: "trustworthiness",
		Weight:   0.20,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)fiduciary (duty|standard)`),
			regexp.MustCompile(`(?i)we only recommend products`),
			regexp.MustCompile(`(?i)transparen(t|cy)`),
			regexp.MustCompile(`(?i)fact[- ]checked`),
			regexp.MustCompile(`(?i)editorial (independence|standards)`),
		},
	},
}

// claimPatterns 论断类措辞
var claimPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)studies show`),
	regexp.MustCompile(`(?i)experts (say|agree|recommend)`),
	regexp.MustCompile(`(?i)research (indicates|suggests|shows)`),
	regexp.MustCompile(`(?i)surveys? (show|reveal|found)`),
	regexp.MustCompile(`(?i)analysts (predict|estimate|expect)`),
}

// statisticPatterns 统计数字类措辞
var statisticPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+(\.\d+)?\s?(%|percent)`),
	regexp.MustCompile(`(?i)average of \$[\d,]+`),
	regexp.MustCompile(`(?i)\$[\d,]+ (per|a) (year|month|week)`),
}

// attributionMarkers 归因标记：引用措辞、括号来源或URL
var attributionMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)according to [A-Z]`),
	regexp.MustCompile(`(?i)sources?:`),
	regexp.MustCompile(`\([^)]*(19|20)\d{2}[^)]*\)`),
	regexp.MustCompile(`https?://`),
	regexp.MustCompile(`(?i)per (a|the) (report|study|survey)`),
}

// 归因标记的查找窗口，单位字符
const attributionWindow = 300

// PolicyRule 一类政策违规的检测规则
type PolicyRule struct {
	Category string           // 违规分类
	Severity string           // critical/high/medium/low
	Patterns []*regexp.Regexp // 违规措辞正则
}

// policyRules 五类政策违规规则
var policyRules = []PolicyRule{
	{
		Category: "guarantees",
		Severity: "critical",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)guaranteed (returns?|profits?|income|gains?)`),
			regexp.MustCompile(`(?i)risk[- ]free (profit|investment|returns?)`),
			regexp.MustCompile(`(?i)(you )?can(not|'t) lose`),
			regexp.MustCompile(`(?i)100% (safe|guaranteed)`),
		},
	},
	{
		Category: "unlicensed_advice",
		Severity: "high",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)you (should|must|need to) (buy|sell|invest in)\b`),
			regexp.MustCompile(`(?i)put all (of )?your (money|savings)`),
			regexp.MustCompile(`(?i)this (stock|fund|coin) will (double|triple|soar)`),
		},
	},
	{
		Category: "misleading_claims",
		Severity: "high",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)get rich quick`),
			regexp.MustCompile(`(?i)(double|triple) your money (overnight|in days)`),
			regexp.MustCompile(`(?i)(secret|hidden) (formula|trick) (banks|wall street)`),
		},
	},
	{
		Category: "unsubstantiated_claims",
		Severity: "medium",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)everyone knows`),
			regexp.MustCompile(`(?i)the best [a-z ]+ ever`),
			regexp.MustCompile(`(?i)always (outperforms?|beats)`),
			regexp.MustCompile(`(?i)never fails`),
		},
	},
	{
		Category: "inappropriate_language",
		Severity: "low",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(idiots?|morons?)\b`),
			regexp.MustCompile(`(?i)\bscam artists?\b`),
		},
	},
}

// severityDeductions 各严重程度的单次扣分
var severityDeductions = map[string]int{
	"critical": 50,
	"high":     25,
	"medium":   10,
	"low":      5,
}

// 合规综合分的各项权重
const (
	disclaimerWeight  = 0.30
	eeatWeight        = 0.25
	attributionWeight = 0.25
	policyWeight      = 0.20
)
