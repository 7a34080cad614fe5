package service

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/wolfitem/ai-writer/internal/domain/model"
	"github.com/wolfitem/ai-writer/internal/infrastructure/logger"
)

// 六个子指标的固定权重，总和为1.0
var qualityWeights = map[string]float64{
	"readability":    0.20,
	"seo":            0.25,
	"keywordDensity": 0.20,
	"structure":      0.15,
	"length":         0.10,
	"originality":    0.10,
}

// 无效分数的安全默认值
const defaultSafeScore = 50

// QualityScorer 定义质量评分器接口
type QualityScorer interface {
	// Score 对一篇外部生成的文章计算质量分
	Score(article model.Article, keywords model.KeywordSelection) model.QualityScore
}

// qualityScorer 实现QualityScorer接口
type qualityScorer struct {
	content model.ContentConfig
}

// NewQualityScorer 创建质量评分器
func NewQualityScorer(content model.ContentConfig) QualityScorer {
	// 权重总和必须为1.0，偏差只产生警告而不中断评分
	var sum float64
	for _, w := range qualityWeights {
		sum += w
	}
	if math.Abs(sum-1.0) > 0.001 {
		logger.Warn("质量评分权重总和不为1.0", "sum", sum)
	}

	return &qualityScorer{content: content}
}

// Score 对一篇外部生成的文章计算质量分。
// 六个子指标各自先被夹到[0,100]，综合分为加权和的四舍五入，
// 六个子指标（含原创性）全部计入综合分
func (q *qualityScorer) Score(article model.Article, keywords model.KeywordSelection) model.QualityScore {
	defer logger.TimeTrack("QualityScore")()

	text := stripHTMLTags(article.Content)
	wordCount := len(strings.Fields(text))

	breakdown := model.QualityBreakdown{
		Readability:    validateScore(q.scoreReadability(text)),
		SEO:            validateScore(q.scoreSEO(article)),
		KeywordDensity: validateScore(q.scoreKeywordDensity(text, wordCount, keywords)),
		Structure:      validateScore(q.scoreStructure(article)),
		Length:         validateScore(q.scoreLength(wordCount)),
		Originality:    validateScore(q.scoreOriginality(wordCount)),
	}

	overall := float64(breakdown.Readability)*qualityWeights["readability"] +
		float64(breakdown.SEO)*qualityWeights["seo"] +
		float64(breakdown.KeywordDensity)*qualityWeights["keywordDensity"] +
		float64(breakdown.Structure)*qualityWeights["structure"] +
		float64(breakdown.Length)*qualityWeights["length"] +
		float64(breakdown.Originality)*qualityWeights["originality"]

	score := model.QualityScore{
		Overall:         validateScore(math.Round(overall)),
		Breakdown:       breakdown,
		Weights:         qualityWeights,
		Recommendations: q.buildRecommendations(breakdown),
	}

	logger.Info("质量评分完成",
		"overall", score.Overall,
		"readability", breakdown.Readability,
		"seo", breakdown.SEO,
		"keyword_density", breakdown.KeywordDensity,
		"structure", breakdown.Structure,
		"length", breakdown.Length,
		"originality", breakdown.Originality,
		"word_count", wordCount)

	return score
}

// validateScore 校验单个分数：无效值回退为50，越界值夹到[0,100]
func validateScore(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return defaultSafeScore
	}
	score := int(math.Round(v))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// sentenceSplitRe 句子切分正则
var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// scoreReadability 计算可读性分。
// 用近似Flesch Reading-Ease公式，再通过5档阶梯函数映射到最终分
func (q *qualityScorer) scoreReadability(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	sentences := 0
	for _, part := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}

	syllables := 0
	for _, word := range words {
		syllables += countSyllables(word)
	}

	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))
	flesch := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord

	switch {
	case flesch >= 70:
		return 100
	case flesch >= 60:
		return 85
	case flesch >= 50:
		return 70
	case flesch >= 30:
		return 55
	default:
		return 30
	}
}

// countSyllables 用元音组计数法估算单词的音节数，并剥离常见的不发音后缀
func countSyllables(word string) int {
	word = strings.ToLower(strings.Trim(word, ".,;:!?\"'()[]"))
	if word == "" {
		return 1
	}

	// 去掉不发音的词尾
	for _, suffix := range []string{"es", "ed", "e"} {
		if strings.HasSuffix(word, suffix) && len(word) > len(suffix)+2 {
			word = strings.TrimSuffix(word, suffix)
			break
		}
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}

	if count == 0 {
		return 1
	}
	return count
}

// scoreSEO 计算SEO分。
// 三项检查叠加在30分的基础分上：标题长度、描述长度、标题层级结构
func (q *qualityScorer) scoreSEO(article model.Article) float64 {
	score := 30.0

	// 标题长度：理想区间[40,60]字符
	titleLen := len(article.Title)
	switch {
	case titleLen >= 40 && titleLen <= 60:
		score += 20
	case titleLen > 0 && titleLen <= 70:
		score += 10
	default:
		score += 5
	}

	// 描述长度：理想区间[140,160]字符
	metaLen := len(article.MetaDescription)
	switch {
	case metaLen >= 140 && metaLen <= 160:
		score += 20
	case metaLen >= 120 && metaLen <= 170:
		score += 10
	default:
		score += 5
	}

	// 标题层级：理想为恰好1个H1和3-8个H2
	h1Count, h2Count := 0, 0
	if doc := parseHTML(article.Content); doc != nil {
		h1Count = doc.Find("h1").Length()
		h2Count = doc.Find("h2").Length()
	}
	switch {
	case h1Count == 1 && h2Count >= 3 && h2Count <= 8:
		score += 30
	case h1Count == 1 && h2Count >= 1:
		score += 20
	case h2Count >= 1:
		score += 10
	default:
		score += 5
	}

	return score
}

// scoreKeywordDensity 计算关键词密度分。
// 对每个关键词做大小写不敏感的整词匹配，已匹配关键词的平均密度
// 对照1-3%的理想区间打分，再叠加与覆盖比例成正比的奖励分
func (q *qualityScorer) scoreKeywordDensity(text string, wordCount int, keywords model.KeywordSelection) float64 {
	all := append(append([]string{}, keywords.Primary...), keywords.LongTail...)
	if len(all) == 0 {
		// 未提供关键词时按词数给出回退分
		switch {
		case wordCount >= 2000:
			return 75
		case wordCount >= 1000:
			return 60
		default:
			return 45
		}
	}
	if wordCount == 0 {
		return 20
	}

	matched := 0
	var densitySum float64
	for _, keyword := range all {
		if keyword == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
		if err != nil {
			continue
		}
		occurrences := len(re.FindAllStringIndex(text, -1))
		if occurrences == 0 {
			continue
		}
		matched++
		densitySum += float64(occurrences) / float64(wordCount) * 100
	}

	// 没有任何关键词出现时返回固定低分
	if matched == 0 {
		return 20
	}

	avgDensity := densitySum / float64(matched)
	var base float64
	switch {
	case avgDensity >= 1.0 && avgDensity <= 3.0:
		base = 100
	case avgDensity >= 0.5 && avgDensity <= 5.0:
		base = 80
	case avgDensity >= 0.1 && avgDensity <= 7.0:
		base = 60
	default:
		base = 30
	}

	// 覆盖奖励：出现过的关键词占比越高奖励越多，上限20分
	coverageBonus := 20 * float64(matched) / float64(len(all))

	return base + coverageBonus
}

// 结论信号正则
var conclusionRe = regexp.MustCompile(`(?i)(conclusion|final thoughts|bottom line|key takeaway|in summary|wrapping up)`)

// 引言信号正则
var introRe = regexp.MustCompile(`(?i)(in this (article|guide)|we('ll| will) (cover|explore|look at)|whether you('re| are))`)

// scoreStructure 计算结构分，四项独立检查各占25分
func (q *qualityScorer) scoreStructure(article model.Article) float64 {
	score := 0.0
	text := stripHTMLTags(article.Content)

	// 引言：开头出现引言信号，或第一个H2之前有段落
	head := text
	if len(head) > 500 {
		head = head[:500]
	}
	pIdx := strings.Index(article.Content, "<p")
	h2Idx := strings.Index(article.Content, "<h2")
	hasLeadParagraph := pIdx >= 0 && (h2Idx < 0 || pIdx < h2Idx)
	if introRe.MatchString(head) || hasLeadParagraph {
		score += 25
	}

	// 结论或要点总结信号
	if conclusionRe.MatchString(text) {
		score += 25
	}

	// 小节数量：5-10为健康区间
	h2Count := 0
	if doc := parseHTML(article.Content); doc != nil {
		h2Count = doc.Find("h2").Length()
	}
	switch {
	case h2Count >= 5 && h2Count <= 10:
		score += 25
	case h2Count >= 3:
		score += 15
	default:
		score += 5
	}

	// 足够长的行动号召
	ctaLen := len(strings.TrimSpace(article.CTA))
	switch {
	case ctaLen >= 50:
		score += 25
	case ctaLen > 0:
		score += 10
	}

	return score
}

// scoreLength 计算长度分，对照配置的最小目标词数
func (q *qualityScorer) scoreLength(wordCount int) float64 {
	target := q.content.MinWordCount
	if target <= 0 {
		target = 2000
	}

	switch {
	case wordCount >= target && wordCount <= target+1500:
		return 100
	case wordCount > target+1500:
		return 85
	case float64(wordCount) >= 0.8*float64(target):
		return 75
	case float64(wordCount) >= 0.6*float64(target):
		return 50
	default:
		return 25
	}
}

// scoreOriginality 计算原创性分。
// 占位启发式：按长度分档给出默认分，不做真正的查重
func (q *qualityScorer) scoreOriginality(wordCount int) float64 {
	switch {
	case wordCount > 2500:
		return 90
	case wordCount > 1500:
		return 85
	default:
		return 80
	}
}

// buildRecommendations 根据各子指标的固定阈值生成改进建议
func (q *qualityScorer) buildRecommendations(breakdown model.QualityBreakdown) []string {
	var recommendations []string

	if breakdown.Readability < 70 {
		recommendations = append(recommendations, "可读性偏低：缩短句子、减少长词，目标Flesch分数60以上")
	}
	if breakdown.SEO < 70 {
		recommendations = append(recommendations, "SEO不达标：标题控制在40-60字符，描述140-160字符，正文保持1个H1和3-8个H2")
	}
	if breakdown.KeywordDensity < 60 {
		recommendations = append(recommendations, "关键词密度偏离理想区间：目标关键词密度保持在1%-3%之间并覆盖全部目标词")
	}
	if breakdown.Structure < 75 {
		recommendations = append(recommendations, "结构不完整：补充引言、结论小节和足够长的行动号召，小节数量保持在5-10个")
	}
	if breakdown.Length < 75 {
		recommendations = append(recommendations, fmt.Sprintf("篇幅不足：正文词数建议不少于%d词", q.content.MinWordCount))
	}
	if breakdown.Originality < 80 {
		recommendations = append(recommendations, "原创性存疑：扩充独立的分析与示例内容")
	}

	return recommendations
}
