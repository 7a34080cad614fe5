package service

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfitem/ai-writer/internal/domain/model"
)

func TestQualityWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, w := range qualityWeights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 0.001)
}

func TestValidateScore(t *testing.T) {
	assert.Equal(t, defaultSafeScore, validateScore(math.NaN()))
	assert.Equal(t, defaultSafeScore, validateScore(math.Inf(1)))
	assert.Equal(t, defaultSafeScore, validateScore(math.Inf(-1)))
	assert.Equal(t, 0, validateScore(-15))
	assert.Equal(t, 100, validateScore(150))
	assert.Equal(t, 73, validateScore(72.6))
}

// 任意输入下综合分与各子分都必须落在[0,100]
func TestScoreBounds(t *testing.T) {
	scorer := NewQualityScorer(model.ContentConfig{MinWordCount: 2000})

	articles := []model.Article{
		{},
		{Title: "x", Content: "<p>one short sentence.</p>"},
		{
			Title:           strings.Repeat("A Very Long Title ", 10),
			MetaDescription: strings.Repeat("meta ", 100),
			Content:         "<h1>T</h1>" + strings.Repeat("<h2>S</h2><p>filler words here again and again.</p>", 20),
			CTA:             strings.Repeat("go ", 50),
		},
	}

	for _, article := range articles {
		score := scorer.Score(article, model.KeywordSelection{})
		assert.GreaterOrEqual(t, score.Overall, 0)
		assert.LessOrEqual(t, score.Overall, 100)
		for _, sub := range []int{
			score.Breakdown.Readability,
			score.Breakdown.SEO,
			score.Breakdown.KeywordDensity,
			score.Breakdown.Structure,
			score.Breakdown.Length,
			score.Breakdown.Originality,
		} {
			assert.GreaterOrEqual(t, sub, 0)
			assert.LessOrEqual(t, sub, 100)
		}
	}
}

func TestScoreLengthBands(t *testing.T) {
	scorer := &qualityScorer{content: model.ContentConfig{MinWordCount: 2000}}

	assert.Equal(t, 100.0, scorer.scoreLength(2000))
	assert.Equal(t, 100.0, scorer.scoreLength(3500))
	assert.Equal(t, 85.0, scorer.scoreLength(3501))
	assert.Equal(t, 75.0, scorer.scoreLength(1600))
	assert.Equal(t, 50.0, scorer.scoreLength(1200))
	assert.Equal(t, 25.0, scorer.scoreLength(500))
}

func TestScoreKeywordDensityFallbacks(t *testing.T) {
	scorer := &qualityScorer{content: model.ContentConfig{MinWordCount: 2000}}

	// 未提供关键词时按词数给回退分
	assert.Equal(t, 75.0, scorer.scoreKeywordDensity("text", 2000, model.KeywordSelection{}))
	assert.Equal(t, 60.0, scorer.scoreKeywordDensity("text", 1000, model.KeywordSelection{}))
	assert.Equal(t, 45.0, scorer.scoreKeywordDensity("text", 500, model.KeywordSelection{}))

	// 关键词全都没有出现时返回固定低分
	keywords := model.KeywordSelection{Primary: []string{"retirement"}}
	assert.Equal(t, 20.0, scorer.scoreKeywordDensity("nothing about that subject here", 6, keywords))
}

func TestScoreKeywordDensityIdealBand(t *testing.T) {
	scorer := &qualityScorer{content: model.ContentConfig{MinWordCount: 2000}}

	// 100词中出现2次，密度2%，落在1-3%的理想区间；覆盖率100%
	words := make([]string, 0, 100)
	for i := 0; i < 98; i++ {
		words = append(words, "filler")
	}
	words = append(words, "budget", "budget")
	text := strings.Join(words, " ")

	keywords := model.KeywordSelection{Primary: []string{"budget"}}
	score := scorer.scoreKeywordDensity(text, 100, keywords)
	assert.Equal(t, 120.0, score) // 夹取发生在validateScore里
	assert.Equal(t, 100, validateScore(score))
}

func TestScoreSEOHeadingTiers(t *testing.T) {
	scorer := &qualityScorer{content: model.ContentConfig{}}

	title := strings.Repeat("t", 50)         // [40,60] → +20
	meta := strings.Repeat("m", 150)         // [140,160] → +20
	good := "<h1>A</h1>" + strings.Repeat("<h2>S</h2>", 5) // 1个H1和5个H2 → +30

	article := model.Article{Title: title, MetaDescription: meta, Content: good}
	assert.Equal(t, 100.0, scorer.scoreSEO(article))

	// 没有任何标题层级时只拿最低档
	article.Content = "<p>plain</p>"
	assert.Equal(t, 75.0, scorer.scoreSEO(article))
}

func TestScoreStructureComponents(t *testing.T) {
	scorer := &qualityScorer{content: model.ContentConfig{}}

	content := "<h1>Guide</h1><p>In this guide we'll cover the basics.</p>" +
		strings.Repeat("<h2>Section</h2><p>body text.</p>", 6) +
		"<h2>Conclusion</h2><p>The bottom line is simple.</p>"
	article := model.Article{
		Content: content,
		CTA:     "Subscribe to our weekly newsletter for one practical money lesson every Monday.",
	}

	// 引言25 + 结论25 + 小节数(7个H2)25 + CTA25
	assert.Equal(t, 100.0, scorer.scoreStructure(article))

	// 全部缺失时只有小节数量的保底5分
	assert.Equal(t, 5.0, scorer.scoreStructure(model.Article{Content: ""}))
}

func TestRecommendationsForWeakArticle(t *testing.T) {
	scorer := NewQualityScorer(model.ContentConfig{MinWordCount: 2000})

	score := scorer.Score(model.Article{Title: "x", Content: "<p>tiny.</p>"}, model.KeywordSelection{})
	require.NotEmpty(t, score.Recommendations)

	joined := strings.Join(score.Recommendations, "\n")
	assert.Contains(t, joined, "篇幅不足")
}

func TestScoreOriginalityBuckets(t *testing.T) {
	scorer := &qualityScorer{content: model.ContentConfig{}}

	assert.Equal(t, 80.0, scorer.scoreOriginality(1000))
	assert.Equal(t, 85.0, scorer.scoreOriginality(2000))
	assert.Equal(t, 90.0, scorer.scoreOriginality(3000))
}
