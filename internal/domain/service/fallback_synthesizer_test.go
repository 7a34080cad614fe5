package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfitem/ai-writer/internal/domain/model"
)

func fallbackTopic(angle model.ContentAngle) model.Topic {
	profile := ProfileForAngle(angle)
	return model.Topic{
		ID:       7,
		Title:    "Debt Snowball Method",
		Category: "debt",
		Keywords: []string{"debt payoff", "debt snowball"},
		Profile:  &profile,
	}
}

func TestTemplateForAngle(t *testing.T) {
	assert.Equal(t, TemplateNewsAnalysis, templateForAngle(model.AngleMarketNews))
	assert.Equal(t, TemplateNewsAnalysis, templateForAngle(model.AngleContrarianOpinion))
	assert.Equal(t, TemplatePracticalGuide, templateForAngle(model.AnglePracticalTips))
	assert.Equal(t, TemplatePracticalGuide, templateForAngle(model.AngleProductReview))
	assert.Equal(t, TemplateCaseNarrative, templateForAngle(model.AngleCaseStudy))
	assert.Equal(t, TemplatePracticalGuide, templateForAngle(model.ContentAngle("unknown")))
}

// 案例研究模板：话题标题进入文章标题，主关键词进入阶段小节标题
func TestSynthesizeCaseStudyRoundTrip(t *testing.T) {
	synthesizer := NewFallbackSynthesizerWithRand(rand.New(rand.NewSource(11)))

	keywords := model.KeywordSelection{
		Primary:  []string{"debt payoff", "debt snowball"},
		Target:   "debt payoff",
		LongTail: []string{"debt payoff plan for beginners"},
	}
	article := synthesizer.Synthesize(fallbackTopic(model.AngleCaseStudy), keywords)

	assert.Contains(t, article.Title, "Debt Snowball Method")
	assert.Contains(t, article.Content, "Phase 1 (Months 1-3): Building the Debt payoff Foundation")
	assert.Equal(t, TemplateCaseNarrative, article.Metadata.TemplateUsed)
	assert.Equal(t, "debt", article.Category)
}

func TestSynthesizeMetadata(t *testing.T) {
	synthesizer := NewFallbackSynthesizerWithRand(rand.New(rand.NewSource(5)))

	keywords := model.KeywordSelection{Primary: []string{"debt payoff"}, Target: "debt payoff"}
	article := synthesizer.Synthesize(fallbackTopic(model.AnglePracticalTips), keywords)

	require.NotEmpty(t, article.Metadata.ID)
	assert.True(t, article.Metadata.IsFallbackArticle)
	assert.True(t, article.Metadata.IsMockArticle)
	assert.Equal(t, model.StatusDraft, article.Metadata.Status)
	assert.Greater(t, article.Metadata.WordCount, 0)
	assert.Equal(t, article.Metadata.WordCount/200+1, article.Metadata.ReadingTime)
	assert.Contains(t, []string{TemplateNewsAnalysis, TemplatePracticalGuide, TemplateCaseNarrative},
		article.Metadata.TemplateUsed)
}

// 模拟质量分必须落在[70,98]
func TestSimulatedScoreRange(t *testing.T) {
	synthesizer := NewFallbackSynthesizerWithRand(rand.New(rand.NewSource(23)))

	angles := []model.ContentAngle{
		model.AngleMarketNews,
		model.AngleContrarianOpinion,
		model.AnglePracticalTips,
		model.AngleProductReview,
		model.AngleCaseStudy,
	}
	for _, angle := range angles {
		for i := 0; i < 10; i++ {
			article := synthesizer.Synthesize(fallbackTopic(angle), model.KeywordSelection{Target: "debt payoff"})
			assert.GreaterOrEqual(t, article.Metadata.QualityScore, 70, "angle %s", angle)
			assert.LessOrEqual(t, article.Metadata.QualityScore, 98, "angle %s", angle)
		}
	}
}

// 角度缺失或未识别时降级为通用指南模板
func TestSynthesizeUnknownAngleUsesCompleteGuide(t *testing.T) {
	synthesizer := NewFallbackSynthesizerWithRand(rand.New(rand.NewSource(2)))

	topic := model.Topic{Title: "Money Basics", Category: "personal-finance"}
	article := synthesizer.Synthesize(topic, model.KeywordSelection{})

	assert.Contains(t, article.Title, "The Complete Guide")
	assert.Equal(t, TemplatePracticalGuide, article.Metadata.TemplateUsed)
	// 关键词缺失时使用通用默认词
	assert.Contains(t, article.Content, "personal finance")
}

// 每篇兜底文章都有完整的七段式结构
func TestSynthesizeStructure(t *testing.T) {
	synthesizer := NewFallbackSynthesizerWithRand(rand.New(rand.NewSource(8)))

	angles := []model.ContentAngle{
		model.AngleMarketNews,
		model.AngleContrarianOpinion,
		model.AnglePracticalTips,
		model.AngleProductReview,
		model.AngleCaseStudy,
	}
	for _, angle := range angles {
		article := synthesizer.Synthesize(fallbackTopic(angle), model.KeywordSelection{Target: "debt payoff"})
		doc := parseHTML(article.Content)
		require.NotNil(t, doc)
		assert.Equal(t, 1, doc.Find("h1").Length(), "angle %s", angle)
		assert.Equal(t, 7, doc.Find("h2").Length(), "angle %s", angle)
		assert.NotEmpty(t, article.MetaDescription)
		assert.NotEmpty(t, article.CTA)
	}
}
