package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/wolfitem/ai-writer/internal/domain/model"
	"github.com/wolfitem/ai-writer/internal/infrastructure/logger"
)

// exampleArticleSeed 预置示例文章的静态内容
type exampleArticleSeed struct {
	title    string
	meta     string
	content  string
	cta      string
	category string
	keywords []string
	template string
	score    int
}

// exampleArticleSeeds 五篇预置示例文章，
// 仅在整个批次连兜底合成都未产出任何文章时作为二级兜底使用
var exampleArticleSeeds = []exampleArticleSeed{
	{
		title:    "Emergency Funds Explained: How Much Is Actually Enough",
		meta:     "How to size an emergency fund for your real expenses, where to keep it, and the three-month milestone that matters more than any rule of thumb.",
		content:  "<h1>Emergency Funds Explained: How Much Is Actually Enough</h1>\n<p>The standard advice says three to six months of expenses. The useful advice starts with your actual numbers.</p>\n<h2>Start With Essentials, Not Income</h2>\n<p>Your fund covers rent, food, utilities, insurance, and minimum debt payments. Not your full lifestyle.</p>\n<h2>The First $1,000 Milestone</h2>\n<p>Before optimizing anything, get one month of essentials banked. That single buffer prevents most new debt.</p>\n<h2>Where to Keep It</h2>\n<p>A separate high-yield savings account, boring on purpose. No guarantee any rate lasts, so pick for access first.</p>\n<h2>Key Takeaways</h2>\n<p>Size the fund on essentials, automate the contribution, and leave it alone. Individual results may vary; this is for informational purposes only and is not financial advice.</p>",
		cta:      "Download our free emergency fund calculator and find your real number in five minutes.",
		category: "saving",
		keywords: []string{"emergency fund", "savings"},
		template: TemplatePracticalGuide,
		score:    82,
	},
	{
		title:    "Index Funds vs. Stock Picking: What the Data Says",
		meta:     "A plain-language look at how index funds compare with picking individual stocks, what the long-run evidence shows, and who should consider each approach.",
		content:  "<h1>Index Funds vs. Stock Picking: What the Data Says</h1>\n<p>Few debates in investing generate more heat and less light.</p>\n<h2>The Long-Run Evidence</h2>\n<p>According to official data published by major index providers, most actively managed funds trail their benchmark over long horizons.</p>\n<h2>Why Costs Dominate</h2>\n<p>Fees compound exactly like returns do, only against you.</p>\n<h2>When Picking Stocks Can Make Sense</h2>\n<p>With money you can afford to lose, as education. Investments carry risk, including the loss of principal.</p>\n<h2>The Bottom Line</h2>\n<p>Past performance does not guarantee future results. This is not financial advice; consult a qualified financial advisor before investing.</p>",
		cta:      "Take our free risk-profile quiz to see which allocation approach fits your timeline.",
		category: "investing",
		keywords: []string{"index funds", "investing"},
		template: TemplateNewsAnalysis,
		score:    84,
	},
	{
		title:    "The 50/30/20 Budget: A Realistic Walkthrough",
		meta:     "How the 50/30/20 budgeting rule works in practice, where it breaks down for real households, and how to adapt the ratios without abandoning the system.",
		content:  "<h1>The 50/30/20 Budget: A Realistic Walkthrough</h1>\n<p>Fifty percent needs, thirty percent wants, twenty percent saving. Simple to state, harder to live.</p>\n<h2>Where the Ratios Come From</h2>\n<p>The rule is a starting grid, not a law. High-rent cities break the 50 immediately.</p>\n<h2>Adapting Without Abandoning</h2>\n<p>Keep the categories, move the numbers. A 60/25/15 that you follow beats a 50/30/20 that you quit.</p>\n<h2>Automating the 20</h2>\n<p>Transfer savings on payday, not at month end. What's left over is never twenty percent.</p>\n<h2>Key Takeaways</h2>\n<p>Individual results may vary. This article may contain affiliate links; we may earn a commission at no extra cost to you.</p>",
		cta:      "Get the free spreadsheet with all three ratio presets and start your first month today.",
		category: "budgeting",
		keywords: []string{"budgeting", "50/30/20"},
		template: TemplatePracticalGuide,
		score:    80,
	},
	{
		title:    "Paying Off Debt: Avalanche vs. Snowball in Practice",
		meta:     "The two dominant debt payoff methods compared on interest saved, speed, and the factor nobody models: how likely you are to stick with each one.",
		content:  "<h1>Paying Off Debt: Avalanche vs. Snowball in Practice</h1>\n<p>Avalanche saves the most interest. Snowball keeps the most people in the game. Both facts are true.</p>\n<h2>How Each Method Works</h2>\n<p>Avalanche targets the highest rate first; snowball targets the smallest balance first.</p>\n<h2>The Interest Math</h2>\n<p>On a typical mixed balance, avalanche saves several hundred dollars over the payoff.</p>\n<h2>The Behavior Math</h2>\n<p>Early wins keep plans alive. If you have quit plans before, snowball's quick closures are worth the interest premium.</p>\n<h2>The Bottom Line</h2>\n<p>Pick the one you will finish. This content is not financial advice; consult a qualified professional about your situation.</p>",
		cta:      "Use our free payoff planner to see both methods mapped onto your actual balances.",
		category: "debt",
		keywords: []string{"debt payoff", "avalanche", "snowball"},
		template: TemplateCaseNarrative,
		score:    81,
	},
	{
		title:    "High-Yield Savings Accounts: What to Check Before You Switch",
		meta:     "The five things that matter when choosing a high-yield savings account, the marketing tricks to ignore, and how to move your money without losing interest.",
		content:  "<h1>High-Yield Savings Accounts: What to Check Before You Switch</h1>\n<p>The rate on the billboard is the least durable fact about any savings account.</p>\n<h2>Rate History Beats Current Rate</h2>\n<p>Look for an account that has stayed competitive across cycles, not one running a promotion.</p>\n<h2>Fees and Minimums</h2>\n<p>A single monthly fee can erase the yield advantage entirely.</p>\n<h2>Transfer Speed</h2>\n<p>Your emergency fund is only useful if you can reach it within a business day.</p>\n<h2>Key Takeaways</h2>\n<p>No rate is guaranteed to last. This article contains affiliate links; we may earn a commission at no extra cost to you.</p>",
		cta:      "Compare this month's consistently competitive accounts in our free, weekly-updated table.",
		category: "banking",
		keywords: []string{"high-yield savings", "banking"},
		template: TemplatePracticalGuide,
		score:    79,
	},
}

// ExampleArticles 返回五篇预置示例文章。
// 每次调用生成新的文章ID和创建时间，状态一律为draft并带兜底标记
func ExampleArticles() []model.Article {
	logger.Warn("启用二级兜底：使用预置示例文章库", "count", len(exampleArticleSeeds))

	articles := make([]model.Article, 0, len(exampleArticleSeeds))
	for _, seed := range exampleArticleSeeds {
		wordCount := countWords(seed.content)
		articles = append(articles, model.Article{
			Title:           seed.title,
			MetaDescription: seed.meta,
			Content:         seed.content,
			CTA:             seed.cta,
			Category:        seed.category,
			Keywords:        seed.keywords,
			Metadata: model.ArticleMetadata{
				ID:                uuid.NewString(),
				QualityScore:      seed.score,
				WordCount:         wordCount,
				ReadingTime:       wordCount/200 + 1,
				Status:            model.StatusDraft,
				CreatedAt:         time.Now(),
				IsFallbackArticle: true,
				IsMockArticle:     true,
				TemplateUsed:      seed.template,
				TargetKeywords:    seed.keywords,
			},
		})
	}
	return articles
}
