package service

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wolfitem/ai-writer/internal/domain/model"
	"github.com/wolfitem/ai-writer/internal/infrastructure/logger"
)

// 三种固定的兜底排版模板及其模拟分的期望区间
const (
	TemplateNewsAnalysis   = "news_analysis"
	TemplatePracticalGuide = "practical_guide"
	TemplateCaseNarrative  = "case_narrative"
)

// 模拟质量分的全局夹取区间
const (
	simulatedScoreFloor = 70
	simulatedScoreCeil  = 98
)

// templateScoreRanges 各模板的模拟子分采样区间
var templateScoreRanges = map[string][2]int{
	TemplateNewsAnalysis:   {78, 94},
	TemplatePracticalGuide: {74, 90},
	TemplateCaseNarrative:  {72, 88},
}

// templateForAngle 角度到排版模板的映射，未识别的角度使用通用指南模板
func templateForAngle(angle model.ContentAngle) string {
	switch angle {
	case model.AngleMarketNews, model.AngleContrarianOpinion:
		return TemplateNewsAnalysis
	case model.AngleCaseStudy:
		return TemplateCaseNarrative
	default:
		return TemplatePracticalGuide
	}
}

// FallbackSynthesizer 定义兜底内容合成器接口。
// 仅在外部生成服务不可用或重试耗尽时由编排器调用
type FallbackSynthesizer interface {
	// Synthesize 为指定话题确定性地合成一篇文章
	Synthesize(topic model.Topic, keywords model.KeywordSelection) model.Article
}

// fallbackSynthesizer 实现FallbackSynthesizer接口
type fallbackSynthesizer struct {
	rng *rand.Rand
}

// NewFallbackSynthesizer 创建兜底内容合成器
func NewFallbackSynthesizer() FallbackSynthesizer {
	return NewFallbackSynthesizerWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewFallbackSynthesizerWithRand 使用指定随机源创建合成器，便于测试复现
func NewFallbackSynthesizerWithRand(rng *rand.Rand) FallbackSynthesizer {
	return &fallbackSynthesizer{rng: rng}
}

// Synthesize 为指定话题确定性地合成一篇文章。
// 按话题附加画像的角度分发到五个纯模板构建器之一，
// 角度缺失或未识别时进一步降级为通用的七段式完整指南模板
func (f *fallbackSynthesizer) Synthesize(topic model.Topic, keywords model.KeywordSelection) model.Article {
	angle := model.ContentAngle("")
	if topic.Profile != nil {
		angle = topic.Profile.Angle
	}

	primary := keywords.Target
	if primary == "" {
		primary = "personal finance"
	}
	secondary := primary
	if len(keywords.Primary) > 1 {
		secondary = keywords.Primary[1]
	} else if len(keywords.LongTail) > 0 {
		secondary = keywords.LongTail[0]
	}

	var title, meta, content, cta string
	switch angle {
	case model.AngleMarketNews:
		title, meta, content, cta = buildMarketNews(topic.Title, primary, secondary)
	case model.AngleContrarianOpinion:
		title, meta, content, cta = buildContrarianOpinion(topic.Title, primary, secondary)
	case model.AnglePracticalTips:
		title, meta, content, cta = buildPracticalTips(topic.Title, primary, secondary)
	case model.AngleProductReview:
		title, meta, content, cta = buildProductReview(topic.Title, primary, secondary)
	case model.AngleCaseStudy:
		title, meta, content, cta = buildCaseStudy(topic.Title, primary, secondary)
	default:
		logger.Warn("未识别的内容角度，使用通用指南模板", "angle", string(angle))
		title, meta, content, cta = buildCompleteGuide(topic.Title, primary, secondary)
	}

	template := templateForAngle(angle)
	wordCount := countWords(content)
	score := f.simulateQualityScore(template)

	article := model.Article{
		Title:           title,
		MetaDescription: meta,
		Content:         content,
		CTA:             cta,
		Category:        topic.Category,
		Keywords:        topic.Keywords,
		Metadata: model.ArticleMetadata{
			ID:                uuid.NewString(),
			QualityScore:      score.Overall,
			WordCount:         wordCount,
			ReadingTime:       wordCount/200 + 1,
			Status:            model.StatusDraft,
			CreatedAt:         time.Now(),
			IsFallbackArticle: true,
			IsMockArticle:     true,
			TemplateUsed:      template,
			TargetKeywords:    append(append([]string{}, keywords.Primary...), keywords.LongTail...),
		},
	}

	logger.Info("兜底文章合成完成",
		"article_id", article.Metadata.ID,
		"template", template,
		"word_count", wordCount,
		"simulated_score", score.Overall)

	return article
}

// simulateQualityScore 为兜底文章生成模拟质量分。
// 每个子指标在模板期望区间内均匀采样，夹到[70,98]后按正式权重加权。
// 模拟分不是实测值，文章会被打上IsMockArticle标记以示区分
func (f *fallbackSynthesizer) simulateQualityScore(template string) model.QualityScore {
	bounds := templateScoreRanges[template]
	sample := func() int {
		v := bounds[0] + f.rng.Intn(bounds[1]-bounds[0]+1)
		if v < simulatedScoreFloor {
			v = simulatedScoreFloor
		}
		if v > simulatedScoreCeil {
			v = simulatedScoreCeil
		}
		return v
	}

	breakdown := model.QualityBreakdown{
		Readability:    sample(),
		SEO:            sample(),
		KeywordDensity: sample(),
		Structure:      sample(),
		Length:         sample(),
		Originality:    sample(),
	}

	overall := float64(breakdown.Readability)*qualityWeights["readability"] +
		float64(breakdown.SEO)*qualityWeights["seo"] +
		float64(breakdown.KeywordDensity)*qualityWeights["keywordDensity"] +
		float64(breakdown.Structure)*qualityWeights["structure"] +
		float64(breakdown.Length)*qualityWeights["length"] +
		float64(breakdown.Originality)*qualityWeights["originality"]

	return model.QualityScore{
		Overall:   validateScore(math.Round(overall)),
		Breakdown: breakdown,
		Weights:   qualityWeights,
	}
}

// buildMarketNews 市场快讯模板：突发新闻钩子、紧迫感框架、
// 按收入层级划分的行动步骤和历史周期对比
func buildMarketNews(topicTitle, primary, secondary string) (string, string, string, string) {
	title := fmt.Sprintf("%s: What This Week's Shift Means for Your Money", topicTitle)
	meta := fmt.Sprintf("Breaking analysis of %s and the concrete steps to take now, broken down by income level, with historical context from past market cycles.", primary)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h1>%s</h1>\n", title))
	b.WriteString(fmt.Sprintf("<p>If you have been watching %s this week, you already know something has changed. The pace of the move caught even seasoned observers off guard, and the window to react thoughtfully is narrower than usual.</p>\n", primary))

	b.WriteString("<h2>Breaking: Why This Week Is Different</h2>\n")
	b.WriteString(fmt.Sprintf("<p>Most weekly fluctuations in %s wash out within days. This one has three characteristics that historically signal a durable shift: unusual volume, broad sector participation, and a change in the underlying rate environment. None of these alone is decisive. Together they demand attention.</p>\n", primary))

	b.WriteString(fmt.Sprintf("<h2>What %s Means Right Now</h2>\n", capitalizeFirst(primary)))
	b.WriteString(fmt.Sprintf("<p>The immediate effect shows up in %s first. Lenders reprice quickly, while savings products lag by several weeks. That lag is the single most actionable fact in this story, because it creates a short period where both sides of your balance sheet can be improved at once.</p>\n", secondary))

	b.WriteString("<h2>Action Steps If You Earn Under $50,000</h2>\n")
	b.WriteString("<p>Focus on defense. Confirm your emergency fund covers three months of essentials before touching anything else. Move idle cash into a high-yield account while rates remain elevated. Individual results may vary, and there is no guarantee any rate environment persists.</p>\n")

	b.WriteString("<h2>Action Steps for the $50,000 to $120,000 Bracket</h2>\n")
	b.WriteString(fmt.Sprintf("<p>This bracket has the most room to maneuver. Automate contributions so the shift in %s works for you rather than against you, and revisit any variable-rate debt now. Investments carry risk, including loss of principal, so size every move against your actual timeline.</p>\n", primary))

	b.WriteString("<h2>Action Steps for Higher Earners</h2>\n")
	b.WriteString("<p>Tax placement matters more than timing at this level. Review which accounts hold which assets before rebalancing, and resist the urge to restructure everything in one week. Past performance does not predict what the next cycle will do.</p>\n")

	b.WriteString("<h2>How Past Cycles Compare</h2>\n")
	b.WriteString(fmt.Sprintf("<p>The 2011 and 2018 episodes began with similar weekly moves in %s. In both cases, households that made one deliberate adjustment in the first month outperformed those who either panicked or froze. The lesson is consistency, not prediction.</p>\n", primary))

	b.WriteString("<h2>The Bottom Line</h2>\n")
	b.WriteString(fmt.Sprintf("<p>Treat this week as a prompt to review, not a reason to overhaul. One considered change to how you handle %s beats five rushed ones. This content is for informational purposes only and is not financial advice; consult a qualified financial advisor before making decisions.</p>\n", secondary))

	cta := fmt.Sprintf("Want next week's %s briefing before the market opens? Subscribe to our free Monday newsletter and get the analysis in your inbox.", primary)
	return title, meta, b.String(), cta
}

// buildContrarianOpinion 反向观点模板：质疑常规认知的三个因素、
// 对比统计小节和三策略替代框架
func buildContrarianOpinion(topicTitle, primary, secondary string) (string, string, string, string) {
	title := fmt.Sprintf("%s: Why the Conventional Wisdom Is Wrong", topicTitle)
	meta := fmt.Sprintf("The standard advice about %s fails a surprising number of households. Here are the three factors the conventional wisdom ignores, and a framework that accounts for them.", primary)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h1>%s</h1>\n", title))
	b.WriteString(fmt.Sprintf("<p>Open any mainstream guide to %s and you will find the same advice repeated almost word for word. Repetition is not evidence. For a meaningful share of households, following that advice has quietly made things worse.</p>\n", primary))

	b.WriteString("<h2>What Everyone Gets Told</h2>\n")
	b.WriteString(fmt.Sprintf("<p>The standard playbook treats %s as one-size-fits-all: follow the rule of thumb, ignore your circumstances, and trust the average outcome. Averages conceal more than they reveal.</p>\n", primary))

	b.WriteString("<h2>Factor One: Timing Is Not Neutral</h2>\n")
	b.WriteString(fmt.Sprintf("<p>The conventional advice assumes you start at a neutral moment. Nobody does. Whether you begin working on %s during a rate peak or a trough changes the payoff of the standard approach by a wide margin.</p>\n", secondary))

	b.WriteString("<h2>Factor Two: Income Shape Beats Income Size</h2>\n")
	b.WriteString("<p>Two households earning the same annual amount can have completely different risk profiles if one income is steady and the other is lumpy. The standard playbook only looks at the total.</p>\n")

	b.WriteString("<h2>Factor Three: Behavior Is the Real Constraint</h2>\n")
	b.WriteString("<p>A theoretically optimal plan you abandon in month three loses to a mediocre plan you keep for a decade. The conventional wisdom consistently ignores abandonment rates.</p>\n")

	b.WriteString("<h2>Where the Conventional Wisdom Still Holds</h2>\n")
	b.WriteString(fmt.Sprintf("<p>To be fair, the standard advice works acceptably for households with stable income, no debt above 8%% interest, and a decade or more of runway. If that describes you, the textbook approach to %s is defensible. For everyone else, read on.</p>\n", primary))

	b.WriteString("<h2>The Numbers the Standard Advice Hides</h2>\n")
	b.WriteString(fmt.Sprintf("<p>Compare the two approaches side by side over a ten-year horizon: the textbook path to %s produces a median outcome of roughly $48,000 in accumulated benefit, while the adjusted path below reaches approximately $61,000, with notably fewer households giving up along the way. These are modeled figures, not measurements; individual results may vary and no outcome is guaranteed.</p>\n", primary))

	b.WriteString("<h2>A Three-Strategy Alternative</h2>\n")
	b.WriteString(fmt.Sprintf("<p>First, anchor your plan to your worst recent month, not your average one. Second, automate the smallest sustainable step toward %s and only raise it after ninety days. Third, pre-commit an exit rule so a bad stretch triggers a planned adjustment instead of abandonment. This is for educational purposes only and is not financial advice.</p>\n", secondary))

	cta := fmt.Sprintf("Disagree? Good. Take our five-minute %s self-assessment and see which of the three factors applies to your situation before you follow anyone's rule of thumb.", primary)
	return title, meta, b.String(), cta
}

// buildPracticalTips 实用技巧模板：五个编号技巧（各带时间估算与
// 节省金额）和一封外联邮件脚本
func buildPracticalTips(topicTitle, primary, secondary string) (string, string, string, string) {
	title := fmt.Sprintf("%s: 5 Hacks That Actually Move the Needle", topicTitle)
	meta := fmt.Sprintf("Five concrete %s tactics with time estimates and realistic dollar savings for each, plus the exact email script that gets fees waived.", primary)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h1>%s</h1>\n", title))
	b.WriteString(fmt.Sprintf("<p>Most %s advice fails because it demands a lifestyle change. These five moves do not. Each one is a bounded task with a time estimate and a realistic savings figure, so you can pick the ones worth your evening.</p>\n", primary))

	b.WriteString(fmt.Sprintf("<h2>Hack #1: Audit Your Recurring %s Charges (20 minutes, saves ~$340/year)</h2>\n", capitalizeFirst(primary)))
	b.WriteString("<p>Export three months of statements and sort by merchant. The average household finds two forgotten subscriptions and one duplicate service. Cancel ruthlessly; you can always re-subscribe.</p>\n")

	b.WriteString("<h2>Hack #2: Renegotiate One Bill (30 minutes, saves ~$280/year)</h2>\n")
	b.WriteString("<p>Pick your largest negotiable bill and call the retention department, not general support. Mention a competitor's advertised rate and ask directly what they can do. The word \"cancel\" unlocks offers the first agent cannot see.</p>\n")

	b.WriteString(fmt.Sprintf("<h2>Hack #3: Automate a %s Sweep (15 minutes, saves ~$600/year)</h2>\n", capitalizeFirst(secondary)))
	b.WriteString(fmt.Sprintf("<p>Schedule an automatic transfer the morning after each payday, sized at whatever you will not miss. Automation beats willpower; this is the entire foundation of %s done well.</p>\n", secondary))

	b.WriteString("<h2>Hack #4: Switch One Default (45 minutes, saves ~$420/year)</h2>\n")
	b.WriteString("<p>Defaults are priced for inertia. Move your idle balance from a legacy account to a high-yield one, or swap one recurring purchase to its store-brand equivalent for ninety days and see if you notice.</p>\n")

	b.WriteString("<h2>Hack #5: Set a 48-Hour Rule (5 minutes to set up, saves ~$500/year)</h2>\n")
	b.WriteString("<p>Any unplanned purchase above your threshold waits two days in a note on your phone. Roughly half never get bought. This single rule outperforms most budgeting apps.</p>\n")

	b.WriteString("<h2>The Email Script That Gets Fees Waived</h2>\n")
	b.WriteString("<p>Subject: Account review request. \"Hi, I've been a customer for [X years] and noticed a [fee name] of [amount] on my last statement. I'd like this waived as a courtesy; comparable accounts at [competitor] don't carry this fee. If that's not possible, please let me know the process for closing the account.\" Send it to the support address, not the chat bot.</p>\n")

	b.WriteString("<h2>Putting It Together</h2>\n")
	b.WriteString("<p>Run one hack per week for five weeks. The combined figure lands near $2,100 a year for a typical household, though savings estimates vary by situation and are not guaranteed. This article may contain affiliate links, and we may earn a commission at no extra cost to you.</p>\n")

	cta := fmt.Sprintf("Get the printable checklist version of all five %s hacks, including the email script, delivered to your inbox free.", primary)
	return title, meta, b.String(), cta
}

// buildProductReview 产品评测模板：固定的三方产品对比、
// 标记语言表格和逐产品打分的优缺点
func buildProductReview(topicTitle, primary, secondary string) (string, string, string, string) {
	title := fmt.Sprintf("%s: We Compared the Top 3 Options", topicTitle)
	meta := fmt.Sprintf("A head-to-head comparison of the three leading %s options, with scored pros and cons, a full feature table, and a clear pick for each type of user.", primary)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h1>%s</h1>\n", title))
	b.WriteString(fmt.Sprintf("<p>Choosing a %s product means wading through marketing copy written to obscure the differences. We cut it down to the three options that matter and scored them on the criteria that affect your wallet. This article contains affiliate links; we may earn a commission at no extra cost to you.</p>\n", primary))

	b.WriteString("<h2>How We Scored Them</h2>\n")
	b.WriteString(fmt.Sprintf("<p>Each option is scored out of 10 on cost, features relevant to %s, and ease of getting started. We weight cost double, because fees compound and features mostly don't. This is not financial advice; consult a qualified professional for your situation.</p>\n", secondary))

	b.WriteString("<h2>Side-by-Side Comparison</h2>\n")
	b.WriteString("<table>\n<tr><th>Criteria</th><th>Option A: Meridian</th><th>Option B: Northgate</th><th>Option C: Fairview</th></tr>\n")
	b.WriteString("<tr><td>Annual cost</td><td>$0</td><td>$95</td><td>$49</td></tr>\n")
	b.WriteString("<tr><td>Core features</td><td>Solid basics</td><td>Most complete</td><td>Balanced</td></tr>\n")
	b.WriteString("<tr><td>Getting started</td><td>10 minutes</td><td>45 minutes</td><td>20 minutes</td></tr>\n")
	b.WriteString("<tr><td>Overall score</td><td>8.1/10</td><td>7.6/10</td><td>8.4/10</td></tr>\n</table>\n")

	b.WriteString("<h2>Option A: Meridian (8.1/10)</h2>\n")
	b.WriteString("<p>Pros: no annual cost, fastest setup, clean interface (9/10 on cost). Cons: lacks the advanced reporting heavier users expect (6/10 on features). Best for anyone starting out who values simplicity over depth.</p>\n")

	b.WriteString("<h2>Option B: Northgate (7.6/10)</h2>\n")
	b.WriteString(fmt.Sprintf("<p>Pros: the most complete %s feature set we tested, strong support (9/10 on features). Cons: the annual fee only pays for itself above a certain usage level, and onboarding is tedious (5/10 on cost). Best for power users.</p>\n", primary))

	b.WriteString("<h2>Option C: Fairview (8.4/10)</h2>\n")
	b.WriteString("<p>Pros: the best cost-to-feature balance, sensible defaults (8/10 across the board). Cons: middle of the pack at everything, exceptional at nothing. Best for most people, which is why it takes our overall pick.</p>\n")

	b.WriteString("<h2>Fees and Fine Print to Watch</h2>\n")
	b.WriteString("<p>All three options reserve the right to change terms with 30 days' notice, and two of them charge dormancy fees after a year of inactivity. Read the fee schedule before funding anything, and calendar a reminder to re-check it annually.</p>\n")

	b.WriteString("<h2>Our Verdict</h2>\n")
	b.WriteString(fmt.Sprintf("<p>Start with Fairview unless you know you need Northgate's depth. Whatever you choose, the biggest gains in %s come from using the tool consistently, not from the tool itself. Individual results may vary.</p>\n", secondary))

	cta := fmt.Sprintf("Still torn? Answer three questions in our %s picker quiz and get a recommendation matched to how you'll actually use it.", primary)
	return title, meta, b.String(), cta
}

// buildCaseStudy 案例研究模板：三阶段（1-3月/4-9月/10-18月）叙事
// 和前后财务数字对比
func buildCaseStudy(topicTitle, primary, secondary string) (string, string, string, string) {
	title := fmt.Sprintf("%s: An 18-Month Case Study", topicTitle)
	meta := fmt.Sprintf("How one household rebuilt their %s over 18 months, phase by phase, with the before-and-after numbers and the setbacks the success stories usually leave out.", primary)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h1>%s</h1>\n", title))
	b.WriteString(fmt.Sprintf("<p>Eighteen months ago, the household in this case study was starting from a familiar place: $12,400 in scattered debt, $900 in savings, and no working system for %s. Here is exactly what changed, in the order it changed. Names and identifying details are altered; results are not typical and individual results may vary.</p>\n", primary))

	b.WriteString("<h2>The Starting Point</h2>\n")
	b.WriteString(fmt.Sprintf("<p>Combined income of $74,000, three credit cards averaging 23%% APR, and a recurring end-of-month shortfall near $250. Their previous attempts at %s had each lasted under six weeks.</p>\n", primary))

	b.WriteString(fmt.Sprintf("<h2>Phase 1 (Months 1-3): Building the %s Foundation</h2>\n", capitalizeFirst(primary)))
	b.WriteString("<p>No optimization, only visibility: every dollar tracked, one automated $50 weekly transfer, and a written list of all balances on the refrigerator. Savings grew from $900 to $1,850. The psychological shift mattered more than the amount.</p>\n")

	b.WriteString(fmt.Sprintf("<h2>Phase 2 (Months 4-9): The %s Engine</h2>\n", capitalizeFirst(secondary)))
	b.WriteString(fmt.Sprintf("<p>With the foundation holding, they attacked the highest-rate card while maintaining minimums elsewhere, and raised the automated transfer each time a bill was eliminated. By month nine, debt stood at $6,100 and the %s habit had survived a car repair that would previously have ended the plan.</p>\n", secondary))

	b.WriteString("<h2>Phase 3 (Months 10-18): Compounding the Gains</h2>\n")
	b.WriteString("<p>The final phase was deliberately boring: same system, larger numbers. The last card was cleared in month fourteen, and the freed-up payments were redirected untouched into savings.</p>\n")

	b.WriteString("<h2>The Setbacks the Success Stories Skip</h2>\n")
	b.WriteString("<p>Month five brought a $1,100 car repair. Month eleven, a two-week income gap between jobs. Both would have ended earlier attempts; this time the written plan absorbed them because the automated transfer was sized to survive a bad month, not an average one.</p>\n")

	b.WriteString("<h2>The Numbers, Before and After</h2>\n")
	b.WriteString("<p>Debt: $12,400 down to $0. Savings: $900 up to $9,300. Monthly shortfall: a $250 deficit became a $410 surplus. Total interest paid during the payoff: $1,960, roughly $3,100 less than the original trajectory.</p>\n")

	b.WriteString("<h2>What You Can Take From This</h2>\n")
	b.WriteString(fmt.Sprintf("<p>The sequence is the lesson: visibility, then one automated habit, then escalation only after the habit survives a shock. No outcome is guaranteed and this is not financial advice, but the pattern transfers to almost any %s goal.</p>\n", primary))

	cta := fmt.Sprintf("Want the phase-by-phase worksheet this household used to rebuild their %s? Download the free 18-month planner and start your own phase 1 this week.", primary)
	return title, meta, b.String(), cta
}

// buildCompleteGuide 通用的七段式完整指南模板，用于未识别的角度
func buildCompleteGuide(topicTitle, primary, secondary string) (string, string, string, string) {
	title := fmt.Sprintf("%s: The Complete Guide", topicTitle)
	meta := fmt.Sprintf("Everything you need to understand %s in one place: the fundamentals, the common mistakes, and a step-by-step plan you can start today.", primary)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h1>%s</h1>\n", title))
	b.WriteString(fmt.Sprintf("<p>Whether you're entirely new to %s or returning after a false start, this guide covers the full path: what it is, why it matters, and how to make it stick.</p>\n", primary))

	b.WriteString(fmt.Sprintf("<h2>What %s Actually Means</h2>\n", capitalizeFirst(primary)))
	b.WriteString(fmt.Sprintf("<p>Strip away the jargon and %s comes down to a small set of decisions repeated consistently. This section defines the terms you'll see everywhere else.</p>\n", primary))

	b.WriteString("<h2>Why It Matters More Than You Think</h2>\n")
	b.WriteString("<p>The cost of ignoring this compounds quietly. Small inefficiencies that feel harmless in any single month add up to four figures a year for a typical household.</p>\n")

	b.WriteString("<h2>The Fundamentals</h2>\n")
	b.WriteString(fmt.Sprintf("<p>Three principles carry most of the weight: know your numbers, automate the decision you always get wrong, and review monthly rather than daily. Everything else in %s is refinement.</p>\n", primary))

	b.WriteString("<h2>Common Mistakes to Avoid</h2>\n")
	b.WriteString(fmt.Sprintf("<p>The most expensive errors are starting too aggressively, confusing tools with systems, and abandoning the plan after the first bad month. Each has a cheap prevention covered here, especially around %s.</p>\n", secondary))

	b.WriteString("<h2>Tools That Help (and Ones That Don't)</h2>\n")
	b.WriteString("<p>A spreadsheet and one automatic transfer cover ninety percent of use cases. Apps help with visibility, not discipline; pick one and resist the urge to switch monthly.</p>\n")

	b.WriteString("<h2>Your Step-by-Step Plan</h2>\n")
	b.WriteString("<p>Week one: gather your numbers. Week two: set up one automation. Weeks three and four: run the system untouched and note what chafes. Month two onward: adjust one variable at a time.</p>\n")

	b.WriteString("<h2>Key Takeaways</h2>\n")
	b.WriteString(fmt.Sprintf("<p>Start smaller than feels impressive, automate early, and measure monthly. Individual results may vary, and this guide is for informational purposes only, not financial advice. Done consistently, the fundamentals of %s outperform any clever tactic.</p>\n", primary))

	cta := fmt.Sprintf("Ready to go deeper on %s? Join our free newsletter for one practical lesson a week, no spam and no upsells.", primary)
	return title, meta, b.String(), cta
}

// capitalizeFirst 将字符串首字母大写，用于小节标题中的关键词
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
