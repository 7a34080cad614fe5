package service

import (
	"fmt"
	"strings"

	"github.com/wolfitem/ai-writer/internal/domain/model"
)

// 所有角度共用的系统提示词，约束输出格式
const systemPrompt = `You are a senior personal finance writer for a US consumer audience.
Write in clear, friendly English. Always include appropriate financial disclaimers
(investment risk, "not financial advice", affiliate disclosure where relevant).
Return the article as a JSON object with exactly these keys:
{"title": "...", "meta_description": "...", "content": "...", "cta": "..."}
where content is clean HTML using one h1 and several h2 sections.
If you cannot return JSON, use plain text sections prefixed with
TITLE:, META_DESCRIPTION:, CONTENT: and CTA: markers instead.`

// anglePromptTemplates 五种内容角度各自的写作指令。
// %s依次为话题标题、主关键词、次要关键词列表、目标词数
var anglePromptTemplates = map[model.ContentAngle]string{
	model.AngleMarketNews: `Write a market news analysis article about "%s".
Primary keyword: %s. Secondary keywords: %s.
Open with what changed this week, explain why it matters to everyday investors,
include concrete numbers, and close with what readers should watch next.
Target length: at least %d words.`,

	model.AngleContrarianOpinion: `Write a contrarian opinion piece about "%s".
Primary keyword: %s. Secondary keywords: %s.
State the conventional wisdom, then argue the opposite case with evidence.
Acknowledge where the mainstream view holds before presenting the counterargument.
Target length: at least %d words.`,

	model.AnglePracticalTips: `Write a practical step-by-step guide about "%s".
Primary keyword: %s. Secondary keywords: %s.
Number the steps, give a concrete action and a common mistake for each,
and include realistic dollar amounts in the examples.
Target length: at least %d words.`,

	model.AngleProductReview: `Write an in-depth product review article about "%s".
Primary keyword: %s. Secondary keywords: %s.
Cover who the product is for, pros and cons, fees and fine print, alternatives,
and a verdict. Include an affiliate disclosure.
Target length: at least %d words.`,

	model.AngleCaseStudy: `Write a first-person case study narrative about "%s".
Primary keyword: %s. Secondary keywords: %s.
Tell one person's story in phases with a timeline, real setbacks, specific
numbers, and the lessons that transfer to the reader.
Target length: at least %d words.`,
}

// genericPromptTemplate 未识别角度时的兜底指令
const genericPromptTemplate = `Write a complete guide about "%s".
Primary keyword: %s. Secondary keywords: %s.
Cover the fundamentals, common mistakes, and a practical action plan.
Target length: at least %d words.`

// buildUserPrompt 按角度构建用户提示词
func buildUserPrompt(topic model.Topic, keywords model.KeywordSelection, minWordCount int) string {
	template := genericPromptTemplate
	if topic.Profile != nil {
		if t, ok := anglePromptTemplates[topic.Profile.Angle]; ok {
			template = t
		}
	}

	secondary := append(append([]string{}, keywords.Primary...), keywords.LongTail...)
	if len(secondary) > 1 {
		secondary = secondary[1:]
	}
	secondaryList := strings.Join(secondary, ", ")
	if secondaryList == "" {
		secondaryList = topic.Category
	}

	return fmt.Sprintf(template, topic.Title, keywords.Target, secondaryList, minWordCount)
}
