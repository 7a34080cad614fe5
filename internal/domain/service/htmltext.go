package service

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/wolfitem/ai-writer/internal/infrastructure/logger"
)

// stripHTMLTags 去除HTML标签，只保留纯文本
func stripHTMLTags(html string) string {
	if html == "" {
		return ""
	}

	// 使用goquery解析HTML
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		logger.Warn("解析HTML失败，返回原始内容", "error", err)
		return html
	}

	// 获取文本内容并清理多余空白
	text := strings.TrimSpace(doc.Text())
	return strings.Join(strings.Fields(text), " ")
}

// countWords 按空白分词统计词数，统计前先去除HTML标签
func countWords(html string) int {
	return len(strings.Fields(stripHTMLTags(html)))
}

// CountWords 供应用层统计文章词数
func CountWords(html string) int {
	return countWords(html)
}

// parseHTML 解析HTML内容，解析失败时返回nil
func parseHTML(html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		logger.Warn("解析HTML失败", "error", err)
		return nil
	}
	return doc
}
