package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/wolfitem/ai-writer/internal/domain/model"
	"github.com/wolfitem/ai-writer/internal/infrastructure/logger"
)

// ArticleRepository 定义文章存储库接口
type ArticleRepository interface {
	// SaveArticle 保存生成的文章草稿
	SaveArticle(article model.Article) error
	// ArticleExists 检查文章是否已存在
	ArticleExists(id string) (bool, error)
	// GetArticleByID 根据ID获取文章
	GetArticleByID(id string) (*model.Article, error)
}

// repoLog 标记本存储库产生的日志
var repoLog = logger.WithContext("article_repository")

// SQLiteArticleRepository 实现ArticleRepository接口的SQLite存储库
type SQLiteArticleRepository struct {
	db Database
}

// NewSQLiteArticleRepository 创建一个新的SQLite文章存储库
func NewSQLiteArticleRepository(db Database) ArticleRepository {
	return &SQLiteArticleRepository{
		db: db,
	}
}

// SaveArticle 保存生成的文章草稿到数据库
func (r *SQLiteArticleRepository) SaveArticle(article model.Article) error {
	repoLog.Info("保存文章到数据库", "title", article.Title, "id", article.Metadata.ID)

	// 检查文章是否已存在
	exists, err := r.ArticleExists(article.Metadata.ID)
	if err != nil {
		repoLog.Error("检查文章是否存在失败", "error", err)
		return fmt.Errorf("检查文章是否存在失败: %w", err)
	}

	// 如果文章已存在，则不再保存
	if exists {
		repoLog.Info("文章已存在，跳过保存", "id", article.Metadata.ID)
		return nil
	}

	isFallback := 0
	if article.Metadata.IsFallbackArticle {
		isFallback = 1
	}

	// 插入文章记录
	query := `
	INSERT INTO articles (id, title, meta_description, content, cta, category, keywords,
		quality_score, word_count, reading_time, status, is_fallback, template_used, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		article.Metadata.ID,
		article.Title,
		article.MetaDescription,
		article.Content,
		article.CTA,
		article.Category,
		strings.Join(article.Keywords, ","),
		float64(article.Metadata.QualityScore),
		article.Metadata.WordCount,
		article.Metadata.ReadingTime,
		article.Metadata.Status,
		isFallback,
		article.Metadata.TemplateUsed,
		article.Metadata.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		repoLog.Error("保存文章失败", "error", err)
		return fmt.Errorf("保存文章失败: %w", err)
	}

	repoLog.Info("文章保存成功", "title", article.Title, "status", article.Metadata.Status)
	return nil
}

// ArticleExists 检查文章是否已存在于数据库中
func (r *SQLiteArticleRepository) ArticleExists(id string) (bool, error) {
	repoLog.Debug("检查文章是否存在", "id", id)

	query := "SELECT COUNT(*) FROM articles WHERE id = ?"
	var count int
	err := r.db.QueryRow(query, id).Scan(&count)
	if err != nil {
		repoLog.Error("查询文章失败", "error", err)
		return false, fmt.Errorf("查询文章失败: %w", err)
	}

	exists := count > 0
	repoLog.Debug("文章存在检查结果", "id", id, "exists", exists)
	return exists, nil
}

// GetArticleByID 根据ID获取文章
func (r *SQLiteArticleRepository) GetArticleByID(id string) (*model.Article, error) {
	repoLog.Debug("根据ID获取文章", "id", id)

	query := `SELECT id, title, meta_description, content, cta, category, keywords,
		quality_score, word_count, reading_time, status, is_fallback, template_used, created_at
		FROM articles WHERE id = ?`
	row := r.db.QueryRow(query, id)

	var article model.Article
	var keywords string
	var score float64
	var isFallback int
	var createdAt string
	err := row.Scan(
		&article.Metadata.ID,
		&article.Title,
		&article.MetaDescription,
		&article.Content,
		&article.CTA,
		&article.Category,
		&keywords,
		&score,
		&article.Metadata.WordCount,
		&article.Metadata.ReadingTime,
		&article.Metadata.Status,
		&isFallback,
		&article.Metadata.TemplateUsed,
		&createdAt,
	)
	if err != nil {
		repoLog.Error("获取文章失败", "error", err)
		return nil, fmt.Errorf("获取文章失败: %w", err)
	}

	if keywords != "" {
		article.Keywords = strings.Split(keywords, ",")
	}
	article.Metadata.QualityScore = int(score)
	article.Metadata.IsFallbackArticle = isFallback == 1
	if t, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
		article.Metadata.CreatedAt = t
	}

	return &article, nil
}
