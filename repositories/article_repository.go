package repositories

import (
	"context"
	"fmt"

	"galatide/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var articleSortColumns = map[string]string{
	"created_at":   "articles.created_at",
	"updated_at":   "articles.updated_at",
	"published_at": "articles.published_at",
	"title":        "articles.title",
}

type ArticleRepository struct {
	conn Connector
}

func NewArticleRepository(conn Connector) *ArticleRepository {
	return &ArticleRepository{conn: conn}
}

func (r *ArticleRepository) Create(ctx context.Context, article *models.Article) error {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return err
	}

	record := fromArticle(article)
	if err := db.Omit(clause.Associations).Create(&record).Error; err != nil {
		return translateError("article", err)
	}
	article.ID = record.ID
	article.CreatedAt = record.CreatedAt
	article.UpdatedAt = record.UpdatedAt
	return nil
}

// GetByID loads an article with its author, original language and tags.
func (r *ArticleRepository) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	var record articleRecord
	if err := db.Preload("Author").Preload("OriginalLanguage").First(&record, id).Error; err != nil {
		return nil, translateError("article", err)
	}
	return r.withTags(db, record)
}

// FindPublishedBySlug finds a published article by slug. An empty
// languageCode matches any original language.
func (r *ArticleRepository) FindPublishedBySlug(ctx context.Context, slug, languageCode string) (*models.Article, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	query := db.Model(&articleRecord{}).
		Preload("Author").
		Preload("OriginalLanguage").
		Where("articles.slug = ? AND articles.status = ?", slug, models.StatusPublished)
	if languageCode != "" {
		query = query.Joins("JOIN languages ON languages.id = articles.original_language_id").
			Where("languages.code = ?", languageCode)
	}

	var record articleRecord
	if err := query.Order("articles.id asc").First(&record).Error; err != nil {
		return nil, translateError("article", err)
	}
	return r.withTags(db, record)
}

// SlugTaken reports whether another article in languageID already uses slug.
func (r *ArticleRepository) SlugTaken(ctx context.Context, slug string, languageID, excludeID uint) (bool, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return false, err
	}

	var count int64
	err = db.Model(&articleRecord{}).
		Where("slug = ? AND original_language_id = ? AND id <> ?", slug, languageID, excludeID).
		Count(&count).Error
	if err != nil {
		return false, translateError("article", err)
	}
	return count > 0, nil
}

func (r *ArticleRepository) List(ctx context.Context, params models.ArticleListParams) ([]models.Article, int64, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, 0, err
	}

	query := db.Model(&articleRecord{})
	if params.Status != "" {
		query = query.Where("articles.status = ?", params.Status)
	}
	if params.LanguageID > 0 {
		query = query.Where("articles.original_language_id = ?", params.LanguageID)
	}
	if params.AuthorID > 0 {
		query = query.Where("articles.author_id = ?", params.AuthorID)
	}
	if params.TagID > 0 {
		query = query.Joins("JOIN article_tags ON article_tags.article_id = articles.id").
			Where("article_tags.tag_id = ?", params.TagID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError("article", err)
	}

	sortColumn, ok := articleSortColumns[params.SortBy]
	if !ok {
		sortColumn = articleSortColumns["created_at"]
	}
	sortOrder := "desc"
	if params.SortOrder == "asc" {
		sortOrder = "asc"
	}

	offset := (params.Page - 1) * params.Limit
	var records []articleRecord
	err = query.Preload("Author").Preload("OriginalLanguage").
		Order(fmt.Sprintf("%s %s", sortColumn, sortOrder)).
		Order("articles.id desc").
		Offset(offset).Limit(params.Limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, translateError("article", err)
	}

	articles, err := r.withTagsList(db, records)
	return articles, total, err
}

// ListPublishedByLanguage returns published articles authored in languageID,
// optionally restricted to those linked to tagID.
func (r *ArticleRepository) ListPublishedByLanguage(ctx context.Context, languageID, tagID uint) ([]models.Article, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	query := db.Model(&articleRecord{}).
		Where("articles.status = ? AND articles.original_language_id = ?", models.StatusPublished, languageID)
	if tagID > 0 {
		query = query.Joins("JOIN article_tags ON article_tags.article_id = articles.id").
			Where("article_tags.tag_id = ?", tagID)
	}

	var records []articleRecord
	if err := query.Order("articles.published_at desc").Order("articles.id desc").Find(&records).Error; err != nil {
		return nil, translateError("article", err)
	}
	return r.withTagsList(db, records)
}

func (r *ArticleRepository) Update(ctx context.Context, article *models.Article) error {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return err
	}

	record := fromArticle(article)
	if err := db.Omit(clause.Associations).Save(&record).Error; err != nil {
		return translateError("article", err)
	}
	article.UpdatedAt = record.UpdatedAt
	return nil
}

// Delete removes the article with its translations and tag links. Callers
// wrap it in a transaction to make the cascade atomic.
func (r *ArticleRepository) Delete(ctx context.Context, id uint) error {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return err
	}

	if err := db.Where("article_id = ?", id).Delete(&translationRecord{}).Error; err != nil {
		return translateError("translation", err)
	}
	if err := db.Where("article_id = ?", id).Delete(&articleTagRecord{}).Error; err != nil {
		return translateError("article tag", err)
	}

	result := db.Delete(&articleRecord{}, id)
	if result.Error != nil {
		return translateError("article", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFound("article")
	}
	return nil
}

// ReplaceTags sets the article's tag links to exactly tagIDs.
func (r *ArticleRepository) ReplaceTags(ctx context.Context, articleID uint, tagIDs []uint) error {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return err
	}

	if err := db.Where("article_id = ?", articleID).Delete(&articleTagRecord{}).Error; err != nil {
		return translateError("article tag", err)
	}
	if len(tagIDs) == 0 {
		return nil
	}

	links := make([]articleTagRecord, 0, len(tagIDs))
	seen := make(map[uint]struct{}, len(tagIDs))
	for _, tagID := range tagIDs {
		if _, ok := seen[tagID]; ok {
			continue
		}
		seen[tagID] = struct{}{}
		links = append(links, articleTagRecord{ArticleID: articleID, TagID: tagID})
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
		return translateError("article tag", err)
	}
	return nil
}

func (r *ArticleRepository) withTags(db *gorm.DB, record articleRecord) (*models.Article, error) {
	tags, err := loadTagsForArticles(db, []uint{record.ID})
	if err != nil {
		return nil, err
	}
	article := toArticle(&record)
	if t := tags[record.ID]; t != nil {
		article.Tags = t
	}
	return &article, nil
}

func (r *ArticleRepository) withTagsList(db *gorm.DB, records []articleRecord) ([]models.Article, error) {
	ids := make([]uint, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	tags, err := loadTagsForArticles(db, ids)
	if err != nil {
		return nil, err
	}

	articles := make([]models.Article, 0, len(records))
	for i := range records {
		article := toArticle(&records[i])
		if t := tags[records[i].ID]; t != nil {
			article.Tags = t
		}
		articles = append(articles, article)
	}
	return articles, nil
}
