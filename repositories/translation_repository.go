package repositories

import (
	"context"

	"galatide/models"

	"gorm.io/gorm/clause"
)

type TranslationRepository struct {
	conn Connector
}

func NewTranslationRepository(conn Connector) *TranslationRepository {
	return &TranslationRepository{conn: conn}
}

func (r *TranslationRepository) Create(ctx context.Context, translation *models.Translation) error {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return err
	}

	record := fromTranslation(translation)
	if err := db.Omit(clause.Associations).Create(&record).Error; err != nil {
		return translateError("translation", err)
	}
	translation.ID = record.ID
	translation.CreatedAt = record.CreatedAt
	translation.UpdatedAt = record.UpdatedAt
	return nil
}

func (r *TranslationRepository) GetByID(ctx context.Context, id uint) (*models.Translation, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	var record translationRecord
	if err := db.Preload("Language").First(&record, id).Error; err != nil {
		return nil, translateError("translation", err)
	}
	translation := toTranslation(&record)
	return &translation, nil
}

func (r *TranslationRepository) GetByArticleAndLanguage(ctx context.Context, articleID, languageID uint) (*models.Translation, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	var record translationRecord
	err = db.Preload("Language").
		Where("article_id = ? AND language_id = ?", articleID, languageID).
		First(&record).Error
	if err != nil {
		return nil, translateError("translation", err)
	}
	translation := toTranslation(&record)
	return &translation, nil
}

func (r *TranslationRepository) ListByArticle(ctx context.Context, articleID uint) ([]models.Translation, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	var records []translationRecord
	if err := db.Preload("Language").Where("article_id = ?", articleID).Order("id asc").Find(&records).Error; err != nil {
		return nil, translateError("translation", err)
	}

	translations := make([]models.Translation, 0, len(records))
	for i := range records {
		translations = append(translations, toTranslation(&records[i]))
	}
	return translations, nil
}

// FindPublishedBySlug finds a published translation in languageCode whose own
// slug or whose article's slug equals slug. The lowest id wins.
func (r *TranslationRepository) FindPublishedBySlug(ctx context.Context, slug, languageCode string) (*models.Translation, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	var record translationRecord
	err = db.Model(&translationRecord{}).
		Joins("JOIN articles ON articles.id = article_translations.article_id").
		Joins("JOIN languages ON languages.id = article_translations.language_id").
		Where("article_translations.status = ?", models.StatusPublished).
		Where("languages.code = ?", languageCode).
		Where("(article_translations.slug = ? OR articles.slug = ?)", slug, slug).
		Order("article_translations.id asc").
		Preload("Language").
		First(&record).Error
	if err != nil {
		return nil, translateError("translation", err)
	}
	translation := toTranslation(&record)
	return &translation, nil
}

// ListPublishedByLanguage returns published translations in languageID with
// their parent article and its tags, optionally restricted to tagID.
func (r *TranslationRepository) ListPublishedByLanguage(ctx context.Context, languageID, tagID uint) ([]models.Translation, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	query := db.Model(&translationRecord{}).
		Preload("Article").
		Preload("Language").
		Where("article_translations.status = ? AND article_translations.language_id = ?", models.StatusPublished, languageID)
	if tagID > 0 {
		query = query.Joins("JOIN article_tags ON article_tags.article_id = article_translations.article_id").
			Where("article_tags.tag_id = ?", tagID)
	}

	var records []translationRecord
	err = query.Order("article_translations.published_at desc").
		Order("article_translations.id desc").
		Find(&records).Error
	if err != nil {
		return nil, translateError("translation", err)
	}

	articleIDs := make([]uint, 0, len(records))
	for _, rec := range records {
		articleIDs = append(articleIDs, rec.ArticleID)
	}
	tags, err := loadTagsForArticles(db, articleIDs)
	if err != nil {
		return nil, err
	}

	translations := make([]models.Translation, 0, len(records))
	for i := range records {
		translation := toTranslation(&records[i])
		if translation.Article != nil {
			if t := tags[translation.ArticleID]; t != nil {
				translation.Article.Tags = t
			}
		}
		translations = append(translations, translation)
	}
	return translations, nil
}

func (r *TranslationRepository) Update(ctx context.Context, translation *models.Translation) error {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return err
	}

	record := fromTranslation(translation)
	if err := db.Omit(clause.Associations).Save(&record).Error; err != nil {
		return translateError("translation", err)
	}
	translation.UpdatedAt = record.UpdatedAt
	return nil
}

func (r *TranslationRepository) Delete(ctx context.Context, id uint) error {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return err
	}

	result := db.Delete(&translationRecord{}, id)
	if result.Error != nil {
		return translateError("translation", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFound("translation")
	}
	return nil
}
