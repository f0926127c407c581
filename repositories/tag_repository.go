package repositories

import (
	"context"

	"galatide/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository struct {
	conn Connector
}

func NewTagRepository(conn Connector) *TagRepository {
	return &TagRepository{conn: conn}
}

func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return err
	}

	record := fromTag(tag)
	if err := db.Create(&record).Error; err != nil {
		return translateError("tag", err)
	}
	*tag = toTag(&record)
	return nil
}

func (r *TagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	var record tagRecord
	if err := db.First(&record, id).Error; err != nil {
		return nil, translateError("tag", err)
	}
	tag := toTag(&record)
	return &tag, nil
}

func (r *TagRepository) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	var record tagRecord
	if err := db.Where("slug = ?", slug).First(&record).Error; err != nil {
		return nil, translateError("tag", err)
	}
	tag := toTag(&record)
	return &tag, nil
}

// ExistsByNameOrSlug reports whether a tag already uses name or slug.
func (r *TagRepository) ExistsByNameOrSlug(ctx context.Context, name, slug string) (bool, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return false, err
	}

	var count int64
	if err := db.Model(&tagRecord{}).Where("name = ? OR slug = ?", name, slug).Count(&count).Error; err != nil {
		return false, translateError("tag", err)
	}
	return count > 0, nil
}

func (r *TagRepository) List(ctx context.Context) ([]models.Tag, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	var records []tagRecord
	if err := db.Order("name asc").Find(&records).Error; err != nil {
		return nil, translateError("tag", err)
	}

	tags := make([]models.Tag, 0, len(records))
	for i := range records {
		tags = append(tags, toTag(&records[i]))
	}
	return tags, nil
}

func (r *TagRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}

	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	var records []tagRecord
	if err := db.Where("id IN ?", ids).Order("name asc").Find(&records).Error; err != nil {
		return nil, translateError("tag", err)
	}

	tags := make([]models.Tag, 0, len(records))
	for i := range records {
		tags = append(tags, toTag(&records[i]))
	}
	return tags, nil
}

// ListTranslations returns every tag name override for languageCode.
func (r *TagRepository) ListTranslations(ctx context.Context, languageCode string) ([]models.TagTranslation, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	var records []tagTranslationRecord
	if err := db.Where("language_code = ?", languageCode).Find(&records).Error; err != nil {
		return nil, translateError("tag translation", err)
	}

	translations := make([]models.TagTranslation, 0, len(records))
	for i := range records {
		translations = append(translations, toTagTranslation(&records[i]))
	}
	return translations, nil
}

// UpsertTranslation inserts or renames the override for (TagID, LanguageCode).
func (r *TagRepository) UpsertTranslation(ctx context.Context, translation *models.TagTranslation) error {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return err
	}

	record := tagTranslationRecord{
		TagID:        translation.TagID,
		LanguageCode: translation.LanguageCode,
		Name:         translation.Name,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tag_id"}, {Name: "language_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&record).Error
	if err != nil {
		return translateError("tag translation", err)
	}

	var stored tagTranslationRecord
	if err := db.Where("tag_id = ? AND language_code = ?", record.TagID, record.LanguageCode).
		First(&stored).Error; err != nil {
		return translateError("tag translation", err)
	}
	*translation = toTagTranslation(&stored)
	return nil
}

func (r *TagRepository) DeleteTranslation(ctx context.Context, tagID uint, languageCode string) error {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return err
	}

	result := db.Where("tag_id = ? AND language_code = ?", tagID, languageCode).Delete(&tagTranslationRecord{})
	if result.Error != nil {
		return translateError("tag translation", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFound("tag translation")
	}
	return nil
}

// loadTagsForArticles returns the tags linked to each of articleIDs.
func loadTagsForArticles(db *gorm.DB, articleIDs []uint) (map[uint][]models.Tag, error) {
	result := make(map[uint][]models.Tag, len(articleIDs))
	if len(articleIDs) == 0 {
		return result, nil
	}

	var rows []articleTagRow
	err := db.Table("tags").
		Select("article_tags.article_id, tags.id, tags.name, tags.slug, tags.color, tags.created_at, tags.updated_at").
		Joins("JOIN article_tags ON article_tags.tag_id = tags.id").
		Where("article_tags.article_id IN ?", articleIDs).
		Order("tags.name asc").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError("tag", err)
	}

	for _, row := range rows {
		result[row.ArticleID] = append(result[row.ArticleID], models.Tag{
			ID:        row.ID,
			Name:      row.Name,
			Slug:      row.Slug,
			Color:     row.Color,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return result, nil
}
