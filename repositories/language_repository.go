package repositories

import (
	"context"

	"galatide/models"
)

type LanguageRepository struct {
	conn Connector
}

func NewLanguageRepository(conn Connector) *LanguageRepository {
	return &LanguageRepository{conn: conn}
}

func (r *LanguageRepository) List(ctx context.Context, activeOnly bool) ([]models.Language, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	query := db.Model(&languageRecord{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var records []languageRecord
	if err := query.Order("is_default desc").Order("code asc").Find(&records).Error; err != nil {
		return nil, translateError("language", err)
	}

	languages := make([]models.Language, 0, len(records))
	for i := range records {
		languages = append(languages, toLanguage(&records[i]))
	}
	return languages, nil
}

func (r *LanguageRepository) GetByID(ctx context.Context, id uint) (*models.Language, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	var record languageRecord
	if err := db.First(&record, id).Error; err != nil {
		return nil, translateError("language", err)
	}
	lang := toLanguage(&record)
	return &lang, nil
}

func (r *LanguageRepository) GetByCode(ctx context.Context, code string) (*models.Language, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	var record languageRecord
	if err := db.Where("code = ?", code).First(&record).Error; err != nil {
		return nil, translateError("language", err)
	}
	lang := toLanguage(&record)
	return &lang, nil
}

func (r *LanguageRepository) GetDefault(ctx context.Context) (*models.Language, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	var record languageRecord
	if err := db.Where("is_default = ?", true).Order("id asc").First(&record).Error; err != nil {
		return nil, translateError("default language", err)
	}
	lang := toLanguage(&record)
	return &lang, nil
}

func (r *LanguageRepository) Create(ctx context.Context, lang *models.Language) error {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return err
	}

	record := fromLanguage(lang)
	if err := db.Create(&record).Error; err != nil {
		return translateError("language", err)
	}
	*lang = toLanguage(&record)
	return nil
}

func (r *LanguageRepository) Update(ctx context.Context, lang *models.Language) error {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return err
	}

	record := fromLanguage(lang)
	if err := db.Save(&record).Error; err != nil {
		return translateError("language", err)
	}
	*lang = toLanguage(&record)
	return nil
}

// ClearDefault removes the default flag from every language except exceptID.
func (r *LanguageRepository) ClearDefault(ctx context.Context, exceptID uint) error {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return err
	}

	err = db.Model(&languageRecord{}).
		Where("is_default = ? AND id <> ?", true, exceptID).
		Update("is_default", false).Error
	return translateError("language", err)
}

func (r *LanguageRepository) Delete(ctx context.Context, id uint) error {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return err
	}

	result := db.Delete(&languageRecord{}, id)
	if result.Error != nil {
		return translateError("language", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFound("language")
	}
	return nil
}
