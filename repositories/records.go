package repositories

import (
	"time"

	"galatide/models"
)

// Rows as stored by gorm. They never leave this package; the mapping
// functions below project them onto the models types.

type languageRecord struct {
	ID         uint   `gorm:"primaryKey"`
	Code       string `gorm:"size:16;not null;uniqueIndex"`
	Name       string `gorm:"size:100;not null"`
	NativeName string `gorm:"size:100"`
	IsRTL      bool   `gorm:"not null"`
	IsActive   bool   `gorm:"not null;index"`
	IsDefault  bool   `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (languageRecord) TableName() string { return "languages" }

type userRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	Role      string `gorm:"size:16;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userRecord) TableName() string { return "users" }

type articleRecord struct {
	ID                 uint   `gorm:"primaryKey"`
	Title              string `gorm:"size:255;not null"`
	Slug               string `gorm:"size:255;not null;uniqueIndex:idx_articles_slug_language"`
	Excerpt            string `gorm:"type:text"`
	Content            string `gorm:"type:text"`
	CoverURL           string `gorm:"size:1024"`
	Status             string `gorm:"size:16;not null;index"`
	PublishedAt        *time.Time
	AuthorID           uint            `gorm:"not null;index"`
	Author             *userRecord     `gorm:"foreignKey:AuthorID"`
	OriginalLanguageID uint            `gorm:"not null;uniqueIndex:idx_articles_slug_language"`
	OriginalLanguage   *languageRecord `gorm:"foreignKey:OriginalLanguageID"`
	MetaTitle          string          `gorm:"size:255"`
	MetaDescription    string          `gorm:"size:500"`
	Keywords           string          `gorm:"size:500"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (articleRecord) TableName() string { return "articles" }

type translationRecord struct {
	ID              uint            `gorm:"primaryKey"`
	ArticleID       uint            `gorm:"not null;uniqueIndex:idx_translations_article_language"`
	Article         *articleRecord  `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
	LanguageID      uint            `gorm:"not null;uniqueIndex:idx_translations_article_language"`
	Language        *languageRecord `gorm:"foreignKey:LanguageID"`
	Title           string          `gorm:"size:255;not null"`
	Slug            string          `gorm:"size:255;not null;index"`
	Excerpt         string          `gorm:"type:text"`
	Content         string          `gorm:"type:text"`
	Status          string          `gorm:"size:16;not null;index"`
	PublishedAt     *time.Time
	TranslatorID    *uint
	Translator      *userRecord `gorm:"foreignKey:TranslatorID"`
	MetaTitle       string      `gorm:"size:255"`
	MetaDescription string      `gorm:"size:500"`
	Keywords        string      `gorm:"size:500"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (translationRecord) TableName() string { return "article_translations" }

type tagRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;uniqueIndex"`
	Slug      string `gorm:"size:100;not null;uniqueIndex"`
	Color     string `gorm:"size:16;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (tagRecord) TableName() string { return "tags" }

type tagTranslationRecord struct {
	ID           uint       `gorm:"primaryKey"`
	TagID        uint       `gorm:"not null;uniqueIndex:idx_tag_translations_tag_language"`
	Tag          *tagRecord `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
	LanguageCode string     `gorm:"size:16;not null;uniqueIndex:idx_tag_translations_tag_language"`
	Name         string     `gorm:"size:100;not null"`
}

func (tagTranslationRecord) TableName() string { return "tag_translations" }

type articleTagRecord struct {
	ArticleID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID     uint `gorm:"primaryKey;autoIncrement:false;index"`
}

func (articleTagRecord) TableName() string { return "article_tags" }

// articleTagRow is a tag joined with the article it is linked to.
type articleTagRow struct {
	ArticleID uint
	ID        uint
	Name      string
	Slug      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func toLanguage(r *languageRecord) models.Language {
	return models.Language{
		ID:         r.ID,
		Code:       r.Code,
		Name:       r.Name,
		NativeName: r.NativeName,
		IsRTL:      r.IsRTL,
		IsActive:   r.IsActive,
		IsDefault:  r.IsDefault,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func fromLanguage(l *models.Language) languageRecord {
	return languageRecord{
		ID:         l.ID,
		Code:       l.Code,
		Name:       l.Name,
		NativeName: l.NativeName,
		IsRTL:      l.IsRTL,
		IsActive:   l.IsActive,
		IsDefault:  l.IsDefault,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

func toUser(r *userRecord) models.User {
	return models.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Role:      models.UserRole(r.Role),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func fromUser(u *models.User) userRecord {
	return userRecord{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toArticle(r *articleRecord) models.Article {
	a := models.Article{
		ID:                 r.ID,
		Title:              r.Title,
		Slug:               r.Slug,
		Excerpt:            r.Excerpt,
		Content:            r.Content,
		CoverURL:           r.CoverURL,
		Status:             models.ContentStatus(r.Status),
		PublishedAt:        r.PublishedAt,
		AuthorID:           r.AuthorID,
		OriginalLanguageID: r.OriginalLanguageID,
		MetaTitle:          r.MetaTitle,
		MetaDescription:    r.MetaDescription,
		Keywords:           r.Keywords,
		Tags:               []models.Tag{},
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.Author != nil {
		author := toUser(r.Author)
		a.Author = &author
	}
	if r.OriginalLanguage != nil {
		lang := toLanguage(r.OriginalLanguage)
		a.OriginalLanguage = &lang
	}
	return a
}

func fromArticle(a *models.Article) articleRecord {
	return articleRecord{
		ID:                 a.ID,
		Title:              a.Title,
		Slug:               a.Slug,
		Excerpt:            a.Excerpt,
		Content:            a.Content,
		CoverURL:           a.CoverURL,
		Status:             string(a.Status),
		PublishedAt:        a.PublishedAt,
		AuthorID:           a.AuthorID,
		OriginalLanguageID: a.OriginalLanguageID,
		MetaTitle:          a.MetaTitle,
		MetaDescription:    a.MetaDescription,
		Keywords:           a.Keywords,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func toTranslation(r *translationRecord) models.Translation {
	t := models.Translation{
		ID:              r.ID,
		ArticleID:       r.ArticleID,
		LanguageID:      r.LanguageID,
		Title:           r.Title,
		Slug:            r.Slug,
		Excerpt:         r.Excerpt,
		Content:         r.Content,
		Status:          models.ContentStatus(r.Status),
		PublishedAt:     r.PublishedAt,
		TranslatorID:    r.TranslatorID,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
		Keywords:        r.Keywords,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.Language != nil {
		lang := toLanguage(r.Language)
		t.Language = &lang
	}
	if r.Article != nil {
		article := toArticle(r.Article)
		t.Article = &article
	}
	return t
}

func fromTranslation(t *models.Translation) translationRecord {
	return translationRecord{
		ID:              t.ID,
		ArticleID:       t.ArticleID,
		LanguageID:      t.LanguageID,
		Title:           t.Title,
		Slug:            t.Slug,
		Excerpt:         t.Excerpt,
		Content:         t.Content,
		Status:          string(t.Status),
		PublishedAt:     t.PublishedAt,
		TranslatorID:    t.TranslatorID,
		MetaTitle:       t.MetaTitle,
		MetaDescription: t.MetaDescription,
		Keywords:        t.Keywords,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func toTag(r *tagRecord) models.Tag {
	return models.Tag{
		ID:        r.ID,
		Name:      r.Name,
		Slug:      r.Slug,
		Color:     r.Color,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func fromTag(t *models.Tag) tagRecord {
	return tagRecord{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		Color:     t.Color,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toTagTranslation(r *tagTranslationRecord) models.TagTranslation {
	return models.TagTranslation{
		ID:           r.ID,
		TagID:        r.TagID,
		LanguageCode: r.LanguageCode,
		Name:         r.Name,
	}
}
