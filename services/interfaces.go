package services

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"galatide/models"
)

type LanguageStore interface {
	List(ctx context.Context, activeOnly bool) ([]models.Language, error)
	GetByID(ctx context.Context, id uint) (*models.Language, error)
	GetByCode(ctx context.Context, code string) (*models.Language, error)
	GetDefault(ctx context.Context) (*models.Language, error)
	Create(ctx context.Context, lang *models.Language) error
	Update(ctx context.Context, lang *models.Language) error
	ClearDefault(ctx context.Context, exceptID uint) error
	Delete(ctx context.Context, id uint) error
}

type ArticleStore interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id uint) (*models.Article, error)
	FindPublishedBySlug(ctx context.Context, slug, languageCode string) (*models.Article, error)
	SlugTaken(ctx context.Context, slug string, languageID, excludeID uint) (bool, error)
	List(ctx context.Context, params models.ArticleListParams) ([]models.Article, int64, error)
	ListPublishedByLanguage(ctx context.Context, languageID, tagID uint) ([]models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id uint) error
	ReplaceTags(ctx context.Context, articleID uint, tagIDs []uint) error
}

type TranslationStore interface {
	Create(ctx context.Context, translation *models.Translation) error
	GetByID(ctx context.Context, id uint) (*models.Translation, error)
	GetByArticleAndLanguage(ctx context.Context, articleID, languageID uint) (*models.Translation, error)
	ListByArticle(ctx context.Context, articleID uint) ([]models.Translation, error)
	FindPublishedBySlug(ctx context.Context, slug, languageCode string) (*models.Translation, error)
	ListPublishedByLanguage(ctx context.Context, languageID, tagID uint) ([]models.Translation, error)
	Update(ctx context.Context, translation *models.Translation) error
	Delete(ctx context.Context, id uint) error
}

type TagStore interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tag, error)
	ExistsByNameOrSlug(ctx context.Context, name, slug string) (bool, error)
	List(ctx context.Context) ([]models.Tag, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Tag, error)
	ListTranslations(ctx context.Context, languageCode string) ([]models.TagTranslation, error)
	UpsertTranslation(ctx context.Context, translation *models.TagTranslation) error
	DeleteTranslation(ctx context.Context, tagID uint, languageCode string) error
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event models.ContentEvent) error
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}
