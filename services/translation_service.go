package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"galatide/models"
)

type TranslationService interface {
	CreateTranslation(ctx context.Context, articleID uint, req models.CreateTranslationRequest, translatorID *uint) (*models.Translation, error)
	GetTranslation(ctx context.Context, id uint) (*models.Translation, error)
	ListTranslationsForArticle(ctx context.Context, articleID uint) ([]models.Translation, error)
	UpdateTranslation(ctx context.Context, id uint, req models.UpdateTranslationRequest) (*models.Translation, error)
	DeleteTranslation(ctx context.Context, id uint) error
	ListAvailableLanguagesForArticle(ctx context.Context, articleID uint) ([]models.Language, error)
}

type translationService struct {
	articles     ArticleStore
	translations TranslationStore
	languages    LanguageStore
	events       eventSink
	now          func() time.Time
}

func NewTranslationService(
	articles ArticleStore,
	translations TranslationStore,
	languages LanguageStore,
	publisher EventPublisher,
	logger *slog.Logger,
) TranslationService {
	return &translationService{
		articles:     articles,
		translations: translations,
		languages:    languages,
		events:       eventSink{publisher: publisher, logger: logger},
		now:          time.Now,
	}
}

func (s *translationService) CreateTranslation(ctx context.Context, articleID uint, req models.CreateTranslationRequest, translatorID *uint) (*models.Translation, error) {
	title, err := requireTitle(req.Title)
	if err != nil {
		return nil, err
	}
	status, err := statusOrDraft(req.Status)
	if err != nil {
		return nil, err
	}
	slug, err := resolveSlug(req.Slug, title)
	if err != nil {
		return nil, err
	}

	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	lang, err := s.languages.GetByID(ctx, req.LanguageID)
	if err != nil {
		return nil, err
	}
	if lang.ID == article.OriginalLanguageID {
		return nil, models.NewValidation("language_id", "must differ from the article's original language")
	}

	_, err = s.translations.GetByArticleAndLanguage(ctx, articleID, lang.ID)
	switch {
	case err == nil:
		return nil, models.NewConflict("translation", "article already has a translation in "+lang.Code)
	case !models.IsNotFound(err):
		return nil, err
	}

	translation := &models.Translation{
		ArticleID:       articleID,
		LanguageID:      lang.ID,
		Title:           title,
		Slug:            slug,
		Excerpt:         strings.TrimSpace(req.Excerpt),
		Content:         sanitizeContent(req.Content),
		TranslatorID:    translatorID,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		Keywords:        req.Keywords,
	}
	translation.ApplyStatus(status, s.now())

	if err := s.translations.Create(ctx, translation); err != nil {
		return nil, err
	}
	translation.Language = lang

	if translation.IsPublished() {
		s.events.emit(ctx, translationEvent(models.EventTranslationPublished, translation, article.Slug))
	}
	return translation, nil
}

func (s *translationService) GetTranslation(ctx context.Context, id uint) (*models.Translation, error) {
	return s.translations.GetByID(ctx, id)
}

func (s *translationService) ListTranslationsForArticle(ctx context.Context, articleID uint) ([]models.Translation, error) {
	if _, err := s.articles.GetByID(ctx, articleID); err != nil {
		return nil, err
	}
	return s.translations.ListByArticle(ctx, articleID)
}

func (s *translationService) UpdateTranslation(ctx context.Context, id uint, req models.UpdateTranslationRequest) (*models.Translation, error) {
	translation, err := s.translations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := translation.Status

	if req.Title != nil {
		title, err := requireTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		translation.Title = title
	}
	if req.Slug != nil {
		slug, err := resolveSlug(*req.Slug, translation.Title)
		if err != nil {
			return nil, err
		}
		translation.Slug = slug
	}
	if req.Excerpt != nil {
		translation.Excerpt = strings.TrimSpace(*req.Excerpt)
	}
	if req.Content != nil {
		translation.Content = sanitizeContent(*req.Content)
	}
	if req.MetaTitle != nil {
		translation.MetaTitle = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		translation.MetaDescription = *req.MetaDescription
	}
	if req.Keywords != nil {
		translation.Keywords = *req.Keywords
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, models.NewValidation("status", "must be DRAFT or PUBLISHED")
		}
		translation.ApplyStatus(*req.Status, s.now())
	}

	if err := s.translations.Update(ctx, translation); err != nil {
		return nil, err
	}

	if eventType := statusEvent(before, translation.Status, models.EventTranslationPublished, models.EventTranslationUnpublished); eventType != "" {
		s.events.emit(ctx, translationEvent(eventType, translation, ""))
	}
	return translation, nil
}

func (s *translationService) DeleteTranslation(ctx context.Context, id uint) error {
	translation, err := s.translations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.translations.Delete(ctx, id); err != nil {
		return err
	}

	s.events.emit(ctx, translationEvent(models.EventTranslationDeleted, translation, ""))
	return nil
}

// ListAvailableLanguagesForArticle returns the languages an article can still
// be translated into: every language except its original language and those
// it already has a translation in.
func (s *translationService) ListAvailableLanguagesForArticle(ctx context.Context, articleID uint) ([]models.Language, error) {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	languages, err := s.languages.List(ctx, false)
	if err != nil {
		return nil, err
	}
	existing, err := s.translations.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}

	taken := make(map[uint]struct{}, len(existing)+1)
	taken[article.OriginalLanguageID] = struct{}{}
	for _, t := range existing {
		taken[t.LanguageID] = struct{}{}
	}

	available := make([]models.Language, 0, len(languages))
	for _, lang := range languages {
		if _, ok := taken[lang.ID]; ok {
			continue
		}
		available = append(available, lang)
	}
	return available, nil
}

func translationEvent(eventType models.EventType, t *models.Translation, fallbackSlug string) models.ContentEvent {
	event := models.ContentEvent{
		Type:          eventType,
		ArticleID:     t.ArticleID,
		TranslationID: t.ID,
		Slug:          t.Slug,
	}
	if event.Slug == "" {
		event.Slug = fallbackSlug
	}
	if t.Language != nil {
		event.LanguageCode = t.Language.Code
	}
	return event
}
