package services

import (
	"context"
	"log/slog"
	"strings"

	"galatide/helper"
	"galatide/models"
)

type LanguageService interface {
	ListLanguages(ctx context.Context, activeOnly bool) ([]models.Language, error)
	// ListPublicLanguages lists active languages, degrading to the configured
	// default language when the store is unavailable.
	ListPublicLanguages(ctx context.Context) ([]models.Language, bool)
	GetDefaultLanguage(ctx context.Context) (*models.Language, error)
	CreateLanguage(ctx context.Context, req models.CreateLanguageRequest) (*models.Language, error)
	UpdateLanguage(ctx context.Context, id uint, req models.UpdateLanguageRequest) (*models.Language, error)
	DeleteLanguage(ctx context.Context, id uint) error
}

type languageService struct {
	languages    LanguageStore
	tx           TransactionManager
	events       eventSink
	fallbackCode string
	logger       *slog.Logger
}

func NewLanguageService(languages LanguageStore, tx TransactionManager, publisher EventPublisher, fallbackCode string, logger *slog.Logger) LanguageService {
	return &languageService{
		languages:    languages,
		tx:           tx,
		events:       eventSink{publisher: publisher, logger: logger},
		fallbackCode: helper.NormalizeCode(fallbackCode),
		logger:       logger,
	}
}

func (s *languageService) ListLanguages(ctx context.Context, activeOnly bool) ([]models.Language, error) {
	return s.languages.List(ctx, activeOnly)
}

func (s *languageService) ListPublicLanguages(ctx context.Context) ([]models.Language, bool) {
	languages, err := s.languages.List(ctx, true)
	if err == nil {
		return languages, false
	}

	s.logger.Warn("serving fallback language list", "error", err)
	return []models.Language{{
		Code:      s.fallbackCode,
		Name:      strings.ToUpper(s.fallbackCode),
		IsActive:  true,
		IsDefault: true,
	}}, true
}

func (s *languageService) GetDefaultLanguage(ctx context.Context) (*models.Language, error) {
	return s.languages.GetDefault(ctx)
}

func (s *languageService) CreateLanguage(ctx context.Context, req models.CreateLanguageRequest) (*models.Language, error) {
	code := helper.NormalizeCode(req.Code)
	if code == "" {
		return nil, models.NewValidation("code", "is required")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.NewValidation("name", "is required")
	}

	lang := &models.Language{
		Code:       code,
		Name:       name,
		NativeName: strings.TrimSpace(req.NativeName),
		IsRTL:      req.IsRTL,
		IsActive:   true,
		IsDefault:  req.IsDefault,
	}
	if req.IsActive != nil {
		lang.IsActive = *req.IsActive
	}
	if lang.IsDefault && !lang.IsActive {
		return nil, models.NewValidation("is_active", "the default language must be active")
	}

	_, err := s.languages.GetByCode(ctx, code)
	switch {
	case err == nil:
		return nil, models.NewConflict("language", "code "+code+" is already registered")
	case !models.IsNotFound(err):
		return nil, err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.languages.Create(ctx, lang); err != nil {
			return err
		}
		if lang.IsDefault {
			return s.languages.ClearDefault(ctx, lang.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.events.emit(ctx, languageChangedEvent())
	return lang, nil
}

// UpdateLanguage applies the patch. Flagging a language as default clears the
// flag on every other language in the same transaction.
func (s *languageService) UpdateLanguage(ctx context.Context, id uint, req models.UpdateLanguageRequest) (*models.Language, error) {
	lang, err := s.languages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, models.NewValidation("name", "is required")
		}
		lang.Name = name
	}
	if req.NativeName != nil {
		lang.NativeName = strings.TrimSpace(*req.NativeName)
	}
	if req.IsRTL != nil {
		lang.IsRTL = *req.IsRTL
	}
	if req.IsActive != nil {
		lang.IsActive = *req.IsActive
	}
	if req.IsDefault != nil {
		if !*req.IsDefault && lang.IsDefault {
			return nil, models.NewValidation("is_default", "flag another language as default instead")
		}
		lang.IsDefault = *req.IsDefault
	}
	if lang.IsDefault && !lang.IsActive {
		return nil, models.NewValidation("is_active", "the default language must be active")
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.languages.Update(ctx, lang); err != nil {
			return err
		}
		if lang.IsDefault {
			return s.languages.ClearDefault(ctx, lang.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.events.emit(ctx, languageChangedEvent())
	return lang, nil
}

func (s *languageService) DeleteLanguage(ctx context.Context, id uint) error {
	lang, err := s.languages.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lang.IsDefault {
		return models.NewConflict("language", "the default language cannot be deleted")
	}
	if err := s.languages.Delete(ctx, id); err != nil {
		return err
	}
	s.events.emit(ctx, languageChangedEvent())
	return nil
}

// languageChangedEvent carries no LanguageCode: a registry change can alter the
// sitemap index and any language sitemap, so every cached sitemap is dropped.
func languageChangedEvent() models.ContentEvent {
	return models.ContentEvent{Type: models.EventLanguageChanged}
}
