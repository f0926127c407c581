package services

import (
	"context"
	"regexp"
	"strings"

	"galatide/helper"
	"galatide/models"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type TagService interface {
	CreateTag(ctx context.Context, req models.CreateTagRequest) (*models.Tag, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	ListTagsForLanguage(ctx context.Context, languageCode string) ([]models.LocalizedTag, error)
	UpsertTagTranslation(ctx context.Context, tagID uint, languageCode string, req models.TagTranslationRequest) (*models.TagTranslation, error)
	DeleteTagTranslation(ctx context.Context, tagID uint, languageCode string) error
}

type tagService struct {
	tags      TagStore
	languages LanguageStore
}

func NewTagService(tags TagStore, languages LanguageStore) TagService {
	return &tagService{
		tags:      tags,
		languages: languages,
	}
}

func (s *tagService) CreateTag(ctx context.Context, req models.CreateTagRequest) (*models.Tag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.NewValidation("name", "is required")
	}
	slug := helper.Slugify(name)
	if slug == "" {
		return nil, models.NewValidation("name", "must contain letters or digits")
	}

	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = models.DefaultTagColor
	}
	if !hexColor.MatchString(color) {
		return nil, models.NewValidation("color", "must be a hex color")
	}

	exists, err := s.tags.ExistsByNameOrSlug(ctx, name, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConflict("tag", "a tag named "+name+" already exists")
	}

	tag := &models.Tag{Name: name, Slug: slug, Color: color}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tags.List(ctx)
}

// ListTagsForLanguage returns every tag named in languageCode where a
// translation exists, and by its canonical name otherwise.
func (s *tagService) ListTagsForLanguage(ctx context.Context, languageCode string) ([]models.LocalizedTag, error) {
	code := helper.NormalizeCode(languageCode)

	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, err
	}
	translations, err := s.tags.ListTranslations(ctx, code)
	if err != nil {
		return nil, err
	}

	names := make(map[uint]string, len(translations))
	for _, t := range translations {
		names[t.TagID] = t.Name
	}

	localized := make([]models.LocalizedTag, 0, len(tags))
	for _, tag := range tags {
		item := models.LocalizedTag{
			ID:           tag.ID,
			Name:         tag.Name,
			OriginalName: tag.Name,
			Slug:         tag.Slug,
			Color:        tag.Color,
		}
		if name, ok := names[tag.ID]; ok {
			item.Name = name
			item.HasTranslation = true
		}
		localized = append(localized, item)
	}
	return localized, nil
}

func (s *tagService) UpsertTagTranslation(ctx context.Context, tagID uint, languageCode string, req models.TagTranslationRequest) (*models.TagTranslation, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.NewValidation("name", "is required")
	}

	if _, err := s.tags.GetByID(ctx, tagID); err != nil {
		return nil, err
	}
	lang, err := s.languages.GetByCode(ctx, helper.NormalizeCode(languageCode))
	if err != nil {
		return nil, err
	}

	translation := &models.TagTranslation{
		TagID:        tagID,
		LanguageCode: lang.Code,
		Name:         name,
	}
	if err := s.tags.UpsertTranslation(ctx, translation); err != nil {
		return nil, err
	}
	return translation, nil
}

func (s *tagService) DeleteTagTranslation(ctx context.Context, tagID uint, languageCode string) error {
	return s.tags.DeleteTranslation(ctx, tagID, helper.NormalizeCode(languageCode))
}
