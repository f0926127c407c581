package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"galatide/config"
	"galatide/helper"
	"galatide/models"
)

// SeedResult counts the records a seed run created. Existing records are
// left untouched, so running a seed twice creates nothing the second time.
type SeedResult struct {
	Languages       int
	Users           int
	Tags            int
	TagTranslations int
}

type SeedService struct {
	languageStore LanguageStore
	users         UserStore
	tagStore      TagStore
	languages     LanguageService
	tags          TagService
	logger        *slog.Logger
}

func NewSeedService(languageStore LanguageStore, users UserStore, tagStore TagStore, languages LanguageService, tags TagService, logger *slog.Logger) *SeedService {
	return &SeedService{
		languageStore: languageStore,
		users:         users,
		tagStore:      tagStore,
		languages:     languages,
		tags:          tags,
		logger:        logger,
	}
}

func (s *SeedService) Seed(ctx context.Context, seed *config.SeedFile) (SeedResult, error) {
	var result SeedResult

	for _, l := range seed.Languages {
		code := helper.NormalizeCode(l.Code)
		if _, err := s.languageStore.GetByCode(ctx, code); err == nil {
			continue
		} else if !models.IsNotFound(err) {
			return result, err
		}

		active := !l.Inactive
		_, err := s.languages.CreateLanguage(ctx, models.CreateLanguageRequest{
			Code:       code,
			Name:       l.Name,
			NativeName: l.NativeName,
			IsRTL:      l.RTL,
			IsActive:   &active,
			IsDefault:  l.Default,
		})
		if err != nil {
			return result, fmt.Errorf("seed language %s: %w", code, err)
		}
		result.Languages++
	}

	for _, u := range seed.Users {
		email := strings.ToLower(strings.TrimSpace(u.Email))
		if _, err := s.users.GetByEmail(ctx, email); err == nil {
			continue
		} else if !models.IsNotFound(err) {
			return result, err
		}

		role := models.UserRole(strings.ToLower(u.Role))
		if role == "" {
			role = models.RoleWriter
		}
		user := &models.User{Name: u.Name, Email: email, Role: role}
		if err := s.users.Create(ctx, user); err != nil {
			return result, fmt.Errorf("seed user %s: %w", email, err)
		}
		result.Users++
	}

	for _, t := range seed.Tags {
		tag, err := s.tagStore.GetBySlug(ctx, helper.Slugify(t.Name))
		switch {
		case err == nil:
		case models.IsNotFound(err):
			tag, err = s.tags.CreateTag(ctx, models.CreateTagRequest{Name: t.Name, Color: t.Color})
			if err != nil {
				return result, fmt.Errorf("seed tag %s: %w", t.Name, err)
			}
			result.Tags++
		default:
			return result, err
		}

		codes := make([]string, 0, len(t.Translations))
		for code := range t.Translations {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			_, err := s.tags.UpsertTagTranslation(ctx, tag.ID, code, models.TagTranslationRequest{Name: t.Translations[code]})
			if err != nil {
				return result, fmt.Errorf("seed tag %s translation %s: %w", t.Name, code, err)
			}
			result.TagTranslations++
		}
	}

	s.logger.Info("seed applied",
		"languages", result.Languages,
		"users", result.Users,
		"tags", result.Tags,
		"tag_translations", result.TagTranslations,
	)
	return result, nil
}
