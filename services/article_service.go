package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"galatide/helper"
	"galatide/models"
)

type ArticleService interface {
	CreateArticle(ctx context.Context, req models.CreateArticleRequest, authorID uint) (*models.Article, error)
	GetArticle(ctx context.Context, id uint) (*models.Article, error)
	ListArticles(ctx context.Context, params models.ArticleListParams) ([]models.Article, int64, error)
	UpdateArticle(ctx context.Context, id uint, req models.UpdateArticleRequest) (*models.Article, error)
	DeleteArticle(ctx context.Context, id uint) error
	ListPublished(ctx context.Context, languageCode string, params models.PublicListParams) ([]models.ContentSummary, int64, error)
}

type articleService struct {
	articles     ArticleStore
	translations TranslationStore
	tags         TagStore
	languages    LanguageStore
	users        UserStore
	tx           TransactionManager
	events       eventSink
	now          func() time.Time
}

func NewArticleService(
	articles ArticleStore,
	translations TranslationStore,
	tags TagStore,
	languages LanguageStore,
	users UserStore,
	tx TransactionManager,
	publisher EventPublisher,
	logger *slog.Logger,
) ArticleService {
	return &articleService{
		articles:     articles,
		translations: translations,
		tags:         tags,
		languages:    languages,
		users:        users,
		tx:           tx,
		events:       eventSink{publisher: publisher, logger: logger},
		now:          time.Now,
	}
}

// CreateArticle inserts the article and links its tags in one transaction.
func (s *articleService) CreateArticle(ctx context.Context, req models.CreateArticleRequest, authorID uint) (*models.Article, error) {
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

	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewValidation("author_id", "unknown author")
		}
		return nil, err
	}
	lang, err := s.languages.GetByID(ctx, req.OriginalLanguageID)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewValidation("original_language_id", "unknown language")
		}
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, slug, lang.ID, 0); err != nil {
		return nil, err
	}
	tagIDs, err := s.checkTags(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		Title:              title,
		Slug:               slug,
		Excerpt:            strings.TrimSpace(req.Excerpt),
		Content:            sanitizeContent(req.Content),
		CoverURL:           req.CoverURL,
		AuthorID:           authorID,
		OriginalLanguageID: lang.ID,
		MetaTitle:          req.MetaTitle,
		MetaDescription:    req.MetaDescription,
		Keywords:           req.Keywords,
	}
	article.ApplyStatus(status, s.now())

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.articles.Create(ctx, article); err != nil {
			return err
		}
		return s.articles.ReplaceTags(ctx, article.ID, tagIDs)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.articles.GetByID(ctx, article.ID)
	if err != nil {
		return nil, err
	}
	if created.IsPublished() {
		s.events.emit(ctx, articleEvent(models.EventArticlePublished, created, lang.Code))
	}
	return created, nil
}

func (s *articleService) GetArticle(ctx context.Context, id uint) (*models.Article, error) {
	return s.articles.GetByID(ctx, id)
}

func (s *articleService) ListArticles(ctx context.Context, params models.ArticleListParams) ([]models.Article, int64, error) {
	params.Page, params.Limit = helper.NormalizePaging(params.Page, params.Limit)
	if params.Status != "" && !models.ContentStatus(params.Status).Valid() {
		return nil, 0, models.NewValidation("status", "must be DRAFT or PUBLISHED")
	}
	return s.articles.List(ctx, params)
}

func (s *articleService) UpdateArticle(ctx context.Context, id uint, req models.UpdateArticleRequest) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := article.Status

	if req.Title != nil {
		title, err := requireTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		article.Title = title
	}
	if req.Slug != nil {
		slug, err := resolveSlug(*req.Slug, article.Title)
		if err != nil {
			return nil, err
		}
		if slug != article.Slug {
			if err := s.ensureSlugFree(ctx, slug, article.OriginalLanguageID, article.ID); err != nil {
				return nil, err
			}
		}
		article.Slug = slug
	}
	if req.Excerpt != nil {
		article.Excerpt = strings.TrimSpace(*req.Excerpt)
	}
	if req.Content != nil {
		article.Content = sanitizeContent(*req.Content)
	}
	if req.CoverURL != nil {
		article.CoverURL = *req.CoverURL
	}
	if req.MetaTitle != nil {
		article.MetaTitle = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		article.MetaDescription = *req.MetaDescription
	}
	if req.Keywords != nil {
		article.Keywords = *req.Keywords
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, models.NewValidation("status", "must be DRAFT or PUBLISHED")
		}
		article.ApplyStatus(*req.Status, s.now())
	}

	var tagIDs []uint
	if req.TagIDs != nil {
		if tagIDs, err = s.checkTags(ctx, *req.TagIDs); err != nil {
			return nil, err
		}
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.articles.Update(ctx, article); err != nil {
			return err
		}
		if req.TagIDs != nil {
			return s.articles.ReplaceTags(ctx, article.ID, tagIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if eventType := statusEvent(before, updated.Status, models.EventArticlePublished, models.EventArticleUnpublished); eventType != "" {
		s.events.emit(ctx, articleEvent(eventType, updated, ""))
	}
	return updated, nil
}

// DeleteArticle removes the article, its translations and its tag links in
// one transaction.
func (s *articleService) DeleteArticle(ctx context.Context, id uint) error {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.articles.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.events.emit(ctx, articleEvent(models.EventArticleDeleted, article, ""))
	return nil
}

// ListPublished lists what a reader of languageCode can open: published
// originals written in it and published translations into it, newest first.
// The default language lists originals only.
func (s *articleService) ListPublished(ctx context.Context, languageCode string, params models.PublicListParams) ([]models.ContentSummary, int64, error) {
	page, limit := helper.NormalizePaging(params.Page, params.Limit)

	lang, err := s.languages.GetByCode(ctx, helper.NormalizeCode(languageCode))
	if err != nil {
		return nil, 0, err
	}

	var tagID uint
	if tagSlug := strings.TrimSpace(params.Tag); tagSlug != "" {
		tag, err := s.tags.GetBySlug(ctx, tagSlug)
		if err != nil {
			if models.IsNotFound(err) {
				return []models.ContentSummary{}, 0, nil
			}
			return nil, 0, err
		}
		tagID = tag.ID
	}

	originals, err := s.articles.ListPublishedByLanguage(ctx, lang.ID, tagID)
	if err != nil {
		return nil, 0, err
	}
	var translated []models.Translation
	if !lang.IsDefault {
		translated, err = s.translations.ListPublishedByLanguage(ctx, lang.ID, tagID)
		if err != nil {
			return nil, 0, err
		}
	}

	items := make([]models.ContentSummary, 0, len(originals)+len(translated))
	for _, a := range originals {
		items = append(items, models.ContentSummary{
			ArticleID:    a.ID,
			LanguageCode: lang.Code,
			Title:        a.Title,
			Slug:         a.Slug,
			Excerpt:      a.Excerpt,
			CoverURL:     a.CoverURL,
			PublishedAt:  a.PublishedAt,
			Tags:         a.Tags,
		})
	}
	for _, t := range translated {
		id := t.ID
		item := models.ContentSummary{
			ArticleID:     t.ArticleID,
			TranslationID: &id,
			LanguageCode:  lang.Code,
			Title:         t.Title,
			Slug:          t.Slug,
			Excerpt:       t.Excerpt,
			PublishedAt:   t.PublishedAt,
			Tags:          []models.Tag{},
		}
		if t.Article != nil {
			item.CoverURL = t.Article.CoverURL
			item.Tags = t.Article.Tags
			if item.Slug == "" {
				item.Slug = t.Article.Slug
			}
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return publishedAfter(items[i].PublishedAt, items[j].PublishedAt)
	})

	total := int64(len(items))
	start := (page - 1) * limit
	if start >= len(items) {
		return []models.ContentSummary{}, total, nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total, nil
}

func (s *articleService) ensureSlugFree(ctx context.Context, slug string, languageID, excludeID uint) error {
	taken, err := s.articles.SlugTaken(ctx, slug, languageID, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return models.NewConflict("article", "slug "+slug+" is already used in this language")
	}
	return nil
}

// checkTags dedupes ids and verifies that every tag exists.
func (s *articleService) checkTags(ctx context.Context, ids []uint) ([]uint, error) {
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return unique, nil
	}

	found, err := s.tags.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(found) != len(unique) {
		return nil, models.NewValidation("tag_ids", "contains an unknown tag")
	}
	return unique, nil
}

func publishedAfter(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.After(*b)
	}
}

func articleEvent(eventType models.EventType, a *models.Article, languageCode string) models.ContentEvent {
	event := models.ContentEvent{
		Type:         eventType,
		ArticleID:    a.ID,
		LanguageCode: languageCode,
		Slug:         a.Slug,
	}
	if event.LanguageCode == "" && a.OriginalLanguage != nil {
		event.LanguageCode = a.OriginalLanguage.Code
	}
	return event
}
