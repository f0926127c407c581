package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"galatide/cache"
	"galatide/config"
	"galatide/messaging"
	"galatide/models"
	"galatide/repositories"
	"galatide/testutil"
)

// ContentFlowTestSuite runs the services against real repositories on an
// in-memory sqlite database.
type ContentFlowTestSuite struct {
	suite.Suite
	ctx context.Context

	languageRepo    *repositories.LanguageRepository
	articleRepo     *repositories.ArticleRepository
	translationRepo *repositories.TranslationRepository
	tagRepo         *repositories.TagRepository
	userRepo        *repositories.UserRepository

	languages    LanguageService
	articles     ArticleService
	translations TranslationService
	tags         TagService
	resolver     ContentResolver
	sitemaps     SitemapService
	cache        *cache.MemoryCache
	events       []models.ContentEvent

	en, de, fr *models.Language
	author     models.User
}

func (s *ContentFlowTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.events = nil
	logger := testutil.DiscardLogger()
	conn := repositories.NewStaticConnector(testutil.NewSQLite(s.T()))

	s.languageRepo = repositories.NewLanguageRepository(conn)
	s.articleRepo = repositories.NewArticleRepository(conn)
	s.translationRepo = repositories.NewTranslationRepository(conn)
	s.tagRepo = repositories.NewTagRepository(conn)
	s.userRepo = repositories.NewUserRepository(conn)
	tx := repositories.NewTransactionManager(conn)

	s.cache = cache.NewMemoryCache(time.Hour, 0)
	s.T().Cleanup(func() { _ = s.cache.Close() })

	publisher := messaging.Multi{
		NewSitemapInvalidator(s.cache),
		messaging.PublisherFunc(func(_ context.Context, event models.ContentEvent) error {
			s.events = append(s.events, event)
			return nil
		}),
	}

	site := config.SiteConfig{URL: "https://galatide.test", Name: "Galatide", DefaultLanguage: "en"}
	s.languages = NewLanguageService(s.languageRepo, tx, publisher, "en", logger)
	s.articles = NewArticleService(s.articleRepo, s.translationRepo, s.tagRepo, s.languageRepo, s.userRepo, tx, publisher, logger)
	s.translations = NewTranslationService(s.articleRepo, s.translationRepo, s.languageRepo, publisher, logger)
	s.tags = NewTagService(s.tagRepo, s.languageRepo)
	s.resolver = NewContentResolver(s.languageRepo, s.articleRepo, s.translationRepo, "en")
	s.sitemaps = NewSitemapService(s.languageRepo, s.articleRepo, s.translationRepo, s.cache, site, logger)

	var err error
	s.en, err = s.languages.CreateLanguage(s.ctx, models.CreateLanguageRequest{Code: "en", Name: "English", IsDefault: true})
	s.Require().NoError(err)
	s.de, err = s.languages.CreateLanguage(s.ctx, models.CreateLanguageRequest{Code: "de", Name: "German"})
	s.Require().NoError(err)
	s.fr, err = s.languages.CreateLanguage(s.ctx, models.CreateLanguageRequest{Code: "fr", Name: "French"})
	s.Require().NoError(err)

	s.author = models.User{Name: "Mara", Email: "mara@example.com", Role: models.RoleWriter}
	s.Require().NoError(s.userRepo.Create(s.ctx, &s.author))
	s.events = nil
}

func TestContentFlowTestSuite(t *testing.T) {
	suite.Run(t, new(ContentFlowTestSuite))
}

func (s *ContentFlowTestSuite) publishStation() *models.Article {
	article, err := s.articles.CreateArticle(s.ctx, models.CreateArticleRequest{
		Title:              "Abyssal Station",
		Content:            "<p>Deep below.</p>",
		Status:             models.StatusPublished,
		OriginalLanguageID: s.en.ID,
	}, s.author.ID)
	s.Require().NoError(err)
	s.Require().Equal("abyssal-station", article.Slug)
	return article
}

func (s *ContentFlowTestSuite) TestAbyssalStationScenario() {
	article := s.publishStation()
	translation, err := s.translations.CreateTranslation(s.ctx, article.ID, models.CreateTranslationRequest{
		LanguageID: s.fr.ID,
		Title:      "Station abyssale",
		Slug:       "station-abyssale",
		Status:     models.StatusPublished,
	}, &s.author.ID)
	s.Require().NoError(err)

	got, err := s.resolver.Resolve(s.ctx, "station-abyssale", "fr")
	s.Require().NoError(err)
	s.Equal(article.ID, got.Article.ID)
	s.Require().NotNil(got.Translation)
	s.Equal(translation.ID, got.Translation.ID)

	got, err = s.resolver.Resolve(s.ctx, "abyssal-station", "fr")
	s.Require().NoError(err)
	s.Equal(article.ID, got.Article.ID)
	s.Require().NotNil(got.Translation)
	s.Equal(translation.ID, got.Translation.ID)

	got, err = s.resolver.Resolve(s.ctx, "abyssal-station", "en")
	s.Require().NoError(err)
	s.Equal(article.ID, got.Article.ID)
	s.Nil(got.Translation)

	_, err = s.resolver.Resolve(s.ctx, "abyssal-station", "de")
	s.True(models.IsNotFound(err), "got %v", err)
}

func (s *ContentFlowTestSuite) TestDraftsAreNotResolved() {
	article, err := s.articles.CreateArticle(s.ctx, models.CreateArticleRequest{
		Title:              "Quiet Draft",
		OriginalLanguageID: s.en.ID,
	}, s.author.ID)
	s.Require().NoError(err)
	s.Nil(article.PublishedAt)

	_, err = s.resolver.Resolve(s.ctx, "quiet-draft", "en")
	s.True(models.IsNotFound(err))

	published := s.publishStation()
	_, err = s.translations.CreateTranslation(s.ctx, published.ID, models.CreateTranslationRequest{
		LanguageID: s.de.ID,
		Title:      "Tiefseestation",
	}, nil)
	s.Require().NoError(err)

	_, err = s.resolver.Resolve(s.ctx, "tiefseestation", "de")
	s.True(models.IsNotFound(err))
}

func (s *ContentFlowTestSuite) TestDuplicateTranslationLeavesOneRow() {
	article := s.publishStation()
	req := models.CreateTranslationRequest{LanguageID: s.de.ID, Title: "Tiefseestation"}

	_, err := s.translations.CreateTranslation(s.ctx, article.ID, req, nil)
	s.Require().NoError(err)
	_, err = s.translations.CreateTranslation(s.ctx, article.ID, req, nil)
	s.True(models.IsConflict(err), "got %v", err)

	rows, err := s.translations.ListTranslationsForArticle(s.ctx, article.ID)
	s.Require().NoError(err)
	s.Len(rows, 1)
}

func (s *ContentFlowTestSuite) TestPublishedAtFollowsStatus() {
	article := s.publishStation()
	translation, err := s.translations.CreateTranslation(s.ctx, article.ID, models.CreateTranslationRequest{
		LanguageID: s.de.ID,
		Title:      "Tiefseestation",
	}, nil)
	s.Require().NoError(err)
	s.Nil(translation.PublishedAt)

	published := models.StatusPublished
	updated, err := s.translations.UpdateTranslation(s.ctx, translation.ID, models.UpdateTranslationRequest{Status: &published})
	s.Require().NoError(err)
	s.Require().NotNil(updated.PublishedAt)

	stored, err := s.translations.GetTranslation(s.ctx, translation.ID)
	s.Require().NoError(err)
	s.NotNil(stored.PublishedAt)

	draft := models.StatusDraft
	updated, err = s.translations.UpdateTranslation(s.ctx, translation.ID, models.UpdateTranslationRequest{Status: &draft})
	s.Require().NoError(err)
	s.Nil(updated.PublishedAt)

	stored, err = s.translations.GetTranslation(s.ctx, translation.ID)
	s.Require().NoError(err)
	s.Nil(stored.PublishedAt)
}

func (s *ContentFlowTestSuite) TestAvailableLanguages() {
	article := s.publishStation()

	available, err := s.translations.ListAvailableLanguagesForArticle(s.ctx, article.ID)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"de", "fr"}, codesOf(available))

	_, err = s.translations.CreateTranslation(s.ctx, article.ID, models.CreateTranslationRequest{
		LanguageID: s.fr.ID,
		Title:      "Station abyssale",
	}, nil)
	s.Require().NoError(err)

	first, err := s.translations.ListAvailableLanguagesForArticle(s.ctx, article.ID)
	s.Require().NoError(err)
	second, err := s.translations.ListAvailableLanguagesForArticle(s.ctx, article.ID)
	s.Require().NoError(err)
	s.Equal([]string{"de"}, codesOf(first))
	s.Equal(first, second)
}

func (s *ContentFlowTestSuite) TestTranslationInOriginalLanguageIsRejected() {
	article := s.publishStation()
	_, err := s.translations.CreateTranslation(s.ctx, article.ID, models.CreateTranslationRequest{
		LanguageID: s.en.ID,
		Title:      "Abyssal Station again",
	}, nil)
	s.True(models.IsValidation(err))
}

func (s *ContentFlowTestSuite) TestDeleteArticleRemovesTranslations() {
	article := s.publishStation()
	translation, err := s.translations.CreateTranslation(s.ctx, article.ID, models.CreateTranslationRequest{
		LanguageID: s.de.ID,
		Title:      "Tiefseestation",
		Status:     models.StatusPublished,
	}, nil)
	s.Require().NoError(err)

	s.Require().NoError(s.articles.DeleteArticle(s.ctx, article.ID))

	_, err = s.translations.GetTranslation(s.ctx, translation.ID)
	s.True(models.IsNotFound(err))
	s.Equal(models.EventArticleDeleted, s.events[len(s.events)-1].Type)
}

func (s *ContentFlowTestSuite) TestListPublishedMergesOriginalsAndTranslations() {
	tag, err := s.tags.CreateTag(s.ctx, models.CreateTagRequest{Name: "Deep Sea"})
	s.Require().NoError(err)

	station, err := s.articles.CreateArticle(s.ctx, models.CreateArticleRequest{
		Title:              "Abyssal Station",
		Status:             models.StatusPublished,
		OriginalLanguageID: s.en.ID,
		TagIDs:             []uint{tag.ID},
	}, s.author.ID)
	s.Require().NoError(err)
	_, err = s.articles.CreateArticle(s.ctx, models.CreateArticleRequest{
		Title:              "Reef Notes",
		Status:             models.StatusPublished,
		OriginalLanguageID: s.de.ID,
	}, s.author.ID)
	s.Require().NoError(err)
	_, err = s.translations.CreateTranslation(s.ctx, station.ID, models.CreateTranslationRequest{
		LanguageID: s.de.ID,
		Title:      "Tiefseestation",
		Status:     models.StatusPublished,
	}, nil)
	s.Require().NoError(err)

	items, total, err := s.articles.ListPublished(s.ctx, "de", models.PublicListParams{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Len(items, 2)

	items, total, err = s.articles.ListPublished(s.ctx, "de", models.PublicListParams{Tag: "deep-sea", Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(items, 1)
	s.Equal("tiefseestation", items[0].Slug)
	s.Require().NotNil(items[0].TranslationID)
	s.Require().Len(items[0].Tags, 1)

	items, total, err = s.articles.ListPublished(s.ctx, "de", models.PublicListParams{Tag: "unknown", Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Zero(total)
	s.Empty(items)
}

func (s *ContentFlowTestSuite) TestSitemapForUnknownLanguage() {
	entries, degraded := s.sitemaps.GenerateLanguageSitemap(s.ctx, "xx")
	s.False(degraded)
	s.Require().Len(entries, 3)
	s.Equal("https://galatide.test/xx", entries[0].URL)
	s.Equal("https://galatide.test/xx/articles", entries[1].URL)
	s.Equal("https://galatide.test/xx/newsletter", entries[2].URL)
}

func (s *ContentFlowTestSuite) TestSitemapCacheIsInvalidatedOnPublish() {
	body, err := s.sitemaps.SitemapXML(s.ctx, "en")
	s.Require().NoError(err)
	s.NotContains(string(body), "abyssal-station")

	_, err = s.cache.Get(s.ctx, sitemapKeyPrefix+"en")
	s.Require().NoError(err)

	s.publishStation()

	_, err = s.cache.Get(s.ctx, sitemapKeyPrefix+"en")
	s.ErrorIs(err, cache.ErrCacheMiss)

	body, err = s.sitemaps.SitemapXML(s.ctx, "en")
	s.Require().NoError(err)
	s.Contains(string(body), "https://galatide.test/en/articles/abyssal-station")
}

func (s *ContentFlowTestSuite) TestSitemapIndexFollowsLanguageRegistry() {
	body, err := s.sitemaps.SitemapIndexXML(s.ctx)
	s.Require().NoError(err)
	s.NotContains(string(body), "/sitemaps/it.xml")

	it, err := s.languages.CreateLanguage(s.ctx, models.CreateLanguageRequest{Code: "it", Name: "Italian"})
	s.Require().NoError(err)
	s.Equal(models.EventLanguageChanged, s.events[len(s.events)-1].Type)

	body, err = s.sitemaps.SitemapIndexXML(s.ctx)
	s.Require().NoError(err)
	s.Contains(string(body), "https://galatide.test/sitemaps/it.xml")

	inactive := false
	_, err = s.languages.UpdateLanguage(s.ctx, s.fr.ID, models.UpdateLanguageRequest{IsActive: &inactive})
	s.Require().NoError(err)

	body, err = s.sitemaps.SitemapIndexXML(s.ctx)
	s.Require().NoError(err)
	s.NotContains(string(body), "/sitemaps/fr.xml")

	s.Require().NoError(s.languages.DeleteLanguage(s.ctx, it.ID))

	body, err = s.sitemaps.SitemapIndexXML(s.ctx)
	s.Require().NoError(err)
	s.NotContains(string(body), "/sitemaps/it.xml")
}

func (s *ContentFlowTestSuite) TestActivatingLanguageRefreshesItsSitemap() {
	inactive, active := false, true
	_, err := s.languages.UpdateLanguage(s.ctx, s.fr.ID, models.UpdateLanguageRequest{IsActive: &inactive})
	s.Require().NoError(err)
	_, err = s.articles.CreateArticle(s.ctx, models.CreateArticleRequest{
		Title:              "Station abyssale",
		Status:             models.StatusPublished,
		OriginalLanguageID: s.fr.ID,
	}, s.author.ID)
	s.Require().NoError(err)

	body, err := s.sitemaps.SitemapXML(s.ctx, "fr")
	s.Require().NoError(err)
	s.NotContains(string(body), "station-abyssale")

	_, err = s.languages.UpdateLanguage(s.ctx, s.fr.ID, models.UpdateLanguageRequest{IsActive: &active})
	s.Require().NoError(err)

	body, err = s.sitemaps.SitemapXML(s.ctx, "fr")
	s.Require().NoError(err)
	s.Contains(string(body), "https://galatide.test/fr/articles/station-abyssale")
}

func (s *ContentFlowTestSuite) TestDefaultLanguageListsOriginalsOnly() {
	article, err := s.articles.CreateArticle(s.ctx, models.CreateArticleRequest{
		Title:              "Station abyssale",
		Status:             models.StatusPublished,
		OriginalLanguageID: s.fr.ID,
	}, s.author.ID)
	s.Require().NoError(err)
	_, err = s.translations.CreateTranslation(s.ctx, article.ID, models.CreateTranslationRequest{
		LanguageID: s.en.ID,
		Title:      "Deep Station",
		Status:     models.StatusPublished,
	}, nil)
	s.Require().NoError(err)

	_, err = s.resolver.Resolve(s.ctx, "deep-station", "en")
	s.True(models.IsNotFound(err))

	items, total, err := s.articles.ListPublished(s.ctx, "en", models.PublicListParams{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Zero(total)
	s.Empty(items)

	entries, degraded := s.sitemaps.GenerateLanguageSitemap(s.ctx, "en")
	s.False(degraded)
	s.Len(entries, 3)

	items, total, err = s.articles.ListPublished(s.ctx, "fr", models.PublicListParams{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal("station-abyssale", items[0].Slug)
}

func (s *ContentFlowTestSuite) TestTagLocalization() {
	tag, err := s.tags.CreateTag(s.ctx, models.CreateTagRequest{Name: "Deep Sea", Color: "#112233"})
	s.Require().NoError(err)
	_, err = s.tags.UpsertTagTranslation(s.ctx, tag.ID, "DE", models.TagTranslationRequest{Name: "Tiefsee"})
	s.Require().NoError(err)

	de, err := s.tags.ListTagsForLanguage(s.ctx, "de")
	s.Require().NoError(err)
	s.Require().Len(de, 1)
	s.Equal("Tiefsee", de[0].Name)
	s.Equal("Deep Sea", de[0].OriginalName)
	s.True(de[0].HasTranslation)

	fr, err := s.tags.ListTagsForLanguage(s.ctx, "fr")
	s.Require().NoError(err)
	s.Require().Len(fr, 1)
	s.Equal("Deep Sea", fr[0].Name)
	s.False(fr[0].HasTranslation)

	_, err = s.tags.CreateTag(s.ctx, models.CreateTagRequest{Name: "deep sea"})
	s.True(models.IsConflict(err), "got %v", err)
}

func codesOf(langs []models.Language) []string {
	codes := make([]string, 0, len(langs))
	for _, l := range langs {
		codes = append(codes, l.Code)
	}
	return codes
}
