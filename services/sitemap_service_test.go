package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"galatide/cache"
	"galatide/config"
	"galatide/models"
	"galatide/services/mocks"
	"galatide/testutil"
)

type SitemapServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller
	ctx  context.Context

	languages    *mocks.MockLanguageStore
	articles     *mocks.MockArticleStore
	translations *mocks.MockTranslationStore
	cache        *mocks.MockCache
	service      SitemapService
}

func (s *SitemapServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()

	s.languages = mocks.NewMockLanguageStore(s.ctrl)
	s.articles = mocks.NewMockArticleStore(s.ctrl)
	s.translations = mocks.NewMockTranslationStore(s.ctrl)
	s.cache = mocks.NewMockCache(s.ctrl)

	site := config.SiteConfig{URL: "https://galatide.test", DefaultLanguage: "en"}
	s.service = NewSitemapService(s.languages, s.articles, s.translations, s.cache, site, testutil.DiscardLogger())
}

func (s *SitemapServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSitemapServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SitemapServiceTestSuite))
}

func (s *SitemapServiceTestSuite) TestUnknownLanguageReturnsStaticPages() {
	s.languages.EXPECT().GetByCode(gomock.Any(), "xx").Return(nil, models.NewNotFound("language"))

	entries, degraded := s.service.GenerateLanguageSitemap(s.ctx, "xx")
	s.False(degraded)
	s.Require().Len(entries, 3)
	s.Equal("https://galatide.test/xx", entries[0].URL)
	s.Equal(1.0, entries[0].Priority)
	s.Equal(models.ChangeMonthly, entries[2].ChangeFrequency)
}

func (s *SitemapServiceTestSuite) TestStoreUnavailableDegradesWithoutCaching() {
	s.cache.EXPECT().Get(gomock.Any(), "sitemap:en").Return(nil, cache.ErrCacheMiss)
	s.languages.EXPECT().GetByCode(gomock.Any(), "en").Return(nil, models.ErrorStoreUnavailable{Cause: errors.New("down")})

	body, err := s.service.SitemapXML(s.ctx, "en")
	s.Require().NoError(err)
	s.Contains(string(body), "<loc>https://galatide.test/en/newsletter</loc>")
}

func (s *SitemapServiceTestSuite) TestListingFailureDegrades() {
	s.languages.EXPECT().GetByCode(gomock.Any(), "en").Return(&models.Language{ID: 1, Code: "en", IsActive: true}, nil)
	s.articles.EXPECT().ListPublishedByLanguage(gomock.Any(), uint(1), uint(0)).Return(nil, models.ErrorStoreUnavailable{})

	entries, degraded := s.service.GenerateLanguageSitemap(s.ctx, "en")
	s.True(degraded)
	s.Len(entries, 3)
}

func (s *SitemapServiceTestSuite) TestDefaultLanguageSkipsTranslations() {
	s.languages.EXPECT().GetByCode(gomock.Any(), "en").Return(&models.Language{ID: 1, Code: "en", IsActive: true, IsDefault: true}, nil)
	s.articles.EXPECT().ListPublishedByLanguage(gomock.Any(), uint(1), uint(0)).Return([]models.Article{
		{Slug: "abyssal-station"},
	}, nil)

	entries, degraded := s.service.GenerateLanguageSitemap(s.ctx, "en")
	s.False(degraded)
	s.Require().Len(entries, 4)
	s.Equal("https://galatide.test/en/articles/abyssal-station", entries[3].URL)
}

func (s *SitemapServiceTestSuite) TestContentEntriesAreCached() {
	updated := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	s.cache.EXPECT().Get(gomock.Any(), "sitemap:fr").Return(nil, cache.ErrCacheMiss)
	s.languages.EXPECT().GetByCode(gomock.Any(), "fr").Return(&models.Language{ID: 3, Code: "fr", IsActive: true}, nil)
	s.articles.EXPECT().ListPublishedByLanguage(gomock.Any(), uint(3), uint(0)).Return([]models.Article{
		{Slug: "recif", UpdatedAt: updated},
	}, nil)
	s.translations.EXPECT().ListPublishedByLanguage(gomock.Any(), uint(3), uint(0)).Return([]models.Translation{
		{Slug: "station-abyssale", UpdatedAt: updated},
		{Article: &models.Article{Slug: "tides"}, UpdatedAt: updated},
	}, nil)
	s.cache.EXPECT().Set(gomock.Any(), "sitemap:fr", gomock.Any(), time.Duration(0)).Return(nil)

	body, err := s.service.SitemapXML(s.ctx, "FR")
	s.Require().NoError(err)
	xml := string(body)
	s.Contains(xml, "<loc>https://galatide.test/fr/articles/recif</loc>")
	s.Contains(xml, "<loc>https://galatide.test/fr/articles/station-abyssale</loc>")
	s.Contains(xml, "<loc>https://galatide.test/fr/articles/tides</loc>")
	s.Contains(xml, "<lastmod>2026-02-01T08:00:00Z</lastmod>")
}

func (s *SitemapServiceTestSuite) TestCachedSitemapIsServed() {
	s.cache.EXPECT().Get(gomock.Any(), "sitemap:en").Return([]byte("<urlset/>"), nil)

	body, err := s.service.SitemapXML(s.ctx, "en")
	s.Require().NoError(err)
	s.Equal("<urlset/>", string(body))
}

func (s *SitemapServiceTestSuite) TestIndexDegradesToDefaultLanguage() {
	s.cache.EXPECT().Get(gomock.Any(), "sitemap:index").Return(nil, cache.ErrCacheMiss)
	s.languages.EXPECT().List(gomock.Any(), true).Return(nil, models.ErrorStoreUnavailable{})

	body, err := s.service.SitemapIndexXML(s.ctx)
	s.Require().NoError(err)
	s.Contains(string(body), "<loc>https://galatide.test/sitemaps/en.xml</loc>")
}

func (s *SitemapServiceTestSuite) TestIndexListsActiveLanguages() {
	s.cache.EXPECT().Get(gomock.Any(), "sitemap:index").Return(nil, cache.ErrCacheMiss)
	s.languages.EXPECT().List(gomock.Any(), true).Return([]models.Language{{Code: "en"}, {Code: "fr"}}, nil)
	s.cache.EXPECT().Set(gomock.Any(), "sitemap:index", gomock.Any(), time.Duration(0)).Return(nil)

	body, err := s.service.SitemapIndexXML(s.ctx)
	s.Require().NoError(err)
	s.Contains(string(body), "<loc>https://galatide.test/sitemaps/en.xml</loc>")
	s.Contains(string(body), "<loc>https://galatide.test/sitemaps/fr.xml</loc>")
}

func (s *SitemapServiceTestSuite) TestInvalidator() {
	invalidator := NewSitemapInvalidator(s.cache)

	s.cache.EXPECT().Delete(gomock.Any(), "sitemap:de").Return(nil)
	s.cache.EXPECT().Delete(gomock.Any(), "sitemap:index").Return(nil)
	s.NoError(invalidator.Publish(s.ctx, models.ContentEvent{Type: models.EventTranslationPublished, LanguageCode: "de"}))

	s.cache.EXPECT().DeleteByPrefix(gomock.Any(), "sitemap:").Return(nil)
	s.NoError(invalidator.Publish(s.ctx, models.ContentEvent{Type: models.EventArticleDeleted, LanguageCode: "en"}))

	s.cache.EXPECT().DeleteByPrefix(gomock.Any(), "sitemap:").Return(nil)
	s.NoError(invalidator.Publish(s.ctx, languageChangedEvent()))
}
