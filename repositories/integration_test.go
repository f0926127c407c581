//go:build integration

package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"galatide/config"
	"galatide/models"
	"galatide/repositories"
	"galatide/testutil"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *config.Database

	languages    *repositories.LanguageRepository
	users        *repositories.UserRepository
	articles     *repositories.ArticleRepository
	translations *repositories.TranslationRepository
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("galatide_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db = config.NewDatabase(config.DatabaseConfig{
		Driver:          "postgres",
		DSN:             connStr,
		ConnectAttempts: 3,
		InitialBackoff:  100 * time.Millisecond,
		RetryCooldown:   time.Second,
	}, testutil.DiscardLogger())
	s.db.OnConnect = repositories.Migrate
	s.Require().NoError(s.db.Connect(s.ctx))

	s.languages = repositories.NewLanguageRepository(s.db)
	s.users = repositories.NewUserRepository(s.db)
	s.articles = repositories.NewArticleRepository(s.db)
	s.translations = repositories.NewTranslationRepository(s.db)
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	conn, err := s.db.Conn(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(conn.Exec(
		"TRUNCATE article_tags, article_translations, articles, tag_translations, tags, users, languages RESTART IDENTITY CASCADE",
	).Error)
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) TestResolveLookups() {
	en := models.Language{Code: "en", Name: "English", IsActive: true, IsDefault: true}
	de := models.Language{Code: "de", Name: "Deutsch", IsActive: true}
	s.Require().NoError(s.languages.Create(s.ctx, &en))
	s.Require().NoError(s.languages.Create(s.ctx, &de))

	author := models.User{Name: "Mara", Email: "mara@example.com", Role: models.RoleWriter}
	s.Require().NoError(s.users.Create(s.ctx, &author))

	article := models.Article{Title: "Abyssal Station", Slug: "abyssal-station", AuthorID: author.ID, OriginalLanguageID: en.ID}
	article.ApplyStatus(models.StatusPublished, time.Now())
	s.Require().NoError(s.articles.Create(s.ctx, &article))

	_, err := s.articles.FindPublishedBySlug(s.ctx, "abyssal-station", "de")
	s.True(models.IsNotFound(err))

	translation := models.Translation{ArticleID: article.ID, LanguageID: de.ID, Title: "Abyssal-Station", Slug: "abyssal-station-de"}
	translation.ApplyStatus(models.StatusPublished, time.Now())
	s.Require().NoError(s.translations.Create(s.ctx, &translation))

	got, err := s.translations.FindPublishedBySlug(s.ctx, "abyssal-station", "de")
	s.Require().NoError(err)
	s.Equal(translation.ID, got.ID)
}

func (s *PostgresIntegrationSuite) TestDuplicateTranslationIsConflict() {
	en := models.Language{Code: "en", Name: "English", IsActive: true, IsDefault: true}
	de := models.Language{Code: "de", Name: "Deutsch", IsActive: true}
	s.Require().NoError(s.languages.Create(s.ctx, &en))
	s.Require().NoError(s.languages.Create(s.ctx, &de))
	author := models.User{Name: "Mara", Email: "mara@example.com", Role: models.RoleWriter}
	s.Require().NoError(s.users.Create(s.ctx, &author))

	article := models.Article{Title: "Tides", Slug: "tides", AuthorID: author.ID, OriginalLanguageID: en.ID, Status: models.StatusDraft}
	s.Require().NoError(s.articles.Create(s.ctx, &article))

	first := models.Translation{ArticleID: article.ID, LanguageID: de.ID, Title: "Gezeiten", Slug: "gezeiten", Status: models.StatusDraft}
	s.Require().NoError(s.translations.Create(s.ctx, &first))
	second := models.Translation{ArticleID: article.ID, LanguageID: de.ID, Title: "Ebbe", Slug: "ebbe", Status: models.StatusDraft}
	err := s.translations.Create(s.ctx, &second)
	s.True(models.IsConflict(err), "got %v", err)
}

func (s *PostgresIntegrationSuite) TestLanguageStillReferencedIsConflict() {
	en := models.Language{Code: "en", Name: "English", IsActive: true, IsDefault: true}
	s.Require().NoError(s.languages.Create(s.ctx, &en))
	author := models.User{Name: "Mara", Email: "mara@example.com", Role: models.RoleWriter}
	s.Require().NoError(s.users.Create(s.ctx, &author))
	article := models.Article{Title: "Tides", Slug: "tides", AuthorID: author.ID, OriginalLanguageID: en.ID, Status: models.StatusDraft}
	s.Require().NoError(s.articles.Create(s.ctx, &article))

	err := s.languages.Delete(s.ctx, en.ID)
	s.True(models.IsConflict(err), "got %v", err)
}
