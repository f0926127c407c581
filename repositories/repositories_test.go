package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"galatide/models"
	"galatide/repositories"
	"galatide/testutil"
)

type RepositoryTestSuite struct {
	suite.Suite
	ctx context.Context

	languages    *repositories.LanguageRepository
	users        *repositories.UserRepository
	articles     *repositories.ArticleRepository
	translations *repositories.TranslationRepository
	tags         *repositories.TagRepository
	tx           *repositories.TransactionManager

	en, de, fr models.Language
	author     models.User
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	conn := repositories.NewStaticConnector(testutil.NewSQLite(s.T()))

	s.languages = repositories.NewLanguageRepository(conn)
	s.users = repositories.NewUserRepository(conn)
	s.articles = repositories.NewArticleRepository(conn)
	s.translations = repositories.NewTranslationRepository(conn)
	s.tags = repositories.NewTagRepository(conn)
	s.tx = repositories.NewTransactionManager(conn)

	s.en = s.createLanguage("en", true)
	s.de = s.createLanguage("de", false)
	s.fr = s.createLanguage("fr", false)

	s.author = models.User{Name: "Mara", Email: "mara@example.com", Role: models.RoleWriter}
	s.Require().NoError(s.users.Create(s.ctx, &s.author))
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) createLanguage(code string, isDefault bool) models.Language {
	lang := models.Language{Code: code, Name: code, IsActive: true, IsDefault: isDefault}
	s.Require().NoError(s.languages.Create(s.ctx, &lang))
	return lang
}

func (s *RepositoryTestSuite) createArticle(slug string, lang models.Language, status models.ContentStatus) models.Article {
	article := models.Article{
		Title:              slug,
		Slug:               slug,
		AuthorID:           s.author.ID,
		OriginalLanguageID: lang.ID,
	}
	article.ApplyStatus(status, time.Now())
	s.Require().NoError(s.articles.Create(s.ctx, &article))
	return article
}

func (s *RepositoryTestSuite) createTranslation(articleID uint, lang models.Language, slug string, status models.ContentStatus) models.Translation {
	translation := models.Translation{
		ArticleID:  articleID,
		LanguageID: lang.ID,
		Title:      slug,
		Slug:       slug,
	}
	translation.ApplyStatus(status, time.Now())
	s.Require().NoError(s.translations.Create(s.ctx, &translation))
	return translation
}

func (s *RepositoryTestSuite) TestLanguage_ListPutsDefaultFirst() {
	langs, err := s.languages.List(s.ctx, true)
	s.Require().NoError(err)
	s.Require().Len(langs, 3)
	s.Equal("en", langs[0].Code)
	s.Equal("de", langs[1].Code)
}

func (s *RepositoryTestSuite) TestLanguage_ListActiveOnly() {
	s.fr.IsActive = false
	s.Require().NoError(s.languages.Update(s.ctx, &s.fr))

	active, err := s.languages.List(s.ctx, true)
	s.Require().NoError(err)
	s.Len(active, 2)

	all, err := s.languages.List(s.ctx, false)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *RepositoryTestSuite) TestLanguage_DuplicateCodeIsConflict() {
	dup := models.Language{Code: "de", Name: "Deutsch", IsActive: true}
	err := s.languages.Create(s.ctx, &dup)
	s.True(models.IsConflict(err), "got %v", err)
}

func (s *RepositoryTestSuite) TestLanguage_ClearDefault() {
	s.de.IsDefault = true
	s.Require().NoError(s.languages.Update(s.ctx, &s.de))
	s.Require().NoError(s.languages.ClearDefault(s.ctx, s.de.ID))

	def, err := s.languages.GetDefault(s.ctx)
	s.Require().NoError(err)
	s.Equal("de", def.Code)

	en, err := s.languages.GetByCode(s.ctx, "en")
	s.Require().NoError(err)
	s.False(en.IsDefault)
}

func (s *RepositoryTestSuite) TestLanguage_DeleteUnknownIsNotFound() {
	err := s.languages.Delete(s.ctx, 9999)
	s.True(models.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestUser_GetByEmail() {
	user, err := s.users.GetByEmail(s.ctx, "mara@example.com")
	s.Require().NoError(err)
	s.Equal(s.author.ID, user.ID)

	_, err = s.users.GetByEmail(s.ctx, "nobody@example.com")
	s.True(models.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestArticle_GetByIDLoadsRelations() {
	article := s.createArticle("abyssal-station", s.en, models.StatusPublished)
	tag := models.Tag{Name: "Ocean", Slug: "ocean", Color: "#0000ff"}
	s.Require().NoError(s.tags.Create(s.ctx, &tag))
	s.Require().NoError(s.articles.ReplaceTags(s.ctx, article.ID, []uint{tag.ID, tag.ID}))

	got, err := s.articles.GetByID(s.ctx, article.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.Author)
	s.Equal("Mara", got.Author.Name)
	s.Require().NotNil(got.OriginalLanguage)
	s.Equal("en", got.OriginalLanguage.Code)
	s.Require().Len(got.Tags, 1)
	s.Equal("ocean", got.Tags[0].Slug)
	s.NotNil(got.PublishedAt)
}

func (s *RepositoryTestSuite) TestArticle_GetByIDUnknownIsNotFound() {
	_, err := s.articles.GetByID(s.ctx, 4242)
	s.True(models.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestArticle_SlugUniquePerLanguage() {
	s.createArticle("tides", s.en, models.StatusDraft)

	dup := models.Article{Title: "Tides", Slug: "tides", AuthorID: s.author.ID, OriginalLanguageID: s.en.ID, Status: models.StatusDraft}
	err := s.articles.Create(s.ctx, &dup)
	s.True(models.IsConflict(err), "got %v", err)

	other := models.Article{Title: "Tides", Slug: "tides", AuthorID: s.author.ID, OriginalLanguageID: s.de.ID, Status: models.StatusDraft}
	s.NoError(s.articles.Create(s.ctx, &other))
}

func (s *RepositoryTestSuite) TestArticle_SlugTaken() {
	article := s.createArticle("tides", s.en, models.StatusDraft)

	taken, err := s.articles.SlugTaken(s.ctx, "tides", s.en.ID, 0)
	s.Require().NoError(err)
	s.True(taken)

	taken, err = s.articles.SlugTaken(s.ctx, "tides", s.en.ID, article.ID)
	s.Require().NoError(err)
	s.False(taken)

	taken, err = s.articles.SlugTaken(s.ctx, "tides", s.de.ID, 0)
	s.Require().NoError(err)
	s.False(taken)
}

func (s *RepositoryTestSuite) TestArticle_FindPublishedBySlug() {
	s.createArticle("abyssal-station", s.en, models.StatusPublished)
	s.createArticle("draft-piece", s.en, models.StatusDraft)

	got, err := s.articles.FindPublishedBySlug(s.ctx, "abyssal-station", "")
	s.Require().NoError(err)
	s.Equal("abyssal-station", got.Slug)

	got, err = s.articles.FindPublishedBySlug(s.ctx, "abyssal-station", "en")
	s.Require().NoError(err)
	s.Equal(s.en.ID, got.OriginalLanguageID)

	_, err = s.articles.FindPublishedBySlug(s.ctx, "abyssal-station", "de")
	s.True(models.IsNotFound(err))

	_, err = s.articles.FindPublishedBySlug(s.ctx, "draft-piece", "")
	s.True(models.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestArticle_FindPublishedBySlugPrefersLowestID() {
	first := s.createArticle("shared", s.en, models.StatusPublished)
	s.createArticle("shared", s.de, models.StatusPublished)

	got, err := s.articles.FindPublishedBySlug(s.ctx, "shared", "")
	s.Require().NoError(err)
	s.Equal(first.ID, got.ID)
}

func (s *RepositoryTestSuite) TestArticle_ListFiltersAndPages() {
	for _, slug := range []string{"one", "two", "three"} {
		s.createArticle(slug, s.en, models.StatusPublished)
	}
	s.createArticle("four", s.en, models.StatusDraft)
	s.createArticle("vier", s.de, models.StatusPublished)

	articles, total, err := s.articles.List(s.ctx, models.ArticleListParams{
		Status:     string(models.StatusPublished),
		LanguageID: s.en.ID,
		Page:       1,
		Limit:      2,
		SortBy:     "title",
		SortOrder:  "asc",
	})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(articles, 2)
	s.Equal("one", articles[0].Title)
	s.Equal("three", articles[1].Title)

	articles, _, err = s.articles.List(s.ctx, models.ArticleListParams{
		Status:     string(models.StatusPublished),
		LanguageID: s.en.ID,
		Page:       2,
		Limit:      2,
		SortBy:     "title",
		SortOrder:  "asc",
	})
	s.Require().NoError(err)
	s.Require().Len(articles, 1)
	s.Equal("two", articles[0].Title)
}

func (s *RepositoryTestSuite) TestArticle_ListByTag() {
	tagged := s.createArticle("tagged", s.en, models.StatusPublished)
	s.createArticle("plain", s.en, models.StatusPublished)
	tag := models.Tag{Name: "Ocean", Slug: "ocean", Color: "#0000ff"}
	s.Require().NoError(s.tags.Create(s.ctx, &tag))
	s.Require().NoError(s.articles.ReplaceTags(s.ctx, tagged.ID, []uint{tag.ID}))

	articles, total, err := s.articles.List(s.ctx, models.ArticleListParams{TagID: tag.ID, Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(articles, 1)
	s.Equal(tagged.ID, articles[0].ID)

	published, err := s.articles.ListPublishedByLanguage(s.ctx, s.en.ID, tag.ID)
	s.Require().NoError(err)
	s.Require().Len(published, 1)
	s.Equal(tagged.ID, published[0].ID)
}

func (s *RepositoryTestSuite) TestArticle_ReplaceTags() {
	article := s.createArticle("tides", s.en, models.StatusDraft)
	a := models.Tag{Name: "A", Slug: "a", Color: "#000000"}
	b := models.Tag{Name: "B", Slug: "b", Color: "#000000"}
	s.Require().NoError(s.tags.Create(s.ctx, &a))
	s.Require().NoError(s.tags.Create(s.ctx, &b))

	s.Require().NoError(s.articles.ReplaceTags(s.ctx, article.ID, []uint{a.ID, b.ID}))
	s.Require().NoError(s.articles.ReplaceTags(s.ctx, article.ID, []uint{b.ID}))

	got, err := s.articles.GetByID(s.ctx, article.ID)
	s.Require().NoError(err)
	s.Require().Len(got.Tags, 1)
	s.Equal("b", got.Tags[0].Slug)

	s.Require().NoError(s.articles.ReplaceTags(s.ctx, article.ID, nil))
	got, err = s.articles.GetByID(s.ctx, article.ID)
	s.Require().NoError(err)
	s.Empty(got.Tags)
}

func (s *RepositoryTestSuite) TestArticle_DeleteRemovesTranslations() {
	article := s.createArticle("tides", s.en, models.StatusPublished)
	translation := s.createTranslation(article.ID, s.de, "gezeiten", models.StatusPublished)

	s.Require().NoError(s.articles.Delete(s.ctx, article.ID))

	_, err := s.articles.GetByID(s.ctx, article.ID)
	s.True(models.IsNotFound(err))
	_, err = s.translations.GetByID(s.ctx, translation.ID)
	s.True(models.IsNotFound(err))

	err = s.articles.Delete(s.ctx, article.ID)
	s.True(models.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestTranslation_OnePerArticleAndLanguage() {
	article := s.createArticle("tides", s.en, models.StatusPublished)
	s.createTranslation(article.ID, s.de, "gezeiten", models.StatusDraft)

	dup := models.Translation{ArticleID: article.ID, LanguageID: s.de.ID, Title: "Ebbe", Slug: "ebbe", Status: models.StatusDraft}
	err := s.translations.Create(s.ctx, &dup)
	s.True(models.IsConflict(err), "got %v", err)

	list, err := s.translations.ListByArticle(s.ctx, article.ID)
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *RepositoryTestSuite) TestTranslation_FindPublishedBySlug() {
	article := s.createArticle("abyssal-station", s.en, models.StatusPublished)
	translation := s.createTranslation(article.ID, s.de, "abyssal-station-de", models.StatusPublished)

	got, err := s.translations.FindPublishedBySlug(s.ctx, "abyssal-station-de", "de")
	s.Require().NoError(err)
	s.Equal(translation.ID, got.ID)
	s.Require().NotNil(got.Language)
	s.Equal("de", got.Language.Code)

	got, err = s.translations.FindPublishedBySlug(s.ctx, "abyssal-station", "de")
	s.Require().NoError(err)
	s.Equal(translation.ID, got.ID)

	_, err = s.translations.FindPublishedBySlug(s.ctx, "abyssal-station-de", "fr")
	s.True(models.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestTranslation_DraftIsNotFound() {
	article := s.createArticle("abyssal-station", s.en, models.StatusPublished)
	s.createTranslation(article.ID, s.de, "abyssal-station-de", models.StatusDraft)

	_, err := s.translations.FindPublishedBySlug(s.ctx, "abyssal-station-de", "de")
	s.True(models.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestTranslation_ListPublishedByLanguageCarriesArticleTags() {
	article := s.createArticle("tides", s.en, models.StatusPublished)
	tag := models.Tag{Name: "Ocean", Slug: "ocean", Color: "#0000ff"}
	s.Require().NoError(s.tags.Create(s.ctx, &tag))
	s.Require().NoError(s.articles.ReplaceTags(s.ctx, article.ID, []uint{tag.ID}))
	s.createTranslation(article.ID, s.de, "gezeiten", models.StatusPublished)
	s.createTranslation(article.ID, s.fr, "marees", models.StatusDraft)

	list, err := s.translations.ListPublishedByLanguage(s.ctx, s.de.ID, 0)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Require().NotNil(list[0].Article)
	s.Equal("tides", list[0].Article.Slug)
	s.Require().Len(list[0].Article.Tags, 1)

	list, err = s.translations.ListPublishedByLanguage(s.ctx, s.fr.ID, 0)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *RepositoryTestSuite) TestTranslation_UpdateKeepsRow() {
	article := s.createArticle("tides", s.en, models.StatusPublished)
	translation := s.createTranslation(article.ID, s.de, "gezeiten", models.StatusDraft)

	translation.Title = "Die Gezeiten"
	translation.ApplyStatus(models.StatusPublished, time.Now())
	s.Require().NoError(s.translations.Update(s.ctx, &translation))

	got, err := s.translations.GetByID(s.ctx, translation.ID)
	s.Require().NoError(err)
	s.Equal("Die Gezeiten", got.Title)
	s.Equal(models.StatusPublished, got.Status)
	s.NotNil(got.PublishedAt)
}

func (s *RepositoryTestSuite) TestTag_UpsertTranslation() {
	tag := models.Tag{Name: "Ocean", Slug: "ocean", Color: "#0000ff"}
	s.Require().NoError(s.tags.Create(s.ctx, &tag))

	first := models.TagTranslation{TagID: tag.ID, LanguageCode: "de", Name: "Meer"}
	s.Require().NoError(s.tags.UpsertTranslation(s.ctx, &first))
	second := models.TagTranslation{TagID: tag.ID, LanguageCode: "de", Name: "Ozean"}
	s.Require().NoError(s.tags.UpsertTranslation(s.ctx, &second))
	s.Equal(first.ID, second.ID)

	list, err := s.tags.ListTranslations(s.ctx, "de")
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Ozean", list[0].Name)

	s.Require().NoError(s.tags.DeleteTranslation(s.ctx, tag.ID, "de"))
	err = s.tags.DeleteTranslation(s.ctx, tag.ID, "de")
	s.True(models.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestTag_ExistsByNameOrSlug() {
	tag := models.Tag{Name: "Deep Sea", Slug: "deep-sea", Color: "#0000ff"}
	s.Require().NoError(s.tags.Create(s.ctx, &tag))

	exists, err := s.tags.ExistsByNameOrSlug(s.ctx, "Other", "deep-sea")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.tags.ExistsByNameOrSlug(s.ctx, "Other", "other")
	s.Require().NoError(err)
	s.False(exists)

	found, err := s.tags.FindByIDs(s.ctx, []uint{tag.ID, 999})
	s.Require().NoError(err)
	s.Len(found, 1)
}

func (s *RepositoryTestSuite) TestTransaction_RollsBackOnError() {
	boom := errors.New("tag linking failed")

	err := s.tx.WithTransaction(s.ctx, func(ctx context.Context) error {
		article := models.Article{Title: "Lost", Slug: "lost", AuthorID: s.author.ID, OriginalLanguageID: s.en.ID, Status: models.StatusDraft}
		if err := s.articles.Create(ctx, &article); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	taken, err := s.articles.SlugTaken(s.ctx, "lost", s.en.ID, 0)
	s.Require().NoError(err)
	s.False(taken)
}

func (s *RepositoryTestSuite) TestTransaction_Commits() {
	err := s.tx.WithTransaction(s.ctx, func(ctx context.Context) error {
		s.NotNil(repositories.GetTxFromContext(ctx))
		article := models.Article{Title: "Kept", Slug: "kept", AuthorID: s.author.ID, OriginalLanguageID: s.en.ID, Status: models.StatusDraft}
		return s.articles.Create(ctx, &article)
	})
	s.Require().NoError(err)

	taken, err := s.articles.SlugTaken(s.ctx, "kept", s.en.ID, 0)
	s.Require().NoError(err)
	s.True(taken)
}
