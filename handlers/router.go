package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"galatide/helper"
	"galatide/middleware"
	"galatide/services"
)

// RouterOptions carries the services and settings the HTTP surface needs.
type RouterOptions struct {
	Languages    services.LanguageService
	Articles     services.ArticleService
	Translations services.TranslationService
	Tags         services.TagService
	Resolver     services.ContentResolver
	Metadata     services.MetadataService
	Sitemaps     services.SitemapService
	Store        StoreStatus

	JWTSecret   string
	RateLimiter *middleware.RateLimiter
	Logger      *slog.Logger
}

func NewRouter(opts RouterOptions) *gin.Engine {
	h := helper.NewHTTPHelper()

	languageHandler := NewLanguageHandler(opts.Languages, h)
	articleHandler := NewArticleHandler(opts.Articles, opts.Translations, h)
	translationHandler := NewTranslationHandler(opts.Translations, h)
	tagHandler := NewTagHandler(opts.Tags, h, opts.Logger)
	publicHandler := NewPublicHandler(opts.Resolver, opts.Articles, opts.Metadata, h, opts.Logger)
	sitemapHandler := NewSitemapHandler(opts.Sitemaps, h)
	healthHandler := NewHealthHandler(opts.Store)

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(opts.Logger),
		middleware.Recovery(opts.Logger),
	)

	router.GET("/health", healthHandler.Health)
	router.GET("/sitemap.xml", sitemapHandler.Index)
	router.GET("/sitemaps/:file", sitemapHandler.Language)

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("/public")
		if opts.RateLimiter != nil {
			public.Use(opts.RateLimiter.Middleware(h))
		}
		{
			public.GET("/languages", languageHandler.ListPublicLanguages)
			public.GET("/languages/preferred", middleware.PreferredLanguage(opts.Languages), languageHandler.PreferredLanguage)
			public.GET("/articles/:lang", publicHandler.ListContent)
			public.GET("/articles/:lang/:slug", publicHandler.GetContent)
			public.GET("/articles/:lang/:slug/meta", publicHandler.GetMeta)
			public.GET("/tags/:lang", tagHandler.GetLocalizedTags)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(opts.JWTSecret, h), middleware.RequireRole(h, "admin"))
		{
			languages := admin.Group("/languages")
			{
				languages.GET("", languageHandler.ListLanguages)
				languages.POST("", languageHandler.CreateLanguage)
				languages.PUT("/:id", languageHandler.UpdateLanguage)
				languages.DELETE("/:id", languageHandler.DeleteLanguage)
			}

			articles := admin.Group("/articles")
			{
				articles.GET("", articleHandler.GetArticles)
				articles.POST("", articleHandler.CreateArticle)
				articles.GET("/:id", articleHandler.GetArticle)
				articles.PUT("/:id", articleHandler.UpdateArticle)
				articles.DELETE("/:id", articleHandler.DeleteArticle)
				articles.GET("/:id/translations", articleHandler.GetTranslations)
				articles.POST("/:id/translations", articleHandler.CreateTranslation)
				articles.GET("/:id/available-languages", articleHandler.GetAvailableLanguages)
			}

			translations := admin.Group("/translations")
			{
				translations.GET("/:id", translationHandler.GetTranslation)
				translations.PUT("/:id", translationHandler.UpdateTranslation)
				translations.DELETE("/:id", translationHandler.DeleteTranslation)
			}

			tags := admin.Group("/tags")
			{
				tags.GET("", tagHandler.GetTags)
				tags.POST("", tagHandler.CreateTag)
				tags.PUT("/:id/translations/:lang", tagHandler.UpsertTranslation)
				tags.DELETE("/:id/translations/:lang", tagHandler.DeleteTranslation)
			}
		}
	}

	return router
}
