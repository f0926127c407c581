package handlers

import (
	"github.com/gin-gonic/gin"

	"galatide/helper"
	"galatide/middleware"
	"galatide/models"
	"galatide/services"
)

type ArticleHandler struct {
	articleService     services.ArticleService
	translationService services.TranslationService
	Helper             *helper.HTTPHelper
}

func NewArticleHandler(articleService services.ArticleService, translationService services.TranslationService, h *helper.HTTPHelper) *ArticleHandler {
	return &ArticleHandler{
		articleService:     articleService,
		translationService: translationService,
		Helper:             h,
	}
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req models.CreateArticleRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	article, err := h.articleService.CreateArticle(c.Request.Context(), req, c.GetUint(middleware.ContextUserID))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendCreated(c, "Article created successfully", article)
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	var params models.ArticleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "Invalid query parameters", err.Error())
		return
	}
	params.Page, params.Limit = helper.NormalizePaging(params.Page, params.Limit)

	articles, total, err := h.articleService.ListArticles(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", gin.H{
		"articles": articles,
		"paging":   h.Helper.GeneratePaging(c, params.Limit, params.Page, int(total)),
	})
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	article, err := h.articleService.GetArticle(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Success", article)
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}
	var req models.UpdateArticleRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	article, err := h.articleService.UpdateArticle(c.Request.Context(), id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Article updated successfully", article)
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}
	if err := h.articleService.DeleteArticle(c.Request.Context(), id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Article deleted successfully", h.Helper.EmptyJsonMap())
}

func (h *ArticleHandler) GetTranslations(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	translations, err := h.translationService.ListTranslationsForArticle(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Success", translations)
}

func (h *ArticleHandler) CreateTranslation(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}
	var req models.CreateTranslationRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	var translatorID *uint
	if userID := c.GetUint(middleware.ContextUserID); userID != 0 {
		translatorID = &userID
	}

	translation, err := h.translationService.CreateTranslation(c.Request.Context(), id, req, translatorID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendCreated(c, "Translation created successfully", translation)
}

func (h *ArticleHandler) GetAvailableLanguages(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	languages, err := h.translationService.ListAvailableLanguagesForArticle(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Success", languages)
}
