package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"galatide/helper"
	"galatide/models"
	"galatide/services"
)

// PublicHandler serves the reader site.
type PublicHandler struct {
	resolver        services.ContentResolver
	articleService  services.ArticleService
	metadataService services.MetadataService
	Helper          *helper.HTTPHelper
	logger          *slog.Logger
}

func NewPublicHandler(
	resolver services.ContentResolver,
	articleService services.ArticleService,
	metadataService services.MetadataService,
	h *helper.HTTPHelper,
	logger *slog.Logger,
) *PublicHandler {
	return &PublicHandler{
		resolver:        resolver,
		articleService:  articleService,
		metadataService: metadataService,
		Helper:          h,
		logger:          logger,
	}
}

func (h *PublicHandler) GetContent(c *gin.Context) {
	content, err := h.resolver.Resolve(c.Request.Context(), c.Param("slug"), c.Param("lang"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", gin.H{
		"title":       content.Title(),
		"slug":        content.Slug(),
		"article":     content.Article,
		"translation": content.Translation,
	})
}

func (h *PublicHandler) GetMeta(c *gin.Context) {
	meta, err := h.metadataService.ArticleMeta(c.Request.Context(), c.Param("lang"), c.Param("slug"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Success", meta)
}

// ListContent lists published content in a language. An unavailable store
// yields an empty, degraded page.
func (h *PublicHandler) ListContent(c *gin.Context) {
	var params models.PublicListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "Invalid query parameters", err.Error())
		return
	}
	params.Page, params.Limit = helper.NormalizePaging(params.Page, params.Limit)

	items, total, err := h.articleService.ListPublished(c.Request.Context(), c.Param("lang"), params)
	degraded := false
	if err != nil {
		if !models.IsStoreUnavailable(err) {
			h.Helper.SendServiceError(c, err)
			return
		}
		h.logger.Warn("serving empty article list", "language", c.Param("lang"), "error", err)
		items, total, degraded = []models.ContentSummary{}, 0, true
	}

	h.Helper.SendSuccess(c, "Success", gin.H{
		"articles": items,
		"paging":   h.Helper.GeneratePaging(c, params.Limit, params.Page, int(total)),
		"degraded": degraded,
	})
}
