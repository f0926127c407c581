package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"galatide/helper"
	"galatide/models"
	"galatide/services"
)

type TagHandler struct {
	tagService services.TagService
	Helper     *helper.HTTPHelper
	logger     *slog.Logger
}

func NewTagHandler(tagService services.TagService, h *helper.HTTPHelper, logger *slog.Logger) *TagHandler {
	return &TagHandler{tagService: tagService, Helper: h, logger: logger}
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var req models.CreateTagRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendCreated(c, "Tag created successfully", tag)
}

func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tagService.ListTags(c.Request.Context())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Success", tags)
}

// GetLocalizedTags serves the reader's tag filter. An unavailable store
// yields an empty list rather than an error.
func (h *TagHandler) GetLocalizedTags(c *gin.Context) {
	tags, err := h.tagService.ListTagsForLanguage(c.Request.Context(), c.Param("lang"))
	degraded := false
	if err != nil {
		if !models.IsStoreUnavailable(err) {
			h.Helper.SendServiceError(c, err)
			return
		}
		h.logger.Warn("serving empty tag list", "language", c.Param("lang"), "error", err)
		tags = []models.LocalizedTag{}
		degraded = true
	}

	h.Helper.SendSuccess(c, "Success", gin.H{
		"tags":     tags,
		"degraded": degraded,
	})
}

func (h *TagHandler) UpsertTranslation(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}
	var req models.TagTranslationRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	translation, err := h.tagService.UpsertTagTranslation(c.Request.Context(), id, c.Param("lang"), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Tag translation saved", translation)
}

func (h *TagHandler) DeleteTranslation(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}
	if err := h.tagService.DeleteTagTranslation(c.Request.Context(), id, c.Param("lang")); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Tag translation deleted", h.Helper.EmptyJsonMap())
}
