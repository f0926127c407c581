package handlers

import (
	"github.com/gin-gonic/gin"

	"galatide/helper"
	"galatide/middleware"
	"galatide/models"
	"galatide/services"
)

type LanguageHandler struct {
	languageService services.LanguageService
	Helper          *helper.HTTPHelper
}

func NewLanguageHandler(languageService services.LanguageService, h *helper.HTTPHelper) *LanguageHandler {
	return &LanguageHandler{languageService: languageService, Helper: h}
}

func (h *LanguageHandler) ListLanguages(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	languages, err := h.languageService.ListLanguages(c.Request.Context(), activeOnly)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Success", languages)
}

func (h *LanguageHandler) ListPublicLanguages(c *gin.Context) {
	languages, degraded := h.languageService.ListPublicLanguages(c.Request.Context())
	h.Helper.SendSuccess(c, "Success", gin.H{
		"languages": languages,
		"degraded":  degraded,
	})
}

// PreferredLanguage reports the language picked by middleware.PreferredLanguage.
func (h *LanguageHandler) PreferredLanguage(c *gin.Context) {
	h.Helper.SendSuccess(c, "Success", gin.H{"code": c.GetString(middleware.ContextLanguage)})
}

func (h *LanguageHandler) CreateLanguage(c *gin.Context) {
	var req models.CreateLanguageRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	lang, err := h.languageService.CreateLanguage(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendCreated(c, "Language created successfully", lang)
}

func (h *LanguageHandler) UpdateLanguage(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}
	var req models.UpdateLanguageRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	lang, err := h.languageService.UpdateLanguage(c.Request.Context(), id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Language updated successfully", lang)
}

func (h *LanguageHandler) DeleteLanguage(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}
	if err := h.languageService.DeleteLanguage(c.Request.Context(), id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Language deleted successfully", h.Helper.EmptyJsonMap())
}
