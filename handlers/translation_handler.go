package handlers

import (
	"github.com/gin-gonic/gin"

	"galatide/helper"
	"galatide/models"
	"galatide/services"
)

type TranslationHandler struct {
	translationService services.TranslationService
	Helper             *helper.HTTPHelper
}

func NewTranslationHandler(translationService services.TranslationService, h *helper.HTTPHelper) *TranslationHandler {
	return &TranslationHandler{translationService: translationService, Helper: h}
}

func (h *TranslationHandler) GetTranslation(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	translation, err := h.translationService.GetTranslation(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Success", translation)
}

func (h *TranslationHandler) UpdateTranslation(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}
	var req models.UpdateTranslationRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	translation, err := h.translationService.UpdateTranslation(c.Request.Context(), id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Translation updated successfully", translation)
}

func (h *TranslationHandler) DeleteTranslation(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}
	if err := h.translationService.DeleteTranslation(c.Request.Context(), id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Translation deleted successfully", h.Helper.EmptyJsonMap())
}
