package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"galatide/helper"
	"galatide/services"
)

const xmlContentType = "application/xml; charset=utf-8"

type SitemapHandler struct {
	sitemapService services.SitemapService
	Helper         *helper.HTTPHelper
}

func NewSitemapHandler(sitemapService services.SitemapService, h *helper.HTTPHelper) *SitemapHandler {
	return &SitemapHandler{sitemapService: sitemapService, Helper: h}
}

func (h *SitemapHandler) Index(c *gin.Context) {
	body, err := h.sitemapService.SitemapIndexXML(c.Request.Context())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, xmlContentType, body)
}

// Language serves /sitemaps/{code}.xml.
func (h *SitemapHandler) Language(c *gin.Context) {
	file := c.Param("file")
	code := strings.TrimSuffix(file, ".xml")
	if code == "" || code == file {
		h.Helper.SendNotFoundError(c, "sitemap not found", h.Helper.EmptyJsonMap())
		return
	}

	body, err := h.sitemapService.SitemapXML(c.Request.Context(), code)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, xmlContentType, body)
}
