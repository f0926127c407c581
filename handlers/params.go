package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"galatide/helper"
)

// parseID reads a positive numeric path parameter, answering 400 itself
// when it is malformed.
func parseID(c *gin.Context, h *helper.HTTPHelper, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		h.SendBadRequest(c, "Invalid "+name, h.EmptyJsonMap())
		return 0, false
	}
	return uint(id), true
}
