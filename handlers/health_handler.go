package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StoreStatus is satisfied by config.Database.
type StoreStatus interface {
	IsAvailable() bool
}

type HealthHandler struct {
	store StoreStatus
}

func NewHealthHandler(store StoreStatus) *HealthHandler {
	return &HealthHandler{store: store}
}

// Health always answers 200 so the process stays in rotation while the
// database is down; the database field reports its state.
func (h *HealthHandler) Health(c *gin.Context) {
	database := "unavailable"
	if h.store != nil && h.store.IsAvailable() {
		database = "available"
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": database})
}
