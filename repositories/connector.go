package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Connector hands out a gorm handle bound to ctx. config.Database implements it;
// it returns models.ErrorStoreUnavailable when the database cannot be reached.
type Connector interface {
	Conn(ctx context.Context) (*gorm.DB, error)
}

type staticConnector struct {
	db *gorm.DB
}

// NewStaticConnector wraps an already opened database.
func NewStaticConnector(db *gorm.DB) Connector {
	return &staticConnector{db: db}
}

func (c *staticConnector) Conn(ctx context.Context) (*gorm.DB, error) {
	return c.db.WithContext(ctx), nil
}
