package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"galatide/models"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errNotConfigured = errors.New("database is not configured")

// Database owns the lifecycle of the gorm connection. The first Conn call
// connects with bounded exponential backoff; after the attempts are exhausted
// the handle reports the store as unavailable until RetryCooldown elapses.
type Database struct {
	cfg    DatabaseConfig
	logger *slog.Logger

	// OnConnect runs once after a successful connection, e.g. migrations.
	OnConnect func(db *gorm.DB) error

	mu       sync.Mutex
	db       *gorm.DB
	lastErr  error
	failedAt time.Time
	now      func() time.Time
	open     func(DatabaseConfig) (*gorm.DB, error)
}

func NewDatabase(cfg DatabaseConfig, logger *slog.Logger) *Database {
	return &Database{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		open:   openGorm,
	}
}

// Connect forces a connection attempt unless already connected.
func (d *Database) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil {
		return nil
	}
	return d.connectLocked(ctx)
}

// Conn returns the live connection, connecting on first use.
func (d *Database) Conn(ctx context.Context) (*gorm.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil {
		return d.db.WithContext(ctx), nil
	}

	if !d.failedAt.IsZero() && d.now().Sub(d.failedAt) < d.cfg.RetryCooldown {
		return nil, models.ErrorStoreUnavailable{Cause: d.lastErr}
	}

	if err := d.connectLocked(ctx); err != nil {
		return nil, err
	}
	return d.db.WithContext(ctx), nil
}

func (d *Database) IsAvailable() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.db != nil
}

// Close releases the pool. A later Conn call reconnects.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	d.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) connectLocked(ctx context.Context) error {
	if d.dsn() == "" {
		d.markFailed(errNotConfigured)
		return models.ErrorStoreUnavailable{Cause: errNotConfigured}
	}

	attempts := d.cfg.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}

	expo := backoff.NewExponentialBackOff()
	if d.cfg.InitialBackoff > 0 {
		expo.InitialInterval = d.cfg.InitialBackoff
	}
	if d.cfg.MaxBackoff > 0 {
		expo.MaxInterval = d.cfg.MaxBackoff
	}
	expo.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(attempts-1)), ctx)

	var db *gorm.DB
	operation := func() error {
		conn, err := d.open(d.cfg)
		if err != nil {
			return err
		}
		db = conn
		return nil
	}
	notify := func(err error, wait time.Duration) {
		d.logger.Warn("database connection failed, retrying",
			"driver", d.cfg.Driver,
			"backoff", wait,
			"error", err,
		)
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		// A caller that gave up says nothing about the database; the next
		// caller retries without waiting for the cooldown.
		if ctx.Err() != nil {
			return models.ErrorStoreUnavailable{Cause: err}
		}
		d.markFailed(err)
		d.logger.Error("database unavailable", "driver", d.cfg.Driver, "attempts", attempts, "error", err)
		return models.ErrorStoreUnavailable{Cause: err}
	}

	if d.OnConnect != nil {
		if err := d.OnConnect(db); err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			d.markFailed(err)
			return models.ErrorStoreUnavailable{Cause: fmt.Errorf("on connect: %w", err)}
		}
	}

	d.db = db
	d.lastErr = nil
	d.failedAt = time.Time{}
	d.logger.Info("connected to database", "driver", d.cfg.Driver)
	return nil
}

func (d *Database) markFailed(err error) {
	d.lastErr = err
	d.failedAt = d.now()
}

func (d *Database) dsn() string {
	if d.cfg.Driver == "sqlite" {
		return d.cfg.DSN
	}
	return d.cfg.ConnectionString()
}

func openGorm(cfg DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		dialector = postgres.Open(cfg.ConnectionString())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	return db, nil
}
