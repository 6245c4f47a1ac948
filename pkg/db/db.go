package db

import (
	"fmt"
	"sync/atomic"

	"github.com/felixmixwr/gestao-sync/internal/config"
	"github.com/glebarez/sqlite"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New opens the gorm connection for the configured dialect.
func New(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialect, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialect, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBType, err)
	}

	if cfg.OtelEnabled {
		if err := conn.Use(otelgorm.NewPlugin(otelgorm.WithDBName(cfg.DBName))); err != nil {
			return nil, fmt.Errorf("register otelgorm plugin: %w", err)
		}
	}

	log.Info("database connected",
		zap.String("type", cfg.DBType),
		zap.String("name", cfg.DBName),
	)
	return conn, nil
}

var testSeq atomic.Int64

// NewTest opens an isolated in-memory sqlite database for tests.
func NewTest() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:gestao_test_%d?mode=memory&cache=shared", testSeq.Add(1))
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

// Module provides the shared gorm connection.
var Module = fx.Module("db",
	fx.Provide(New),
)
