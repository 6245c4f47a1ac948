// Package migration keeps the record and planner schemas current.
package migration

import (
	plannerdomain "github.com/felixmixwr/gestao-sync/internal/planner/domain"
	recorddomain "github.com/felixmixwr/gestao-sync/internal/record/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Run(db *gorm.DB, log *zap.Logger) error {
	err := db.AutoMigrate(
		&recorddomain.Invoice{},
		&recorddomain.ReceivablePayment{},
		&recorddomain.ServiceReport{},
		&recorddomain.Expense{},
		&plannerdomain.Category{},
		&plannerdomain.Event{},
	)
	if err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}

// Module applies migrations at startup.
var Module = fx.Module("migrations",
	fx.Invoke(Run),
)
