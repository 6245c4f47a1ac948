// Package oracle is the duplicate guard: it answers whether a calendar
// projection for a natural key already exists. Both the orchestrator and the
// realtime listener consult it before writing; it is the only mechanism
// keeping the two producers from double-projecting. The check-then-create
// window can still admit a duplicate under concurrency, which is accepted:
// an extra calendar entry is cosmetic, not data-corrupting.
package oracle

import (
	"context"
	"fmt"

	plannerdomain "github.com/felixmixwr/gestao-sync/internal/planner/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Planner plannerdomain.Repository
}

type Oracle struct {
	db      *gorm.DB
	log     *zap.Logger
	planner plannerdomain.Repository
}

func New(p Params) *Oracle {
	return &Oracle{
		db:      p.DB,
		log:     p.Log.Named("finsync.oracle"),
		planner: p.Planner,
	}
}

// Exists performs an exact-match lookup on the planner's title field.
func (o *Oracle) Exists(ctx context.Context, naturalKey string) (bool, error) {
	events, err := o.planner.FindEventsByTitle(ctx, o.db, naturalKey)
	if err != nil {
		return false, fmt.Errorf("find events by title: %w", err)
	}
	return len(events) > 0, nil
}
