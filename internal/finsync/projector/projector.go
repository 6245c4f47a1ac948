// Package projector writes and removes calendar artifacts in the planner
// store.
package projector

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/felixmixwr/gestao-sync/internal/finsync/domain"
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
	GenID   *snowflake.Node
}

type Projector struct {
	db      *gorm.DB
	log     *zap.Logger
	planner plannerdomain.Repository
	genID   *snowflake.Node
}

func New(p Params) *Projector {
	return &Projector{
		db:      p.DB,
		log:     p.Log.Named("finsync.projector"),
		planner: p.Planner,
		genID:   p.GenID,
	}
}

// Create writes exactly one artifact for the intent. A missing category never
// fails the write; the event is created uncategorized.
func (p *Projector) Create(ctx context.Context, intent domain.ArtifactIntent) (domain.CalendarArtifact, error) {
	if intent.Op != domain.OpCreate {
		return domain.CalendarArtifact{}, domain.ErrIntentNotCreate
	}

	categoryID := p.resolveCategory(ctx, intent.CategoryName)

	event := plannerdomain.Event{
		ID:              p.genID.Generate(),
		Title:           intent.NaturalKey,
		Description:     intent.Description,
		StartDate:       intent.StartDate,
		AllDay:          intent.AllDay,
		CategoryID:      categoryID,
		Location:        intent.Location,
		ReminderMinutes: intent.ReminderMinutes,
	}
	if err := p.planner.CreateEvent(ctx, p.db, &event); err != nil {
		return domain.CalendarArtifact{}, fmt.Errorf("create event: %w", err)
	}

	p.log.Debug("artifact created",
		zap.String("title", event.Title),
		zap.String("kind", string(intent.Kind)),
	)
	return domain.CalendarArtifact{
		ID:              event.ID,
		Title:           event.Title,
		Description:     event.Description,
		StartDate:       event.StartDate,
		AllDay:          event.AllDay,
		CategoryID:      event.CategoryID,
		Location:        event.Location,
		ReminderMinutes: event.ReminderMinutes,
	}, nil
}

// Remove deletes every event whose title matches the natural key and reports
// how many were removed.
func (p *Projector) Remove(ctx context.Context, naturalKey string) (int, error) {
	events, err := p.planner.FindEventsByTitle(ctx, p.db, naturalKey)
	if err != nil {
		return 0, fmt.Errorf("find events by title: %w", err)
	}

	removed := 0
	for _, event := range events {
		if err := p.planner.DeleteEvent(ctx, p.db, event.ID); err != nil {
			return removed, fmt.Errorf("delete event %s: %w", event.ID, err)
		}
		removed++
	}
	return removed, nil
}

func (p *Projector) resolveCategory(ctx context.Context, name string) *snowflake.ID {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	categories, err := p.planner.ListCategories(ctx, p.db)
	if err != nil {
		p.log.Warn("category lookup failed, creating uncategorized", zap.Error(err))
		return nil
	}
	for _, wanted := range append([]string{name}, categoryAliases[name]...) {
		for _, c := range categories {
			if strings.EqualFold(c.Name, wanted) {
				id := c.ID
				return &id
			}
		}
	}
	p.log.Warn("category not found, creating uncategorized", zap.String("category", name))
	return nil
}

// Planner installations name the payments category inconsistently.
var categoryAliases = map[string][]string{
	"Pagamentos": {"Pagos", "Recebimentos"},
}
