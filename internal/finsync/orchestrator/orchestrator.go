// Package orchestrator runs the full-scan reconciliation pass: every invoice
// and every payment fact is checked against the planner store and projected
// when absent.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/felixmixwr/gestao-sync/internal/clock"
	"github.com/felixmixwr/gestao-sync/internal/config"
	"github.com/felixmixwr/gestao-sync/internal/finsync/domain"
	"github.com/felixmixwr/gestao-sync/internal/finsync/lifecycle"
	obsmetrics "github.com/felixmixwr/gestao-sync/internal/observability/metrics"
	recorddomain "github.com/felixmixwr/gestao-sync/internal/record/domain"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	RecordRepo recorddomain.Repository
	Normalizer domain.Normalizer
	Mapper     *lifecycle.Mapper
	Oracle     domain.Oracle
	Projector  domain.Projector
	Clock      clock.Clock
	Holder     *config.SyncConfigHolder
}

type Orchestrator struct {
	db         *gorm.DB
	log        *zap.Logger
	recordRepo recorddomain.Repository
	normalizer domain.Normalizer
	mapper     *lifecycle.Mapper
	oracle     domain.Oracle
	projector  domain.Projector
	clock      clock.Clock
	holder     *config.SyncConfigHolder

	mu      sync.Mutex
	lastRun *domain.SyncRun
}

func New(p Params) *Orchestrator {
	return &Orchestrator{
		db:         p.DB,
		log:        p.Log.Named("finsync.orchestrator"),
		recordRepo: p.RecordRepo,
		normalizer: p.Normalizer,
		mapper:     p.Mapper,
		oracle:     p.Oracle,
		projector:  p.Projector,
		clock:      p.Clock,
		holder:     p.Holder,
	}
}

// RunFullSync reconciles the planner store against every invoice and every
// payment fact. Per-item failures are counted and never abort the loop; only
// failure to enumerate the sources themselves propagates. Running it twice
// with no intervening state change creates nothing on the second pass.
func (o *Orchestrator) RunFullSync(ctx context.Context) (*domain.SyncRun, error) {
	cfg := o.holder.Get()
	m := obsmetrics.Sync()
	m.IncRun()
	wallStart := time.Now()

	run := domain.NewSyncRun(uuid.NewString(), o.clock.Now())
	o.log.Info("full sync started", zap.String("run_id", run.ID))

	invoices, err := o.recordRepo.ListInvoices(ctx, o.db)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	for _, inv := range invoices {
		o.syncInvoice(ctx, run, inv)
		if err := o.throttle(ctx, cfg.ThrottleDelay); err != nil {
			return o.finish(run, wallStart), err
		}
	}

	facts, err := o.normalizer.ListPaymentFacts(ctx)
	if err != nil {
		o.finish(run, wallStart)
		return run, fmt.Errorf("list payment facts: %w", err)
	}
	for _, fact := range facts {
		o.syncFact(ctx, run, fact)
		if err := o.throttle(ctx, cfg.ThrottleDelay); err != nil {
			return o.finish(run, wallStart), err
		}
	}

	o.finish(run, wallStart)
	o.log.Info("full sync finished",
		zap.String("run_id", run.ID),
		zap.Int("created", run.Created),
		zap.Int("skipped", run.Skipped),
		zap.Int("removed", run.Removed),
		zap.Int("failed", run.Failed),
	)
	return run, nil
}

// LastRun returns the most recent completed run, or nil.
func (o *Orchestrator) LastRun() *domain.SyncRun {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastRun
}

func (o *Orchestrator) finish(run *domain.SyncRun, wallStart time.Time) *domain.SyncRun {
	run.FinishedAt = o.clock.Now()
	obsmetrics.Sync().ObserveRun(time.Since(wallStart))
	o.mu.Lock()
	o.lastRun = run
	o.mu.Unlock()
	return run
}

func (o *Orchestrator) syncInvoice(ctx context.Context, run *domain.SyncRun, inv recorddomain.Invoice) {
	intents, err := o.mapper.DescribeRequiredArtifacts(inv, nil, o.clock.Now())
	if err != nil {
		run.Failed++
		run.Logf("NF %q: registro inválido: %v", inv.Number, err)
		obsmetrics.Sync().IncItem(obsmetrics.OutcomeFailed)
		o.log.Warn("invoice mapping failed",
			zap.String("invoice", inv.Number),
			zap.Error(err),
		)
		return
	}
	for _, intent := range intents {
		o.applyIntent(ctx, run, intent)
	}
}

func (o *Orchestrator) syncFact(ctx context.Context, run *domain.SyncRun, fact domain.PaymentFact) {
	o.applyIntent(ctx, run, o.mapper.DescribeFactArtifact(fact))
}

func (o *Orchestrator) applyIntent(ctx context.Context, run *domain.SyncRun, intent domain.ArtifactIntent) {
	m := obsmetrics.Sync()

	switch intent.Op {
	case domain.OpRemove:
		removed, err := o.projector.Remove(ctx, intent.NaturalKey)
		if err != nil {
			run.Failed++
			run.Logf("falha ao remover %s: %v", intent.NaturalKey, err)
			m.IncItem(obsmetrics.OutcomeFailed)
			o.log.Warn("artifact removal failed", zap.String("key", intent.NaturalKey), zap.Error(err))
			return
		}
		if removed > 0 {
			run.Removed += removed
			run.Logf("removido: %s (%d)", intent.NaturalKey, removed)
			m.IncItem(obsmetrics.OutcomeRemoved)
		}

	case domain.OpCreate:
		exists, err := o.oracle.Exists(ctx, intent.NaturalKey)
		if err != nil {
			run.Failed++
			run.Logf("falha ao verificar %s: %v", intent.NaturalKey, err)
			m.IncItem(obsmetrics.OutcomeFailed)
			o.log.Warn("existence check failed", zap.String("key", intent.NaturalKey), zap.Error(err))
			return
		}
		if exists {
			// Distinct from a genuine create so operators can audit skip rates.
			run.Skipped++
			run.Logf("ignorado (já existe): %s", intent.NaturalKey)
			m.IncItem(obsmetrics.OutcomeSkipped)
			return
		}
		if _, err := o.projector.Create(ctx, intent); err != nil {
			run.Failed++
			run.Logf("falha ao criar %s: %v", intent.NaturalKey, err)
			m.IncItem(obsmetrics.OutcomeFailed)
			o.log.Warn("artifact creation failed", zap.String("key", intent.NaturalKey), zap.Error(err))
			return
		}
		run.Created++
		run.Logf("criado: %s", intent.NaturalKey)
		m.IncItem(obsmetrics.OutcomeCreated)
	}
}

// throttle bounds the request rate against the planner store between items.
func (o *Orchestrator) throttle(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
