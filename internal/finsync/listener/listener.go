// Package listener reacts to the receivable-payment change feed and projects
// single facts as they are confirmed, independently of the full-sync cadence.
// It shares the oracle with the orchestrator; that existence check is the
// only thing keeping the two producers from double-projecting.
package listener

import (
	"context"

	"github.com/felixmixwr/gestao-sync/internal/finsync/domain"
	"github.com/felixmixwr/gestao-sync/internal/finsync/lifecycle"
	"github.com/felixmixwr/gestao-sync/internal/finsync/normalizer"
	obsmetrics "github.com/felixmixwr/gestao-sync/internal/observability/metrics"
	recorddomain "github.com/felixmixwr/gestao-sync/internal/record/domain"
	"github.com/felixmixwr/gestao-sync/internal/record/feed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Feed       *feed.Hub
	RecordRepo recorddomain.Repository
	Mapper     *lifecycle.Mapper
	Oracle     domain.Oracle
	Projector  domain.Projector
}

type Listener struct {
	db         *gorm.DB
	log        *zap.Logger
	feed       *feed.Hub
	recordRepo recorddomain.Repository
	mapper     *lifecycle.Mapper
	oracle     domain.Oracle
	projector  domain.Projector
}

func New(p Params) *Listener {
	return &Listener{
		db:         p.DB,
		log:        p.Log.Named("finsync.listener"),
		feed:       p.Feed,
		recordRepo: p.RecordRepo,
		mapper:     p.Mapper,
		oracle:     p.Oracle,
		projector:  p.Projector,
	}
}

// Run consumes the feed until the context is cancelled or the channel drops.
// A dropped channel is not re-established; the next full sync is the
// self-healing path.
func (l *Listener) Run(ctx context.Context) {
	sub, backlog, err := l.feed.Subscribe()
	if err != nil {
		l.log.Error("feed subscription failed", zap.Error(err))
		return
	}
	defer sub.Close()

	for _, change := range backlog {
		l.OnPaymentConfirmed(ctx, change)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-sub.Events():
			if !ok {
				l.log.Warn("payment feed closed")
				return
			}
			l.OnPaymentConfirmed(ctx, change)
		}
	}
}

// OnPaymentConfirmed handles one change event. The payload may be partial, so
// the full record is re-fetched before normalizing. Errors are logged and
// counted, never propagated: one bad event must not stall the feed.
func (l *Listener) OnPaymentConfirmed(ctx context.Context, change feed.PaymentChange) {
	m := obsmetrics.Sync()

	if change.Status != recorddomain.PaymentStatusPaid {
		return
	}

	payment, err := l.recordRepo.FindReceivablePayment(ctx, l.db, change.PaymentID)
	if err != nil {
		m.IncFeedEvent(obsmetrics.OutcomeFailed)
		l.log.Warn("payment refetch failed",
			zap.String("payment_id", change.PaymentID.String()),
			zap.Error(err),
		)
		return
	}
	if payment == nil || payment.Status != recorddomain.PaymentStatusPaid {
		m.IncFeedEvent(obsmetrics.OutcomeSkipped)
		return
	}

	fact := normalizer.FactFromReceivable(*payment)
	intent := l.mapper.DescribeFactArtifact(fact)

	exists, err := l.oracle.Exists(ctx, intent.NaturalKey)
	if err != nil {
		m.IncFeedEvent(obsmetrics.OutcomeFailed)
		l.log.Warn("existence check failed", zap.String("key", intent.NaturalKey), zap.Error(err))
		return
	}
	if exists {
		m.IncFeedEvent(obsmetrics.OutcomeSkipped)
		l.log.Debug("artifact already projected", zap.String("key", intent.NaturalKey))
		return
	}

	if _, err := l.projector.Create(ctx, intent); err != nil {
		m.IncFeedEvent(obsmetrics.OutcomeFailed)
		l.log.Warn("artifact creation failed", zap.String("key", intent.NaturalKey), zap.Error(err))
		return
	}
	m.IncFeedEvent(obsmetrics.OutcomeCreated)
	l.log.Info("payment projected", zap.String("key", intent.NaturalKey))
}

// Module starts the listener for the lifetime of the process.
var Module = fx.Module("finsync.listener",
	fx.Provide(New),
	fx.Invoke(runListener),
)

func runListener(lc fx.Lifecycle, l *Listener) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ctx, cancel := context.WithCancel(context.Background())

			go l.Run(ctx)

			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					cancel()
					return nil
				},
			})

			return nil
		},
	})
}
