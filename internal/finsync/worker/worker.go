// Package worker drives the periodic full reconciliation. The realtime
// listener is a latency optimization; this loop is the correctness-restoring
// mechanism.
package worker

import (
	"context"
	"time"

	"github.com/felixmixwr/gestao-sync/internal/config"
	"github.com/felixmixwr/gestao-sync/internal/finsync/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log    *zap.Logger
	Svc    domain.Service
	Holder *config.SyncConfigHolder
}

type Worker struct {
	log    *zap.Logger
	svc    domain.Service
	holder *config.SyncConfigHolder
}

func NewWorker(p Params) *Worker {
	return &Worker{
		log:    p.Log.Named("finsync.worker"),
		svc:    p.Svc,
		holder: p.Holder,
	}
}

func (w *Worker) RunForever(ctx context.Context) {
	for {
		if err := w.RunOnce(ctx); err != nil {
			w.log.Warn("reconciliation run failed", zap.Error(err))
		}

		interval := w.holder.Get().ReconcileInterval
		if interval <= 0 {
			interval = config.DefaultSyncConfig().ReconcileInterval
		}
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (w *Worker) RunOnce(ctx context.Context) error {
	_, err := w.svc.RunFullSync(ctx)
	return err
}

// Module runs the reconciliation loop for the process lifetime.
var Module = fx.Module("finsync.worker",
	fx.Provide(NewWorker),
	fx.Invoke(runWorker),
)

func runWorker(lc fx.Lifecycle, worker *Worker) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ctx, cancel := context.WithCancel(context.Background())

			go worker.RunForever(ctx)

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
