package finsync

import (
	"github.com/felixmixwr/gestao-sync/internal/finsync/domain"
	"github.com/felixmixwr/gestao-sync/internal/finsync/lifecycle"
	"github.com/felixmixwr/gestao-sync/internal/finsync/normalizer"
	"github.com/felixmixwr/gestao-sync/internal/finsync/oracle"
	"github.com/felixmixwr/gestao-sync/internal/finsync/orchestrator"
	"github.com/felixmixwr/gestao-sync/internal/finsync/projector"
	"go.uber.org/fx"
)

// Module wires the sync engine core. The listener and the periodic worker
// are separate modules so each binary picks what it runs.
var Module = fx.Module("finsync",
	fx.Provide(lifecycle.NewMapper),
	fx.Provide(normalizer.New),
	fx.Provide(func(n *normalizer.Normalizer) domain.Normalizer { return n }),
	fx.Provide(oracle.New),
	fx.Provide(func(o *oracle.Oracle) domain.Oracle { return o }),
	fx.Provide(projector.New),
	fx.Provide(func(p *projector.Projector) domain.Projector { return p }),
	fx.Provide(orchestrator.New),
	fx.Provide(func(o *orchestrator.Orchestrator) domain.Service { return o }),
)
