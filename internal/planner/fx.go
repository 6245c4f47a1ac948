package planner

import (
	"github.com/felixmixwr/gestao-sync/internal/planner/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("planner",
	fx.Provide(repository.Provide),
)
