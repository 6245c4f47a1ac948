package record

import (
	"github.com/felixmixwr/gestao-sync/internal/record/feed"
	"github.com/felixmixwr/gestao-sync/internal/record/repository"
	"github.com/felixmixwr/gestao-sync/internal/record/service"
	"go.uber.org/fx"
)

var Module = fx.Module("record",
	fx.Provide(repository.Provide),
	fx.Provide(feed.NewHub),
	fx.Provide(service.NewService),
)
