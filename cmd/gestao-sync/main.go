package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/felixmixwr/gestao-sync/internal/clock"
	"github.com/felixmixwr/gestao-sync/internal/config"
	"github.com/felixmixwr/gestao-sync/internal/finsync"
	"github.com/felixmixwr/gestao-sync/internal/finsync/listener"
	"github.com/felixmixwr/gestao-sync/internal/finsync/worker"
	"github.com/felixmixwr/gestao-sync/internal/logger"
	"github.com/felixmixwr/gestao-sync/internal/migration"
	"github.com/felixmixwr/gestao-sync/internal/observability"
	"github.com/felixmixwr/gestao-sync/internal/planner"
	"github.com/felixmixwr/gestao-sync/internal/record"
	"github.com/felixmixwr/gestao-sync/internal/server"
	"github.com/felixmixwr/gestao-sync/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		record.Module,
		planner.Module,
		finsync.Module,
		listener.Module,
		worker.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
