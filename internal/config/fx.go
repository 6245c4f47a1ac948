package config

import "go.uber.org/fx"

// Module wires application and sync configuration.
var Module = fx.Module("config",
	fx.Provide(
		Load,
		NewSyncConfigHolder,
	),
)
