package selector

import "go.uber.org/fx"

var Module = fx.Module("selector",
	fx.Provide(New),
)
