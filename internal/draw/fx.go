package draw

import (
	"github.com/smallbiznis/whateat/internal/draw/repository"
	"github.com/smallbiznis/whateat/internal/draw/service"
	"go.uber.org/fx"
)

var Module = fx.Module("draw.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
