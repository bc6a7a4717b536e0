package estimate

import (
	"github.com/markahope-aag/hazardos-sub007/internal/estimate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("estimate.service",
	fx.Provide(service.NewFactory),
)
