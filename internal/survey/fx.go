package survey

import (
	"github.com/markahope-aag/hazardos-sub007/internal/survey/service"
	"go.uber.org/fx"
)

var Module = fx.Module("survey.service",
	fx.Provide(service.NewService),
)
