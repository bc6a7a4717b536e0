package ratetable

import (
	"github.com/markahope-aag/hazardos-sub007/internal/ratetable/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("ratetable.provider",
	fx.Provide(repository.Provide),
)
