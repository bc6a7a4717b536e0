package service

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	estimatedomain "github.com/markahope-aag/hazardos-sub007/internal/estimate/domain"
	ratetabledomain "github.com/markahope-aag/hazardos-sub007/internal/ratetable/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Factory hands out one calculator per organization so that each instance
// keeps its own rate-table cache. Calculators are created on demand and
// kept for the process lifetime.
type Factory struct {
	log      *zap.Logger
	provider ratetabledomain.Provider

	calculators sync.Map // snowflake.ID -> *Calculator
}

type FactoryParam struct {
	fx.In

	Log      *zap.Logger
	Provider ratetabledomain.Provider
}

func NewFactory(p FactoryParam) estimatedomain.Factory {
	return &Factory{
		log:      p.Log.Named("estimate.factory"),
		provider: p.Provider,
	}
}

func (f *Factory) Calculator(orgID snowflake.ID) estimatedomain.Calculator {
	if existing, ok := f.calculators.Load(orgID); ok {
		return existing.(*Calculator)
	}

	created := NewCalculator(f.provider, f.log, orgID)
	actual, _ := f.calculators.LoadOrStore(orgID, created)
	return actual.(*Calculator)
}
