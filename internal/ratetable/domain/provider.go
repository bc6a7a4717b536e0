package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Tables is the batch of active rate rows for one organization.
type Tables struct {
	LaborRates     []LaborRate
	EquipmentRates []EquipmentRate
	MaterialCosts  []MaterialCost
	DisposalFees   []DisposalFee
	TravelRates    []TravelRate
	PricingSetting *PricingSetting
}

// Provider loads the active rate tables for an organization. Callers cache
// the result; the provider itself is stateless.
type Provider interface {
	Load(ctx context.Context, orgID snowflake.ID) (*Tables, error)
}

var ErrInvalidOrganization = errors.New("invalid_organization")
