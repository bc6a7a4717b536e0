package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	ratetabledomain "github.com/markahope-aag/hazardos-sub007/internal/ratetable/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type provider struct {
	db *gorm.DB
}

type ProviderParam struct {
	fx.In

	DB *gorm.DB
}

func Provide(p ProviderParam) ratetabledomain.Provider {
	return &provider{db: p.DB}
}

// Load returns only active rows; inactive configuration never reaches the
// calculator.
func (r *provider) Load(ctx context.Context, orgID snowflake.ID) (*ratetabledomain.Tables, error) {
	if orgID == 0 {
		return nil, ratetabledomain.ErrInvalidOrganization
	}

	tables := &ratetabledomain.Tables{}
	db := r.db.WithContext(ctx)

	if err := db.Where("org_id = ? AND active = ?", orgID, true).
		Order("role_title").
		Find(&tables.LaborRates).Error; err != nil {
		return nil, err
	}
	if err := db.Where("org_id = ? AND active = ?", orgID, true).
		Order("name").
		Find(&tables.EquipmentRates).Error; err != nil {
		return nil, err
	}
	if err := db.Where("org_id = ? AND active = ?", orgID, true).
		Order("name").
		Find(&tables.MaterialCosts).Error; err != nil {
		return nil, err
	}
	if err := db.Where("org_id = ? AND active = ?", orgID, true).
		Order("hazard_code").
		Find(&tables.DisposalFees).Error; err != nil {
		return nil, err
	}
	if err := db.Where("org_id = ? AND active = ?", orgID, true).
		Find(&tables.TravelRates).Error; err != nil {
		return nil, err
	}

	var setting ratetabledomain.PricingSetting
	err := db.Where("org_id = ? AND active = ?", orgID, true).
		First(&setting).Error
	switch {
	case err == nil:
		tables.PricingSetting = &setting
	case err == gorm.ErrRecordNotFound:
		// pricing policy is optional
	default:
		return nil, err
	}

	return tables, nil
}
