// Package domain contains the organization-scoped rate table models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// LaborRate prices one labor role by the hour.
type LaborRate struct {
	ID           snowflake.ID      `json:"id" gorm:"primaryKey"`
	OrgID        snowflake.ID      `json:"organization_id" gorm:"column:org_id;not null;index"`
	RoleTitle    string            `json:"role_title" gorm:"type:text;not null"`
	HourlyRate   float64           `json:"hourly_rate" gorm:"not null"`
	OvertimeRate float64           `json:"overtime_rate" gorm:"not null;default:0"`
	Active       bool              `json:"is_active" gorm:"column:active;not null;default:true"`
	Metadata     datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt    time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (LaborRate) TableName() string { return "labor_rates" }

// EquipmentRate prices one rentable equipment item. At least one of the
// rate columns is populated.
type EquipmentRate struct {
	ID          snowflake.ID      `json:"id" gorm:"primaryKey"`
	OrgID       snowflake.ID      `json:"organization_id" gorm:"column:org_id;not null;index"`
	Name        string            `json:"name" gorm:"type:text;not null"`
	HourlyRate  *float64          `json:"hourly_rate,omitempty"`
	DailyRate   *float64          `json:"daily_rate,omitempty"`
	WeeklyRate  *float64          `json:"weekly_rate,omitempty"`
	MonthlyRate *float64          `json:"monthly_rate,omitempty"`
	Active      bool              `json:"is_active" gorm:"column:active;not null;default:true"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt   time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (EquipmentRate) TableName() string { return "equipment_rates" }

// MaterialCost prices one consumable material per unit.
type MaterialCost struct {
	ID        snowflake.ID      `json:"id" gorm:"primaryKey"`
	OrgID     snowflake.ID      `json:"organization_id" gorm:"column:org_id;not null;index"`
	Name      string            `json:"name" gorm:"type:text;not null"`
	Unit      string            `json:"unit" gorm:"type:text;not null"`
	UnitCost  float64           `json:"unit_cost" gorm:"not null"`
	Active    bool              `json:"is_active" gorm:"column:active;not null;default:true"`
	Metadata  datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (MaterialCost) TableName() string { return "material_costs" }

// DisposalFee prices hazardous waste disposal per unit volume. HazardCode
// may be more granular than a survey hazard type (friable vs non-friable
// asbestos, for example).
type DisposalFee struct {
	ID         snowflake.ID      `json:"id" gorm:"primaryKey"`
	OrgID      snowflake.ID      `json:"organization_id" gorm:"column:org_id;not null;index"`
	HazardCode string            `json:"hazard_code" gorm:"type:text;not null"`
	Unit       string            `json:"unit" gorm:"type:text;not null"`
	UnitCost   float64           `json:"unit_cost" gorm:"not null"`
	Active     bool              `json:"is_active" gorm:"column:active;not null;default:true"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt  time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (DisposalFee) TableName() string { return "disposal_fees" }

// TravelRate prices crew mobilization. At least one of FlatFee or
// PerMileRate is populated.
type TravelRate struct {
	ID          snowflake.ID      `json:"id" gorm:"primaryKey"`
	OrgID       snowflake.ID      `json:"organization_id" gorm:"column:org_id;not null;index"`
	FlatFee     *float64          `json:"flat_fee,omitempty"`
	PerMileRate *float64          `json:"per_mile_rate,omitempty"`
	MinimumFee  *float64          `json:"minimum_fee,omitempty"`
	Active      bool              `json:"is_active" gorm:"column:active;not null;default:true"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt   time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (TravelRate) TableName() string { return "travel_rates" }

// PricingSetting holds organization pricing policy. At most one active row
// per organization.
type PricingSetting struct {
	ID                     snowflake.ID `json:"id" gorm:"primaryKey"`
	OrgID                  snowflake.ID `json:"organization_id" gorm:"column:org_id;not null;uniqueIndex"`
	DefaultMarkupPercent   float64      `json:"default_markup_percentage" gorm:"not null;default:0"`
	MinimumMarkupPercent   float64      `json:"minimum_markup_percentage" gorm:"not null;default:0"`
	MaximumDiscountPercent float64      `json:"maximum_discount_percentage" gorm:"not null;default:0"`
	Active                 bool         `json:"is_active" gorm:"column:active;not null;default:true"`
	CreatedAt              time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt              time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PricingSetting) TableName() string { return "pricing_settings" }
