// Package domain contains the site survey model and validation rules.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// HazardType classifies the contamination found at a site.
type HazardType string

const (
	HazardAsbestos    HazardType = "asbestos"
	HazardMold        HazardType = "mold"
	HazardLead        HazardType = "lead"
	HazardVermiculite HazardType = "vermiculite"
	HazardOther       HazardType = "other"
)

// Valid reports whether the hazard type is one of the recognized values.
func (h HazardType) Valid() bool {
	switch h {
	case HazardAsbestos, HazardMold, HazardLead, HazardVermiculite, HazardOther:
		return true
	default:
		return false
	}
}

// Containment levels run 1 (least strict) through 4 (full isolation).
const (
	ContainmentLevelMin = 1
	ContainmentLevelMax = 4
)

// SiteSurvey records the field assessment of a remediation job. At most one
// of AreaSqft, LinearFt and VolumeCuft is authoritative; the others may be
// nil. Free-text fields are informational only and never priced.
type SiteSurvey struct {
	ID               snowflake.ID `json:"id" gorm:"primaryKey"`
	OrgID            snowflake.ID `json:"organization_id" gorm:"column:org_id;not null;index"`
	HazardType       HazardType   `json:"hazard_type" gorm:"type:text;not null"`
	ContainmentLevel int          `json:"containment_level" gorm:"not null;default:1"`

	AreaSqft   *float64 `json:"area_sqft,omitempty"`
	LinearFt   *float64 `json:"linear_ft,omitempty"`
	VolumeCuft *float64 `json:"volume_cuft,omitempty"`

	Occupied                      bool `json:"occupied" gorm:"not null;default:false"`
	ClearanceRequired             bool `json:"clearance_required" gorm:"not null;default:false"`
	RegulatoryNotificationsNeeded bool `json:"regulatory_notifications_needed" gorm:"not null;default:false"`

	AccessIssues      *string           `json:"access_issues,omitempty" gorm:"type:text"`
	SpecialConditions *string           `json:"special_conditions,omitempty" gorm:"type:text"`
	Notes             *string           `json:"notes,omitempty" gorm:"type:text"`
	Metadata          datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (SiteSurvey) TableName() string { return "site_surveys" }
