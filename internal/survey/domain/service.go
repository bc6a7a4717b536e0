package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, orgID snowflake.ID, req CreateRequest) (*SiteSurvey, error)
	Get(ctx context.Context, orgID snowflake.ID, id string) (*SiteSurvey, error)
	List(ctx context.Context, orgID snowflake.ID) ([]*SiteSurvey, error)
}

type CreateRequest struct {
	HazardType       HazardType `json:"hazard_type"`
	ContainmentLevel int        `json:"containment_level"`

	AreaSqft   *float64 `json:"area_sqft"`
	LinearFt   *float64 `json:"linear_ft"`
	VolumeCuft *float64 `json:"volume_cuft"`

	Occupied                      bool `json:"occupied"`
	ClearanceRequired             bool `json:"clearance_required"`
	RegulatoryNotificationsNeeded bool `json:"regulatory_notifications_needed"`

	AccessIssues      *string        `json:"access_issues"`
	SpecialConditions *string        `json:"special_conditions"`
	Notes             *string        `json:"notes"`
	Metadata          map[string]any `json:"metadata"`
}

var (
	ErrInvalidOrganization     = errors.New("invalid_organization")
	ErrInvalidHazardType       = errors.New("invalid_hazard_type")
	ErrInvalidContainmentLevel = errors.New("invalid_containment_level")
	ErrInvalidID               = errors.New("invalid_id")
	ErrNotFound                = errors.New("not_found")
)
