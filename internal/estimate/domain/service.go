package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	surveydomain "github.com/markahope-aag/hazardos-sub007/internal/survey/domain"
)

// Calculator prices surveys for a single organization. Instances cache the
// organization's rate tables after the first calculation and are safe for
// concurrent use.
type Calculator interface {
	CalculateFromSurvey(ctx context.Context, survey *surveydomain.SiteSurvey, opts Options) (*Result, error)
}

// Factory hands out the per-organization calculator instances.
type Factory interface {
	Calculator(orgID snowflake.ID) Calculator
}

var (
	ErrSurveyRequired          = errors.New("survey_required")
	ErrMissingHazardType       = errors.New("missing_hazard_type")
	ErrInvalidHazardType       = errors.New("invalid_hazard_type")
	ErrInvalidContainmentLevel = errors.New("invalid_containment_level")
)
