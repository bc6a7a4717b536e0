package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	surveydomain "github.com/markahope-aag/hazardos-sub007/internal/survey/domain"
	"github.com/markahope-aag/hazardos-sub007/pkg/db/option"
	"github.com/markahope-aag/hazardos-sub007/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	log *zap.Logger

	genID *snowflake.Node
	repo  repository.Repository[surveydomain.SiteSurvey]
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

func NewService(p ServiceParam) surveydomain.Service {
	return &Service{
		log:   p.Log.Named("survey.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[surveydomain.SiteSurvey](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, orgID snowflake.ID, req surveydomain.CreateRequest) (*surveydomain.SiteSurvey, error) {
	if orgID == 0 {
		return nil, surveydomain.ErrInvalidOrganization
	}

	hazard := surveydomain.HazardType(strings.ToLower(strings.TrimSpace(string(req.HazardType))))
	if !hazard.Valid() {
		return nil, surveydomain.ErrInvalidHazardType
	}
	if req.ContainmentLevel < surveydomain.ContainmentLevelMin || req.ContainmentLevel > surveydomain.ContainmentLevelMax {
		return nil, surveydomain.ErrInvalidContainmentLevel
	}

	row := &surveydomain.SiteSurvey{
		ID:               s.genID.Generate(),
		OrgID:            orgID,
		HazardType:       hazard,
		ContainmentLevel: req.ContainmentLevel,

		AreaSqft:   req.AreaSqft,
		LinearFt:   req.LinearFt,
		VolumeCuft: req.VolumeCuft,

		Occupied:                      req.Occupied,
		ClearanceRequired:             req.ClearanceRequired,
		RegulatoryNotificationsNeeded: req.RegulatoryNotificationsNeeded,

		AccessIssues:      req.AccessIssues,
		SpecialConditions: req.SpecialConditions,
		Notes:             req.Notes,
	}
	if len(req.Metadata) > 0 {
		row.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	s.log.Info("survey created",
		zap.String("survey_id", row.ID.String()),
		zap.String("org_id", orgID.String()),
		zap.String("hazard_type", string(hazard)),
	)
	return row, nil
}

func (s *Service) Get(ctx context.Context, orgID snowflake.ID, id string) (*surveydomain.SiteSurvey, error) {
	surveyID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, surveydomain.ErrInvalidID
	}

	row, err := s.repo.FindOne(ctx, &surveydomain.SiteSurvey{ID: surveyID, OrgID: orgID})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, surveydomain.ErrNotFound
	}
	return row, nil
}

func (s *Service) List(ctx context.Context, orgID snowflake.ID) ([]*surveydomain.SiteSurvey, error) {
	if orgID == 0 {
		return nil, surveydomain.ErrInvalidOrganization
	}
	return s.repo.Find(ctx, &surveydomain.SiteSurvey{OrgID: orgID}, option.WithOrder("created_at DESC"))
}
