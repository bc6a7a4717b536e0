package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	surveydomain "github.com/markahope-aag/hazardos-sub007/internal/survey/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (surveydomain.Service, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&surveydomain.SiteSurvey{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(ServiceParam{DB: db, Log: zap.NewNop(), GenID: node}), node
}

func fptr(v float64) *float64 { return &v }

func TestSurvey_CreateAndGet(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()

	created, err := svc.Create(ctx, orgID, surveydomain.CreateRequest{
		HazardType:        "  Asbestos ",
		ContainmentLevel:  2,
		AreaSqft:          fptr(1000),
		ClearanceRequired: true,
		Metadata:          map[string]any{"inspector": "j.ortega"},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, surveydomain.HazardAsbestos, created.HazardType)
	assert.Equal(t, orgID, created.OrgID)

	got, err := svc.Get(ctx, orgID, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 2, got.ContainmentLevel)
	require.NotNil(t, got.AreaSqft)
	assert.InDelta(t, 1000.0, *got.AreaSqft, 0.001)
	assert.True(t, got.ClearanceRequired)
}

func TestSurvey_CreateValidation(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()

	_, err := svc.Create(ctx, 0, surveydomain.CreateRequest{HazardType: "mold", ContainmentLevel: 1})
	assert.ErrorIs(t, err, surveydomain.ErrInvalidOrganization)

	_, err = svc.Create(ctx, orgID, surveydomain.CreateRequest{HazardType: "radon", ContainmentLevel: 1})
	assert.ErrorIs(t, err, surveydomain.ErrInvalidHazardType)

	_, err = svc.Create(ctx, orgID, surveydomain.CreateRequest{HazardType: "mold", ContainmentLevel: 0})
	assert.ErrorIs(t, err, surveydomain.ErrInvalidContainmentLevel)

	_, err = svc.Create(ctx, orgID, surveydomain.CreateRequest{HazardType: "mold", ContainmentLevel: 5})
	assert.ErrorIs(t, err, surveydomain.ErrInvalidContainmentLevel)
}

func TestSurvey_GetScopedToOrg(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()
	orgA := node.Generate()
	orgB := node.Generate()

	created, err := svc.Create(ctx, orgA, surveydomain.CreateRequest{HazardType: "lead", ContainmentLevel: 1})
	require.NoError(t, err)

	_, err = svc.Get(ctx, orgB, created.ID.String())
	assert.ErrorIs(t, err, surveydomain.ErrNotFound)

	_, err = svc.Get(ctx, orgA, "not-a-snowflake")
	assert.ErrorIs(t, err, surveydomain.ErrInvalidID)
}

func TestSurvey_List(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()
	other := node.Generate()

	for _, hazard := range []surveydomain.HazardType{"mold", "lead", "other"} {
		_, err := svc.Create(ctx, orgID, surveydomain.CreateRequest{HazardType: hazard, ContainmentLevel: 1})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, other, surveydomain.CreateRequest{HazardType: "mold", ContainmentLevel: 1})
	require.NoError(t, err)

	rows, err := svc.List(ctx, orgID)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, orgID, row.OrgID)
	}

	_, err = svc.List(ctx, 0)
	assert.ErrorIs(t, err, surveydomain.ErrInvalidOrganization)
}
