package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/markahope-aag/hazardos-sub007/internal/config"
	estimateservice "github.com/markahope-aag/hazardos-sub007/internal/estimate/service"
	ratetabledomain "github.com/markahope-aag/hazardos-sub007/internal/ratetable/domain"
	ratetablerepo "github.com/markahope-aag/hazardos-sub007/internal/ratetable/repository"
	"github.com/markahope-aag/hazardos-sub007/internal/seed"
	surveydomain "github.com/markahope-aag/hazardos-sub007/internal/survey/domain"
	surveyservice "github.com/markahope-aag/hazardos-sub007/internal/survey/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) (*gin.Engine, snowflake.ID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&ratetabledomain.LaborRate{},
		&ratetabledomain.EquipmentRate{},
		&ratetabledomain.MaterialCost{},
		&ratetabledomain.DisposalFee{},
		&ratetabledomain.TravelRate{},
		&ratetabledomain.PricingSetting{},
		&surveydomain.SiteSurvey{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	orgID := node.Generate()
	require.NoError(t, seed.EnsureDemoOrg(db, int64(orgID)))

	log := zap.NewNop()
	provider := ratetablerepo.Provide(ratetablerepo.ProviderParam{DB: db})
	surveySvc := surveyservice.NewService(surveyservice.ServiceParam{DB: db, Log: log, GenID: node})
	factory := estimateservice.NewFactory(estimateservice.FactoryParam{Log: log, Provider: provider})

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	srv := NewServer(ServerParams{
		Gin:             engine,
		Cfg:             config.Config{},
		Log:             log,
		SurveySvc:       surveySvc,
		EstimateFactory: factory,
		RateProvider:    provider,
	})
	srv.RegisterRoutes()

	return engine, orgID
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, orgID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if orgID != "" {
		req.Header.Set("X-Org-ID", orgID)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestServer_SurveyLifecycle(t *testing.T) {
	engine, orgID := newTestServer(t)
	org := orgID.String()

	rec := doJSON(t, engine, http.MethodPost, "/v1/surveys", org, map[string]any{
		"hazard_type":                     "asbestos",
		"containment_level":               2,
		"area_sqft":                       1000,
		"clearance_required":              true,
		"regulatory_notifications_needed": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created struct {
		Data struct {
			ID         string `json:"id"`
			HazardType string `json:"hazard_type"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.ID)
	assert.Equal(t, "asbestos", created.Data.HazardType)

	rec = doJSON(t, engine, http.MethodGet, "/v1/surveys/"+created.Data.ID, org, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/v1/surveys", org, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed.Data, 1)
}

func TestServer_EstimateSurvey(t *testing.T) {
	engine, orgID := newTestServer(t)
	org := orgID.String()

	rec := doJSON(t, engine, http.MethodPost, "/v1/surveys", org, map[string]any{
		"hazard_type":                     "asbestos",
		"containment_level":               2,
		"area_sqft":                       1000,
		"clearance_required":              true,
		"regulatory_notifications_needed": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, engine, http.MethodPost, "/v1/surveys/"+created.Data.ID+"/estimate", org, map[string]any{
		"custom_markup": 25,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var estimated struct {
		Data struct {
			LineItems []struct {
				ItemType  string  `json:"item_type"`
				Total     float64 `json:"total"`
				SortOrder int     `json:"sort_order"`
			} `json:"line_items"`
			Subtotal      float64 `json:"subtotal"`
			MarkupPercent float64 `json:"markup_percent"`
			Total         float64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &estimated))
	assert.NotEmpty(t, estimated.Data.LineItems)
	assert.InDelta(t, 25.0, estimated.Data.MarkupPercent, 0.001)
	assert.Greater(t, estimated.Data.Total, estimated.Data.Subtotal)

	// Empty body: organization default markup applies.
	req := httptest.NewRequest(http.MethodPost, "/v1/surveys/"+created.Data.ID+"/estimate", nil)
	req.Header.Set("X-Org-ID", org)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &estimated))
	assert.InDelta(t, 20.0, estimated.Data.MarkupPercent, 0.001)
}

func TestServer_RateTables(t *testing.T) {
	engine, orgID := newTestServer(t)

	rec := doJSON(t, engine, http.MethodGet, "/v1/rate-tables", orgID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data struct {
			LaborRates     []json.RawMessage `json:"LaborRates"`
			EquipmentRates []json.RawMessage `json:"EquipmentRates"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.NotEmpty(t, payload.Data.LaborRates)
	assert.NotEmpty(t, payload.Data.EquipmentRates)
}

func TestServer_ErrorMapping(t *testing.T) {
	engine, orgID := newTestServer(t)
	org := orgID.String()

	// Missing org header with no configured default.
	rec := doJSON(t, engine, http.MethodGet, "/v1/surveys", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/v1/surveys", "not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/v1/surveys", org, map[string]any{
		"hazard_type":       "radon",
		"containment_level": 1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Error struct {
			Type string `json:"type"`
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Error.Type)
	assert.Equal(t, "invalid_hazard_type", body.Error.Code)

	rec = doJSON(t, engine, http.MethodGet, "/v1/surveys/123456789", org, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_DefaultOrgFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&surveydomain.SiteSurvey{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	defaultOrg := node.Generate()

	log := zap.NewNop()
	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())
	srv := NewServer(ServerParams{
		Gin:             engine,
		Cfg:             config.Config{DefaultOrgID: int64(defaultOrg)},
		Log:             log,
		SurveySvc:       surveyservice.NewService(surveyservice.ServiceParam{DB: db, Log: log, GenID: node}),
		EstimateFactory: estimateservice.NewFactory(estimateservice.FactoryParam{Log: log, Provider: nil}),
		RateProvider:    nil,
	})
	srv.RegisterRoutes()

	rec := doJSON(t, engine, http.MethodPost, "/v1/surveys", "", map[string]any{
		"hazard_type":       "mold",
		"containment_level": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created struct {
		Data struct {
			OrgID string `json:"organization_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, defaultOrg.String(), created.Data.OrgID)
}
