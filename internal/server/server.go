package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/markahope-aag/hazardos-sub007/internal/config"
	"github.com/markahope-aag/hazardos-sub007/internal/estimate"
	estimatedomain "github.com/markahope-aag/hazardos-sub007/internal/estimate/domain"
	"github.com/markahope-aag/hazardos-sub007/internal/observability"
	obsmiddleware "github.com/markahope-aag/hazardos-sub007/internal/observability/logger"
	obsmetrics "github.com/markahope-aag/hazardos-sub007/internal/observability/metrics"
	"github.com/markahope-aag/hazardos-sub007/internal/ratetable"
	ratetabledomain "github.com/markahope-aag/hazardos-sub007/internal/ratetable/domain"
	"github.com/markahope-aag/hazardos-sub007/internal/survey"
	surveydomain "github.com/markahope-aag/hazardos-sub007/internal/survey/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	ratetable.Module,
	survey.Module,
	estimate.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug: obsCfg.Debug(),
	}))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	log    *zap.Logger

	surveySvc       surveydomain.Service
	estimateFactory estimatedomain.Factory
	rateProvider    ratetabledomain.Provider
	metrics         *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Log             *zap.Logger
	SurveySvc       surveydomain.Service
	EstimateFactory estimatedomain.Factory
	RateProvider    ratetabledomain.Provider
	Metrics         *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		log:             p.Log.Named("http.server"),
		surveySvc:       p.SurveySvc,
		estimateFactory: p.EstimateFactory,
		rateProvider:    p.RateProvider,
		metrics:         p.Metrics,
	}
}

func (s *Server) RegisterRoutes() {
	v1 := s.engine.Group("/v1")
	v1.Use(s.RequireOrg())

	v1.POST("/surveys", s.CreateSurvey)
	v1.GET("/surveys", s.ListSurveys)
	v1.GET("/surveys/:id", s.GetSurvey)
	v1.POST("/surveys/:id/estimate", s.EstimateSurvey)
	v1.GET("/rate-tables", s.GetRateTables)
}
