package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/study-plan-api/api/swagger"
	"github.com/noah-isme/study-plan-api/internal/handler"
	internalmiddleware "github.com/noah-isme/study-plan-api/internal/middleware"
	"github.com/noah-isme/study-plan-api/internal/repository"
	"github.com/noah-isme/study-plan-api/internal/service"
	"github.com/noah-isme/study-plan-api/pkg/cache"
	"github.com/noah-isme/study-plan-api/pkg/config"
	"github.com/noah-isme/study-plan-api/pkg/database"
	"github.com/noah-isme/study-plan-api/pkg/export"
	"github.com/noah-isme/study-plan-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/study-plan-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/study-plan-api/pkg/middleware/requestid"
)

// @title Study Plan API
// @version 0.1.0
// @description Transcript evaluation, prerequisite checking and course recommendations
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	policy, err := service.NewPolicy(cfg.Curriculum)
	if err != nil {
		logr.Fatal("invalid curriculum policy", zap.Error(err))
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}
	readiness := map[string]handler.ReadinessCheck{}

	var catalogSvc *service.CatalogService
	if cfg.Catalog.DatabaseEnabled {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect database", zap.Error(err))
		}
		defer db.Close()
		repo, err := repository.NewCatalogRepository(db, cfg.Catalog.Table, metricsSvc)
		if err != nil {
			logr.Fatal("invalid catalog repository", zap.Error(err))
		}
		readiness["database"] = db.PingContext
		catalogSvc = service.NewCatalogService(repo, cfg.Catalog.CacheTTL, metricsSvc, logr)
	} else {
		catalogSvc = service.NewCatalogService(nil, cfg.Catalog.CacheTTL, metricsSvc, logr)
	}

	var reportCache *service.CacheService
	if cfg.ReportCache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable; report cache disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(client, logr)
			defer cacheRepo.Close() //nolint:errcheck
			readiness["redis"] = cacheRepo.Ping
			reportCache = service.NewCacheService(cacheRepo, metricsSvc, cfg.ReportCache.TTL, logr, true)
		}
	}

	exportSvc := service.NewExportService(logr, export.NewCSVExporter(cfg.Export.CSVByteOrderMark), nil, nil)
	studyPlanSvc := service.NewStudyPlanService(policy, catalogSvc, reportCache, exportSvc, metricsSvc, validator.New(), logr)

	studyPlanHandler := handler.NewStudyPlanHandler(studyPlanSvc, cfg.Uploads.MaxFileSizeBytes)
	policyHandler := handler.NewPolicyHandler(policy)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, readiness)

	r := gin.New()
	r.MaxMultipartMemory = 2 * cfg.Uploads.MaxFileSizeBytes
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc, "/health", "/ready", "/metrics"))
	r.Use(internalmiddleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(strings.TrimRight(cfg.APIPrefix, "/"))
	plans := api.Group("/study-plans")
	plans.POST("/check", studyPlanHandler.Check)
	plans.POST("/export", studyPlanHandler.Export)
	api.GET("/curriculum/policy", policyHandler.Get)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.Bool("db_catalog", catalogSvc.DatabaseEnabled()),
			zap.Bool("report_cache", reportCache.Enabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
