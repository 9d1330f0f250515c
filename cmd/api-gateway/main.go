package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/sba-recon-api/api/swagger"
	"github.com/noah-isme/sba-recon-api/internal/handler"
	"github.com/noah-isme/sba-recon-api/internal/middleware"
	"github.com/noah-isme/sba-recon-api/internal/repository"
	"github.com/noah-isme/sba-recon-api/internal/service"
	rediscache "github.com/noah-isme/sba-recon-api/pkg/cache"
	"github.com/noah-isme/sba-recon-api/pkg/config"
	"github.com/noah-isme/sba-recon-api/pkg/database"
	"github.com/noah-isme/sba-recon-api/pkg/jobs"
	"github.com/noah-isme/sba-recon-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sba-recon-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sba-recon-api/pkg/middleware/requestid"
)

// @title SBA Reconciliation API
// @version 0.1.0
// @description Student billing reconciliation between the SIS and clerk-entered payment records
// @BasePath /
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	// Redis is an accelerator for sealed batch reports, not a dependency:
	// the API serves from postgres when the cache is down.
	redisClient, err := rediscache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, batch report caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	studentRepo := repository.NewStudentRepository(db)
	termRepo := repository.NewTermRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	priceRuleRepo := repository.NewPriceRuleRepository(db)
	feeRuleRepo := repository.NewFeeRuleRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	patternRepo := repository.NewNotePatternRepository(db)
	reconRepo := repository.NewReconciliationRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	pricingSvc := service.NewPricingService(cfg.Rules.FallbackAmount, cfg.Rules.ReadingClassPattern, logr)
	discountSvc := service.NewDiscountService()
	noteParser := service.NewNoteParser()
	discrepancySvc := service.NewDiscrepancyService()

	var reconSvc *service.ReconciliationService
	worker := jobs.NewQueue("reconciliation", func(ctx context.Context, job jobs.Job) error {
		return service.NewBatchWorker(reconSvc, logr).Handle(ctx, job)
	}, jobs.QueueConfig{Workers: 1, BufferSize: cfg.Recon.QueueBuffer, Logger: logr})

	reconSvc = service.NewReconciliationService(service.ReconciliationDeps{
		Students:    studentRepo,
		Terms:       termRepo,
		Enrollments: enrollmentRepo,
		Payments:    paymentRepo,
		PriceRules:  priceRuleRepo,
		FeeRules:    feeRuleRepo,
		Discounts:   discountRepo,
		Patterns:    patternRepo,
		Store:       reconRepo,
		Cache:       cacheRepo,
		Queue:       worker,
		Pricing:     pricingSvc,
		Benefits:    discountSvc,
		Parser:      noteParser,
		Detector:    discrepancySvc,
		Metrics:     metrics,
	}, validate, logr, cfg.Recon)

	authSvc := service.NewAuthService(validate, logr, cfg.JWT, cfg.Auth)
	exportSvc := service.NewExportService(reconRepo, nil, nil, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	reconHandler := handler.NewReconciliationHandler(reconSvc, exportSvc)
	ruleHandler := handler.NewRuleHandler(priceRuleRepo, discountRepo)
	metricsHandler := handler.NewMetricsHandler(metrics)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	{
		protected.POST("/reconciliation/batches", reconHandler.Start)
		protected.GET("/reconciliation/batches/:id", reconHandler.Get)
		protected.POST("/reconciliation/batches/:id/cancel", reconHandler.Cancel)
		protected.GET("/reconciliation/batches/:id/records", reconHandler.Records)
		protected.GET("/reconciliation/batches/:id/export", reconHandler.Export)
		protected.GET("/rules/pricing", ruleHandler.PricingRules)
		protected.GET("/rules/discounts", ruleHandler.DiscountSources)
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker.Start(rootCtx)
	defer worker.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-rootCtx.Done()
	logr.Sugar().Infow("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
}
