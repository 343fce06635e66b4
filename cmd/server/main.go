package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"producer-payout.backend/internal/config"
	domainrepos "producer-payout.backend/internal/domain/repositories"
	"producer-payout.backend/internal/infrastructure/jobs"
	"producer-payout.backend/internal/infrastructure/metrics"
	"producer-payout.backend/internal/infrastructure/models"
	"producer-payout.backend/internal/infrastructure/mongostore"
	"producer-payout.backend/internal/infrastructure/razorpay"
	"producer-payout.backend/internal/infrastructure/repositories"
	"producer-payout.backend/internal/interfaces/http/handlers"
	"producer-payout.backend/internal/interfaces/http/middleware"
	"producer-payout.backend/internal/usecases"
	"producer-payout.backend/pkg/jwt"
	"producer-payout.backend/pkg/logger"
	"producer-payout.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt:          false,
			TranslateError:       true,
			DisableAutomaticPing: true,
		})
	}
	migrateDB = func(db *gorm.DB) error {
		return db.AutoMigrate(&models.Producer{}, &models.ReconciliationFailure{})
	}
	connectMongo = mongostore.Connect
	runServer    = func(srv *http.Server) error { return srv.ListenAndServe() }
	getStdDB     = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		if err := migrateDB(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info(ctx, "Connected to PostgreSQL via GORM")
	}

	producerRepo, closeStore, err := openProducerStore(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.Razorpay.WebhookSecret == "" {
		logger.Warn(ctx, "RAZORPAY_WEBHOOK_SECRET is empty; every webhook will be rejected")
	}

	failureRepo := repositories.NewReconciliationFailureRepository(db)
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)
	appMetrics := metrics.New()
	provider := razorpay.NewClient(razorpay.Config{
		BaseURL:    cfg.Razorpay.BaseURL,
		KeyID:      cfg.Razorpay.KeyID,
		KeySecret:  cfg.Razorpay.KeySecret,
		Timeout:    cfg.Razorpay.Timeout,
		MaxRetries: cfg.Razorpay.MaxRetries,
	})

	webhookUsecase := usecases.NewWebhookUsecase(producerRepo, failureRepo, cfg.Razorpay.WebhookSecret, appMetrics)
	deadLetterUsecase := usecases.NewDeadLetterUsecase(failureRepo, webhookUsecase)
	producerUsecase := usecases.NewProducerUsecase(producerRepo, provider)
	transferUsecase := usecases.NewTransferUsecase(producerRepo, provider)
	paymentUsecase := usecases.NewPaymentUsecase(provider, cfg.Razorpay.KeySecret)

	monitorJob := jobs.NewDeadLetterMonitorJob(deadLetterUsecase, appMetrics, cfg.Jobs.DeadLetterMonitorInterval)
	go monitorJob.Start(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(appMetrics))

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerLandingRoute(r)
	registerMetricsRoute(r, appMetrics.Handler())
	registerStaticRoutes(r, cfg.Server.StaticDir)
	registerAPIV1Routes(r, routeDeps{
		webhookHandler:  handlers.NewWebhookHandler(webhookUsecase),
		producerHandler: handlers.NewProducerHandler(producerUsecase),
		transferHandler: handlers.NewTransferHandler(transferUsecase),
		paymentHandler:  handlers.NewPaymentHandler(paymentUsecase),
		adminHandler:    handlers.NewAdminHandler(deadLetterUsecase),
		authMiddleware:  middleware.AuthMiddleware(jwtService),
		idempotency:     middleware.IdempotencyMiddleware(redis.NewResponseStore("idempotency")),
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
		case <-ctx.Done():
			return
		}
		logger.Info(context.Background(), "Shutting down server")
		monitorJob.Stop()
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(context.Background(), "Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info(ctx, "Producer payout backend starting",
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Driver),
	)
	if err := runServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// openProducerStore picks the producer document store from config
func openProducerStore(ctx context.Context, cfg *config.Config, db *gorm.DB) (domainrepos.ProducerRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		return repositories.NewProducerRepository(db), func() {}, nil
	case config.StoreDriverMongo:
		client, err := connectMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		if err := mongostore.EnsureIndexes(ctx, coll); err != nil {
			logger.Warn(ctx, "Failed to ensure mongo indexes", zap.Error(err))
		}
		logger.Info(ctx, "Connected to MongoDB", zap.String("database", cfg.Mongo.Database))
		return mongostore.NewProducerStore(coll), disconnectMongo(client), nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func disconnectMongo(client *mongo.Client) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Error(ctx, "Failed to disconnect mongo", zap.Error(err))
		}
	}
}
