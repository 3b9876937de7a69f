package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicdesk/emr-api/internal/api"
	"github.com/clinicdesk/emr-api/internal/api/handler"
	"github.com/clinicdesk/emr-api/internal/core/guard"
	"github.com/clinicdesk/emr-api/internal/core/ports"
	"github.com/clinicdesk/emr-api/internal/core/service"
	"github.com/clinicdesk/emr-api/internal/infrastructure/config"
	"github.com/clinicdesk/emr-api/internal/infrastructure/credentials"
	mongodb "github.com/clinicdesk/emr-api/internal/infrastructure/db/mongo"
	redisdb "github.com/clinicdesk/emr-api/internal/infrastructure/db/redis"
	"github.com/clinicdesk/emr-api/internal/infrastructure/queue"
	"github.com/clinicdesk/emr-api/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "emr-api",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "emr-api",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect mongo")
	}

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}

	provider, err := credentialProvider(ctx, cfg, db, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init credential provider")
	}

	g, err := guard.New(guard.DefaultPolicy())
	if err != nil {
		log.Fatal().Err(err).Msg("invalid route policy")
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(0, mongodb.NewAuditRepository(db), log)
	dispatcher.Start(workerCtx)

	authService := service.NewAuthService(service.AuthServiceOptions{
		Provider:   provider,
		Sessions:   redisdb.NewSessionRepository(redisClient),
		Audit:      dispatcher,
		JWTSecret:  cfg.Auth.JWTSecret,
		SessionTTL: cfg.Auth.SessionTTL,
		Logger:     log,
	})
	recordService := service.NewRecordService(mongodb.NewRecordRepository(db), cfg.Tables.RecordTables(), log)

	e := api.NewRouter(api.RouterConfig{
		AuthService:   authService,
		RecordService: recordService,
		Guard:         g,
		Audit:         dispatcher,
		CORSOrigin:    cfg.CORSOrigin,
		Logger:        log,
		Checks: map[string]handler.DependencyCheck{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		},
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("auth_provider", cfg.Auth.Provider).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")
	shutdown(log, e, cancelWorkers, mongoClient.Disconnect, redisClient.Close)
}

func credentialProvider(ctx context.Context, cfg *config.Config, db *mongo.Database, log zerolog.Logger) (ports.CredentialProvider, error) {
	if cfg.Auth.Provider == config.ProviderStatic {
		static, err := credentials.NewStaticProvider(credentials.DefaultAccounts(), credentials.WithLatency(cfg.Auth.Latency))
		if err != nil {
			return nil, err
		}
		return static, nil
	}

	accounts := mongodb.NewAccountProvider(db)
	if err := accounts.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	if cfg.Auth.Seed {
		n, err := accounts.Seed(ctx, credentials.DefaultAccounts())
		if err != nil {
			return nil, err
		}
		log.Info().Int("accounts", n).Msg("seeded accounts")
	}
	return accounts, nil
}

func shutdown(log zerolog.Logger, e *echo.Echo, stopWorkers context.CancelFunc, disconnectMongo func(context.Context) error, closeRedis func() error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		if err := e.Close(); err != nil {
			log.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	stopWorkers()

	if err := disconnectMongo(ctx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect error")
	}
	if err := closeRedis(); err != nil {
		log.Error().Err(err).Msg("redis close error")
	}

	log.Info().Msg("server exited cleanly")
}
