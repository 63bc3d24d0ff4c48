package main

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-sleep-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-sleep-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-sleep-engine/internal/config"
	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/workers"
)

// application is the wired server: storage, services, background worker and router.
type application struct {
	router *gin.Engine
	store  *repository.Store
	redis  *redis.Client
	seeds  *workers.SeedWorker
	logger *zap.Logger
}

func newApplication(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*application, error) {
	var rdb *redis.Client
	if cfg.RedisEnabled() {
		client, err := cache.NewRedisClient(ctx, cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("redis unavailable, continuing without cache and rate limiting", zap.Error(err))
		} else {
			rdb = client
			logger.Info("redis connected", zap.String("host", cfg.RedisHost))
		}
	}

	store, err := repository.NewStore(ctx, cfg, rdb, logger)
	if err != nil {
		if rdb != nil {
			_ = rdb.Close()
		}
		return nil, err
	}
	logger.Info("storage ready", zap.String("backend", store.Backend))

	var resetStore services.ResetTokenStore = cache.NewMemoryResetTokenStore()
	if rdb != nil {
		resetStore = cache.NewRedisResetTokenStore(rdb)
	}

	generator := services.NewDefaultDataGenerator(nil)
	predictor := services.NewScorePredictor(
		services.NewKNNPredictor(cfg.PredictorNeighbours),
		cfg.PredictorMinSamples,
		logger,
	)

	sleepService := services.NewSleepService(store.Entries, generator)
	statsService := services.NewStatsService(store.Entries, predictor, generator)
	seedWorker := workers.NewSeedWorker(sleepService, logger)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, store.Users)
	authService := services.NewAuthService(store.Users, tokenService, seedWorker, services.PasswordResetConfig{
		Store:    resetStore,
		Notifier: services.NewLogResetNotifier(logger),
		TTL:      cfg.ResetTokenTTL,
	}, logger)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:  adapterHTTP.NewAuthHandler(authService, logger),
		SleepHandler: adapterHTTP.NewSleepHandler(sleepService, logger),
		StatsHandler: adapterHTTP.NewStatsHandler(statsService, logger),
		TokenService: tokenService,
		Store:        store,
		Redis:        rdb,
		Logger:       logger,
		CORSOrigins:  cfg.CORSOrigins,
		RateLimit:    cfg.RateLimit,
		RateWindow:   cfg.RateWindow,
		StartTime:    time.Now(),
	})

	return &application{
		router: router,
		store:  store,
		redis:  rdb,
		seeds:  seedWorker,
		logger: logger,
	}, nil
}

func (a *application) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	errs = append(errs, a.store.Close())
	return errors.Join(errs...)
}
