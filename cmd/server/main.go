package main

import (
	"context"

	redisv9 "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/leonsos/insightt-test/internal/app/di"
	"github.com/leonsos/insightt-test/internal/app/router"
	authadapters "github.com/leonsos/insightt-test/internal/feature/auth/adapters"
	authhandler "github.com/leonsos/insightt-test/internal/feature/auth/transport/handler"
	authusecase "github.com/leonsos/insightt-test/internal/feature/auth/usecase"
	taskadapters "github.com/leonsos/insightt-test/internal/feature/tasks/adapters"
	taskhandler "github.com/leonsos/insightt-test/internal/feature/tasks/transport/handler"
	taskusecase "github.com/leonsos/insightt-test/internal/feature/tasks/usecase"
	"github.com/leonsos/insightt-test/internal/platform/config"
	"github.com/leonsos/insightt-test/internal/platform/db"
	"github.com/leonsos/insightt-test/internal/platform/logger"
	"github.com/leonsos/insightt-test/internal/platform/notify"
	platformredis "github.com/leonsos/insightt-test/internal/platform/redis"
	"github.com/leonsos/insightt-test/internal/platform/token"
	"github.com/leonsos/insightt-test/internal/shared/ratelimiter"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	appLog := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set, set a strong secret in production")
	}

	// Database
	conn, err := db.Open(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	if cfg.RunMigrations {
		if err := db.Migrate(conn); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
	}

	// Redis is optional: without it the revocation list is process-local.
	var rdb *redisv9.Client
	if cfg.Redis.Addr != "" {
		if rdb, err = platformredis.NewClient(ctx, cfg.Redis); err != nil {
			log.Warn().Msg("redis unavailable, falling back to in-process revocation store")
			rdb = nil
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close redis client")
				}
			}()
		}
	}

	// Repositories
	userRepo := authadapters.NewUserGorm(conn)
	taskRepo := taskadapters.NewTaskGorm(conn)
	revocations := di.NewRevocationStore(rdb)

	// Completion notifications run on their own worker, detached from
	// request handling.
	notifier := notify.NewLogNotifier(cfg.NotifyQueueSize, appLog)
	notifier.Start(ctx)

	// Usecases
	resolver := authusecase.NewIdentityResolver(userRepo)
	logoutUC := authusecase.NewLogoutUsecase(revocations)
	taskUC := taskusecase.NewTaskUsecase(taskRepo, resolver, notifier)

	// Handlers and middleware
	authH := authhandler.NewAuthHandler(logoutUC)
	taskH := taskhandler.NewTaskHandler(taskUC)
	verifier := token.NewJWTVerifier(cfg.JWTSecret)
	authMW := token.AuthRequired(verifier, revocations)

	limiter := ratelimiter.NewRateLimiter(cfg.RatePerMinute, cfg.RateBurst)
	defer limiter.Stop()

	r := router.NewRouter(authH, taskH, authMW, limiter.Middleware(), conn, rdb)

	log.Info().Str("port", cfg.Port).Msg("starting api server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
