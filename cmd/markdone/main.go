// Command markdone serves the standalone mark-done function: a second,
// single-purpose entry point that performs the same atomic conditional
// update as the API's mark-done route, directly against the database.
package main

import (
	"context"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/leonsos/insightt-test/internal/app/di"
	authadapters "github.com/leonsos/insightt-test/internal/feature/auth/adapters"
	authusecase "github.com/leonsos/insightt-test/internal/feature/auth/usecase"
	taskadapters "github.com/leonsos/insightt-test/internal/feature/tasks/adapters"
	"github.com/leonsos/insightt-test/internal/feature/tasks/transport/function"
	taskusecase "github.com/leonsos/insightt-test/internal/feature/tasks/usecase"
	"github.com/leonsos/insightt-test/internal/platform/config"
	"github.com/leonsos/insightt-test/internal/platform/db"
	"github.com/leonsos/insightt-test/internal/platform/logger"
	"github.com/leonsos/insightt-test/internal/platform/notify"
	platformredis "github.com/leonsos/insightt-test/internal/platform/redis"
	"github.com/leonsos/insightt-test/internal/platform/token"
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

	conn, err := db.Open(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}

	// Share the API's revocation list when Redis is configured, so a
	// token logged out on the API is also dead here.
	var rdb *redisv9.Client
	if cfg.Redis.Addr != "" {
		if rdb, err = platformredis.NewClient(ctx, cfg.Redis); err != nil {
			log.Warn().Msg("redis unavailable, revocations are process-local")
			rdb = nil
		}
	}

	userRepo := authadapters.NewUserGorm(conn)
	taskRepo := taskadapters.NewTaskGorm(conn)
	revocations := di.NewRevocationStore(rdb)

	notifier := notify.NewLogNotifier(cfg.NotifyQueueSize, appLog)
	notifier.Start(ctx)

	resolver := authusecase.NewIdentityResolver(userRepo)
	taskUC := taskusecase.NewTaskUsecase(taskRepo, resolver, notifier)

	verifier := token.NewJWTVerifier(cfg.JWTSecret)
	fnH := function.NewMarkDoneHandler(taskUC)

	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/", token.AuthRequired(verifier, revocations), fnH.Handle)

	log.Info().Str("port", cfg.Port).Msg("starting mark-done function")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("function stopped")
	}
}
