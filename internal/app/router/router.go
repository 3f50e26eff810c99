// Package router assembles the API server's route table.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authhandler "github.com/leonsos/insightt-test/internal/feature/auth/transport/handler"
	taskhandler "github.com/leonsos/insightt-test/internal/feature/tasks/transport/handler"
	"github.com/leonsos/insightt-test/internal/platform/http/handler"
	"github.com/leonsos/insightt-test/internal/platform/metrics"
	"github.com/leonsos/insightt-test/internal/shared/requestid"
)

// NewRouter builds the Gin engine with all routes registered. Every task
// and auth route sits behind the bearer-token middleware; rate limiting
// runs after it so limits are keyed by verified identity.
func NewRouter(
	authH *authhandler.AuthHandler,
	taskH *taskhandler.TaskHandler,
	authMW gin.HandlerFunc,
	rateMW gin.HandlerFunc,
	conn *gorm.DB,
	rdb *redis.Client,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.Middleware())
	r.Use(metrics.Middleware())

	// Unauthenticated surface: probes and metrics only.
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/healthz/ready", handler.Readiness(conn, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/")
	auth.Use(authMW)
	if rateMW != nil {
		auth.Use(rateMW)
	}
	{
		auth.POST("/tasks", taskH.Create)
		auth.GET("/tasks", taskH.List)
		auth.GET("/tasks/:id", taskH.Get)
		auth.PATCH("/tasks/:id", taskH.Update)
		auth.DELETE("/tasks/:id", taskH.Delete)
		auth.PATCH("/tasks/:id/done", taskH.MarkDone)

		auth.GET("/auth/profile", authH.Profile)
		auth.POST("/auth/logout", authH.Logout)
	}

	return r
}
