package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-approval/config"
	handlers "github.com/oksasatya/go-ddd-user-approval/internal/interface/http"
	"github.com/oksasatya/go-ddd-user-approval/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-user-approval/pkg/validation"
)

// NewEngine returns a gin engine with the global middleware and the unversioned
// /healthz and /docs/openapi.json routes.
func NewEngine(cfg *config.Config, logger *logrus.Logger) *gin.Engine {
	validation.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())

	// cors.New panics on an empty origin list
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if cfg.HTTPLogEnabled {
		r.Use(middleware.RequestLogger(logger))
	}

	r.GET("/healthz", handlers.Health)
	r.GET("/docs", handlers.SwaggerUI)
	r.GET("/docs/openapi.json", handlers.OpenAPI)
	return r
}
