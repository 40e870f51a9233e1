package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-ddd-user-approval/internal/interface/http"
	"github.com/oksasatya/go-ddd-user-approval/internal/interface/middleware"
)

type ApprovalModule struct {
	Handler *handlers.ApprovalHandler
	RDB     *redis.Client
}

func NewApprovalModule(h *handlers.ApprovalHandler, rdb *redis.Client) *ApprovalModule {
	return &ApprovalModule{Handler: h, RDB: rdb}
}

func (m *ApprovalModule) Register(rg *gin.RouterGroup) {
	submitLimiter := middleware.RateLimit(m.RDB, 30, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/approvals", submitLimiter, m.Handler.Submit)
	rg.GET("/approvals/runs/:id", m.Handler.GetRun)
	rg.GET("/approvals/requests/:request_id/runs", m.Handler.ListRuns)
}
