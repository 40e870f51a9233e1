package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-approval/internal/application/approval"
	"github.com/oksasatya/go-ddd-user-approval/internal/application/user"
	"github.com/oksasatya/go-ddd-user-approval/pkg/response"
)

// ApprovalEnqueuer hands an approval request to the workflow worker and returns its request id.
type ApprovalEnqueuer interface {
	Enqueue(ctx context.Context, data user.CreateUserInput) (string, error)
}

type ApprovalHandler struct {
	Queue  ApprovalEnqueuer
	Runs   approval.RunStore
	Logger *logrus.Logger
}

func NewApprovalHandler(queue ApprovalEnqueuer, runs approval.RunStore, logger *logrus.Logger) *ApprovalHandler {
	return &ApprovalHandler{Queue: queue, Runs: runs, Logger: logger}
}

// Submit accepts any JSON object as user data; validation is the first workflow step.
func (h *ApprovalHandler) Submit(c *gin.Context) {
	if h.Queue == nil {
		response.Error[any](c, http.StatusServiceUnavailable, "approval queue not configured", nil)
		return
	}
	var req user.CreateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	requestID, err := h.Queue.Enqueue(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"request_id": requestID}, "approval request queued", nil)
}

func (h *ApprovalHandler) GetRun(c *gin.Context) {
	run, err := h.Runs.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, approval.ErrRunNotFound) {
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
		return
	}
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, run, "approval run", nil)
}

func (h *ApprovalHandler) ListRuns(c *gin.Context) {
	runs, err := h.Runs.ListByRequest(c.Request.Context(), c.Param("request_id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, runs, "approval runs", map[string]any{"count": len(runs)})
}
