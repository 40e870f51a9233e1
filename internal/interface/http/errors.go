package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-approval/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-approval/pkg/response"
	"github.com/oksasatya/go-ddd-user-approval/pkg/validation"
)

// respondError maps domain errors to status codes. Anything unrecognised is logged and
// reported as a generic 500.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var invalid *entity.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		response.Error[any](c, http.StatusBadRequest, invalid.Reason, nil)
	case errors.Is(err, entity.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, entity.ErrAlreadyExists):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, entity.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	default:
		logger.WithError(err).
			WithField("request_id", c.GetString("request_id")).
			WithField("path", c.FullPath()).
			Error("request failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}

func respondBindError(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
