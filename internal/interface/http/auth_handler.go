package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-approval/internal/application/user"
	"github.com/oksasatya/go-ddd-user-approval/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-user-approval/pkg/response"
)

type AuthHandler struct {
	Login  *user.Login
	Get    *user.GetUser
	Logger *logrus.Logger
}

func NewAuthHandler(login *user.Login, get *user.GetUser, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Login: login, Get: get, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) PostLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	out, err := h.Login.Execute(c.Request.Context(), user.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "login successful", nil)
}

// Me returns the user behind the bearer token.
func (h *AuthHandler) Me(c *gin.Context) {
	out, err := h.Get.Execute(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "profile", nil)
}
