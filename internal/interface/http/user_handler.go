package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-approval/internal/application/user"
	"github.com/oksasatya/go-ddd-user-approval/pkg/response"
)

// UserUseCases groups the use cases behind the /users routes.
type UserUseCases struct {
	Create *user.CreateUser
	Get    *user.GetUser
	List   *user.ListUsers
	Update *user.UpdateUser
	Delete *user.DeleteUser
	Search *user.SearchUsers
}

type UserHandler struct {
	UC     UserUseCases
	Logger *logrus.Logger
}

func NewUserHandler(uc UserUseCases, logger *logrus.Logger) *UserHandler {
	return &UserHandler{UC: uc, Logger: logger}
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,pwd"`
}

type updateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty"`
	Email    *string `json:"email" binding:"omitempty"`
	Password *string `json:"password" binding:"omitempty,pwd"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	out, err := h.UC.Create.Execute(c.Request.Context(), user.CreateUserInput{
		Name: req.Name, Email: req.Email, Password: req.Password,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, out, "user created", nil)
}

func (h *UserHandler) Get(c *gin.Context) {
	out, err := h.UC.Get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "user", nil)
}

func (h *UserHandler) List(c *gin.Context) {
	out, err := h.UC.List.Execute(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "users", map[string]any{"count": len(out)})
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	out, err := h.UC.Update.Execute(c.Request.Context(), c.Param("id"), user.UpdateUserInput{
		Name: req.Name, Email: req.Email, Password: req.Password,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "user updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.UC.Delete.Execute(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Search runs a full text query: GET /users/search?q=ana&size=10
func (h *UserHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	out, err := h.UC.Search.Execute(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "search results", map[string]any{"count": len(out)})
}
