package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) error
}

type Handler struct {
	svc Authenticator
}

func NewHandler(svc Authenticator) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	{
		admin.POST("/login", h.Login)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, model.LoginResponse{Message: "invalid request body"})
		return
	}

	if err := h.svc.Login(c.Request.Context(), req.Username, req.Password); err != nil {
		_ = c.Error(err)
		c.JSON(httputil.StatusCode(err), model.LoginResponse{Message: httputil.Message(err)})
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{Success: true})
}
