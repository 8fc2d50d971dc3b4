package dashboard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type Querier interface {
	Get(ctx context.Context) (*model.Dashboard, error)
}

type Handler struct {
	svc Querier
}

func NewHandler(svc Querier) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/admin/dashboard", h.Get)
}

func (h *Handler) Get(c *gin.Context) {
	dashboard, err := h.svc.Get(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
