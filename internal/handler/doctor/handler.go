package doctor

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

const (
	ConfirmedMessage = "Appointment Confirmed Successfully"
	RejectedMessage  = "Appointment Rejected"
	notFoundMessage  = "404 page not found"
)

// StatusUpdater moves an appointment to Confirmed or Rejected.
type StatusUpdater interface {
	Confirm(ctx context.Context, id int64) error
	Reject(ctx context.Context, id int64) error
}

type Handler struct {
	svc StatusUpdater
}

func NewHandler(svc StatusUpdater) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the links sent to doctors. They are plain GETs so a
// doctor can follow them straight from a mail client.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctor := r.Group("/doctor")
	{
		doctor.GET("/confirm/:id", h.Confirm)
		doctor.GET("/reject/:id", h.Reject)
	}
}

func (h *Handler) Confirm(c *gin.Context) {
	h.update(c, h.svc.Confirm, ConfirmedMessage)
}

func (h *Handler) Reject(c *gin.Context) {
	h.update(c, h.svc.Reject, RejectedMessage)
}

func (h *Handler) update(c *gin.Context, fn func(context.Context, int64) error, message string) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		httputil.RespondWithText(c, http.StatusNotFound, notFoundMessage)
		return
	}

	if err := fn(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		httputil.RespondWithText(c, httputil.StatusCode(err), httputil.Message(err))
		return
	}

	httputil.RespondWithText(c, http.StatusOK, message)
}

// parseID accepts unsigned decimal ids only; "-1", "+1" and "abc" do not
// name an appointment route.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseUint(raw, 10, 63)
	if err != nil {
		return 0, false
	}
	return int64(id), true
}
