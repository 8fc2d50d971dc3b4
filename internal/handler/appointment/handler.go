package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/model"
	appointmentservice "github.com/jwalitptl/hospital-api/internal/service/appointment"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

// BookingSuccessMessage is returned for every recorded booking, whatever
// happened to the doctor notification.
const BookingSuccessMessage = "Appointment request submitted successfully"

type Booker interface {
	Book(ctx context.Context, req *model.BookAppointmentRequest) (*model.BookingResult, error)
}

type Handler struct {
	svc Booker
}

func NewHandler(svc Booker) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointment")
	{
		appointments.POST("/book", h.Book)
	}
}

func (h *Handler) Book(c *gin.Context) {
	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, bindError(err))
		return
	}

	if _, err := h.svc.Book(c.Request.Context(), &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.BookAppointmentResponse{Message: BookingSuccessMessage})
}

// bindError reports a date of the wrong JSON type the same way as a
// malformed date string.
func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field == "date" {
		return appointmentservice.ErrInvalidDateFormat
	}
	return apperrors.BadRequest("invalid request body", err)
}
