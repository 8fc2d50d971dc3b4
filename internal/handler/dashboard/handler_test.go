package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/hospital-api/internal/model"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

type fakeQuerier struct {
	dashboard *model.Dashboard
	err       error
}

func (f fakeQuerier) Get(context.Context) (*model.Dashboard, error) {
	return f.dashboard, f.err
}

func get(svc Querier) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(&r.RouterGroup)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	return w
}

func TestDashboardShape(t *testing.T) {
	doctor := "Dr. Grey"
	w := get(fakeQuerier{dashboard: &model.Dashboard{
		Stats: model.DashboardStats{DoctorCount: 1, AppointmentCount: 2, PendingCount: 1},
		Appointments: []*model.AppointmentListing{
			{ID: 2, PatientName: "Bo", DoctorName: nil, Date: "2024-01-09", Time: "11:00", Status: model.AppointmentStatusConfirmed},
			{ID: 1, PatientName: "Al", DoctorName: &doctor, Date: "2024-01-08", Time: "10:00", Status: model.AppointmentStatusPending},
		},
	}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"stats": {"doctors": 1, "appointments": 2, "pending": 1},
		"appointments": [
			{"id": 2, "patient_name": "Bo", "doctor": null, "date": "2024-01-09", "time": "11:00", "status": "Confirmed"},
			{"id": 1, "patient_name": "Al", "doctor": "Dr. Grey", "date": "2024-01-08", "time": "10:00", "status": "Pending"}
		]
	}`, w.Body.String())
}

func TestDashboardEmptyListIsArray(t *testing.T) {
	w := get(fakeQuerier{dashboard: &model.Dashboard{Appointments: []*model.AppointmentListing{}}})

	assert.JSONEq(t, `{"stats":{"doctors":0,"appointments":0,"pending":0},"appointments":[]}`, w.Body.String())
}

func TestDashboardError(t *testing.T) {
	w := get(fakeQuerier{err: apperrors.Internal(errors.New("query failed"))})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
