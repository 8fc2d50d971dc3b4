package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "Pending"
	AppointmentStatusConfirmed AppointmentStatus = "Confirmed"
	AppointmentStatusRejected  AppointmentStatus = "Rejected"
)

// Valid reports whether s is one of the three stored status literals.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusRejected:
		return true
	}
	return false
}

// DateLayout is the only accepted appointment date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

type Appointment struct {
	ID          int64             `db:"id" json:"id"`
	PatientName string            `db:"patient_name" json:"patient_name"`
	Email       string            `db:"email" json:"email"`
	DoctorID    int64             `db:"doctor_id" json:"doctor_id"`
	Date        string            `db:"date" json:"date"`
	Time        string            `db:"time" json:"time"`
	Status      AppointmentStatus `db:"status" json:"status"`
}

// ID is an integer key that also decodes from a quoted decimal string, as
// sent by form-driven frontends ("doctor_id": "3").
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*id = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", s, err)
		}
		*id = ID(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n)
	return nil
}

type BookAppointmentRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	DoctorID ID     `json:"doctor_id" validate:"gt=0"`
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time" validate:"required"`
}

type BookAppointmentResponse struct {
	Message string `json:"message"`
}

// BookingResult is what the booking service hands back after the row has
// been committed. Notification carries the outcome of the doctor email,
// which never affects whether the booking itself succeeded.
type BookingResult struct {
	Appointment  *Appointment       `json:"appointment"`
	Notification NotificationResult `json:"notification"`
}

// StatusChange is the payload of an appointment.status_changed event.
type StatusChange struct {
	AppointmentID int64             `json:"appointment_id"`
	Status        AppointmentStatus `json:"status"`
	RowsAffected  int64             `json:"rows_affected"`
}

func (c StatusChange) String() string {
	return fmt.Sprintf("appointment %d -> %s (%d rows)", c.AppointmentID, c.Status, c.RowsAffected)
}
