package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDDecodesNumberOrString(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{`{"doctor_id":3}`, 3},
		{`{"doctor_id":"3"}`, 3},
		{`{"doctor_id":""}`, 0},
		{`{"doctor_id":null}`, 0},
		{`{}`, 0},
	}

	for _, tt := range tests {
		var req BookAppointmentRequest
		require.NoError(t, json.Unmarshal([]byte(tt.in), &req), tt.in)
		assert.Equal(t, tt.want, req.DoctorID, tt.in)
	}
}

func TestIDRejectsNonNumeric(t *testing.T) {
	for _, in := range []string{`{"doctor_id":"x1"}`, `{"doctor_id":1.5}`, `{"doctor_id":true}`} {
		var req BookAppointmentRequest
		assert.Error(t, json.Unmarshal([]byte(in), &req), in)
	}
}

func TestAppointmentStatusValid(t *testing.T) {
	for _, s := range []AppointmentStatus{AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusRejected} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, AppointmentStatus("pending").Valid())
	assert.False(t, AppointmentStatus("").Valid())
}
