package model

type DashboardStats struct {
	DoctorCount      int64 `db:"doctors" json:"doctors"`
	AppointmentCount int64 `db:"appointments" json:"appointments"`
	PendingCount     int64 `db:"pending" json:"pending"`
}

// AppointmentListing is one dashboard row. DoctorName is nil when the
// referenced doctor row does not exist.
type AppointmentListing struct {
	ID          int64             `db:"id" json:"id"`
	PatientName string            `db:"patient_name" json:"patient_name"`
	DoctorName  *string           `db:"doctor" json:"doctor"`
	Date        string            `db:"date" json:"date"`
	Time        string            `db:"time" json:"time"`
	Status      AppointmentStatus `db:"status" json:"status"`
}

type Dashboard struct {
	Stats        DashboardStats        `json:"stats"`
	Appointments []*AppointmentListing `json:"appointments"`
}
