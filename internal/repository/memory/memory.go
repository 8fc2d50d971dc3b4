// Package memory is an in-process implementation of the repository
// interfaces. It backs `serve --in-memory` and the HTTP-level tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/security"
)

type Store struct {
	mu           sync.RWMutex
	admins       map[string]model.Admin
	doctors      map[int64]model.Doctor
	appointments []model.Appointment
	nextID       map[string]int64
}

func NewStore() *Store {
	return &Store{
		admins:  make(map[string]model.Admin),
		doctors: make(map[int64]model.Doctor),
		nextID:  make(map[string]int64),
	}
}

func (s *Store) id(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// SeedAdmin mirrors postgres.SeedAdmin.
func (s *Store) SeedAdmin(hasher security.PasswordHasher, username, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.admins) > 0 {
		return false, nil
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return false, err
	}
	s.admins[username] = model.Admin{ID: s.id("admins"), Username: username, PasswordHash: hash}
	return true, nil
}

// AdminCount is used by tests to check seeding.
func (s *Store) AdminCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.admins)
}

// DeleteDoctor removes a doctor row, leaving its appointments behind.
func (s *Store) DeleteDoctor(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.doctors, id)
}

// Appointment returns a copy of one stored appointment.
func (s *Store) Appointment(id int64) (model.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.appointments {
		if a.ID == id {
			return a, true
		}
	}
	return model.Appointment{}, false
}

func (s *Store) Admins() repository.AdminRepository { return adminRepo{s} }

func (s *Store) Doctors() repository.DoctorRepository { return doctorRepo{s} }

func (s *Store) Appointments() repository.AppointmentRepository { return appointmentRepo{s} }

type adminRepo struct{ s *Store }

func (r adminRepo) GetByUsername(_ context.Context, username string) (*model.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.admins[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

type doctorRepo struct{ s *Store }

func (r doctorRepo) Create(_ context.Context, doctor *model.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	doctor.ID = r.s.id("doctors")
	r.s.doctors[doctor.ID] = *doctor
	return nil
}

func (r doctorRepo) GetEmail(_ context.Context, id int64) (string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.doctors[id]
	if !ok {
		return "", repository.ErrNotFound
	}
	return d.Email, nil
}

func (r doctorRepo) Count(context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.doctors)), nil
}

type appointmentRepo struct{ s *Store }

func (r appointmentRepo) Create(_ context.Context, apt *model.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if apt.Status == "" {
		apt.Status = model.AppointmentStatusPending
	}
	if !apt.Status.Valid() {
		return fmt.Errorf("invalid appointment status %q", apt.Status)
	}
	apt.ID = r.s.id("appointments")
	r.s.appointments = append(r.s.appointments, *apt)
	return nil
}

func (r appointmentRepo) UpdateStatus(_ context.Context, id int64, status model.AppointmentStatus) (int64, error) {
	if !status.Valid() {
		return 0, fmt.Errorf("invalid appointment status %q", status)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for i := range r.s.appointments {
		if r.s.appointments[i].ID == id {
			r.s.appointments[i].Status = status
			n++
		}
	}
	return n, nil
}

func (r appointmentRepo) Count(context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.appointments)), nil
}

func (r appointmentRepo) CountByStatus(_ context.Context, status model.AppointmentStatus) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, a := range r.s.appointments {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}

func (r appointmentRepo) ListWithDoctor(context.Context) ([]*model.AppointmentListing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*model.AppointmentListing, 0, len(r.s.appointments))
	for _, a := range r.s.appointments {
		l := &model.AppointmentListing{
			ID:          a.ID,
			PatientName: a.PatientName,
			Date:        a.Date,
			Time:        a.Time,
			Status:      a.Status,
		}
		if d, ok := r.s.doctors[a.DoctorID]; ok {
			name := d.Name
			l.DoctorName = &name
		}
		out = append(out, l)
	}
	// byte-wise string order, same as the postgres query
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}
