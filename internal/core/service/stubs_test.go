package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/medisys/hospital-api/internal/core/domain"
	"github.com/medisys/hospital-api/internal/core/ports"
)

// In-memory repository stubs shared by the service tests. They mirror the
// store's error contract, including the unique email and slot constraints.

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Doctor != nil {
		d := *u.Doctor
		clone.Doctor = &d
	}
	if u.Patient != nil {
		p := *u.Patient
		clone.Patient = &p
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.seq++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) List(_ context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	var matched []*domain.User
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(u.Name), s) && !strings.Contains(u.Email, s) {
				continue
			}
		}
		matched = append(matched, cloneUser(u))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubUserRepo) CountByRole(_ context.Context) (map[domain.Role]int64, error) {
	counts := make(map[domain.Role]int64)
	for _, u := range r.users {
		counts[u.Role]++
	}
	return counts, nil
}

func (r *stubUserRepo) FindRefs(_ context.Context, ids []string) (map[string]ports.UserRef, error) {
	refs := make(map[string]ports.UserRef)
	for _, id := range ids {
		u, ok := r.users[id]
		if !ok {
			continue
		}
		ref := ports.UserRef{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
		if u.Doctor != nil {
			ref.Specialization = u.Doctor.Specialization
		}
		refs[id] = ref
	}
	return refs, nil
}

// mustSeedUser inserts a user directly, bypassing validation.
func (r *stubUserRepo) mustSeedUser(u *domain.User) *domain.User {
	created, err := r.Create(context.Background(), u)
	if err != nil {
		panic(err)
	}
	return created
}

type stubAppointmentRepo struct {
	appts map[string]*domain.Appointment
	seq   int
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{appts: make(map[string]*domain.Appointment)}
}

func cloneAppointment(a *domain.Appointment) *domain.Appointment {
	clone := *a
	return &clone
}

func (r *stubAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if _, err := r.FindActiveSlot(ctx, a.DoctorID, a.Date, a.Time); err == nil {
		return nil, domain.ErrAppointmentConflict
	}
	r.seq++
	created := cloneAppointment(a)
	created.ID = fmt.Sprintf("appt-%d", r.seq)
	r.appts[created.ID] = cloneAppointment(created)
	return created, nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id string) (*domain.Appointment, error) {
	a, ok := r.appts[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	return cloneAppointment(a), nil
}

func (r *stubAppointmentRepo) Update(_ context.Context, a *domain.Appointment) error {
	if _, ok := r.appts[a.ID]; !ok {
		return domain.ErrAppointmentNotFound
	}
	r.appts[a.ID] = cloneAppointment(a)
	return nil
}

func (r *stubAppointmentRepo) FindActiveSlot(_ context.Context, doctorID string, date time.Time, slot string) (*domain.Appointment, error) {
	from, to := domain.DayBucket(date)
	for _, a := range r.appts {
		if a.DoctorID != doctorID || a.Time != slot {
			continue
		}
		if a.Date.Before(from) || !a.Date.Before(to) {
			continue
		}
		for _, st := range domain.ActiveStatuses {
			if a.Status == st {
				return cloneAppointment(a), nil
			}
		}
	}
	return nil, domain.ErrAppointmentNotFound
}

func (r *stubAppointmentRepo) List(_ context.Context, filter ports.ListAppointmentsFilter) ([]*domain.Appointment, int64, error) {
	var matched []*domain.Appointment
	for _, a := range r.appts {
		if filter.DoctorID != "" && a.DoctorID != filter.DoctorID {
			continue
		}
		if filter.PatientID != "" && a.PatientID != filter.PatientID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		matched = append(matched, cloneAppointment(a))
	}
	sort.Slice(matched, func(i, j int) bool {
		less := matched[i].Date.Before(matched[j].Date) ||
			(matched[i].Date.Equal(matched[j].Date) && matched[i].Time < matched[j].Time)
		if filter.NewestFirst {
			return !less
		}
		return less
	})
	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubAppointmentRepo) CountByStatus(_ context.Context) (map[domain.AppointmentStatus]int64, error) {
	counts := make(map[domain.AppointmentStatus]int64)
	for _, a := range r.appts {
		counts[a.Status]++
	}
	return counts, nil
}

func (r *stubAppointmentRepo) CountInWindow(_ context.Context, from, to time.Time) (int64, error) {
	var n int64
	for _, a := range r.appts {
		if !a.Date.Before(from) && a.Date.Before(to) {
			n++
		}
	}
	return n, nil
}

func (r *stubAppointmentRepo) FindRecent(_ context.Context, limit int) ([]*domain.Appointment, error) {
	var all []*domain.Appointment
	for _, a := range r.appts {
		all = append(all, cloneAppointment(a))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

type stubPrescriptionRepo struct {
	prescriptions map[string]*domain.Prescription
	seq           int
}

func newStubPrescriptionRepo() *stubPrescriptionRepo {
	return &stubPrescriptionRepo{prescriptions: make(map[string]*domain.Prescription)}
}

func (r *stubPrescriptionRepo) Create(_ context.Context, p *domain.Prescription) (*domain.Prescription, error) {
	r.seq++
	clone := *p
	clone.ID = fmt.Sprintf("rx-%d", r.seq)
	stored := clone
	r.prescriptions[clone.ID] = &stored
	return &clone, nil
}

func (r *stubPrescriptionRepo) List(_ context.Context, filter ports.ListPrescriptionsFilter) ([]*domain.Prescription, int64, error) {
	var matched []*domain.Prescription
	for _, p := range r.prescriptions {
		if filter.PatientID != "" && p.PatientID != filter.PatientID {
			continue
		}
		if filter.DoctorID != "" && p.DoctorID != filter.DoctorID {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}
