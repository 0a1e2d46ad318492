package handler

import (
	"context"

	"github.com/medisys/hospital-api/internal/core/domain"
	"github.com/medisys/hospital-api/internal/core/ports"
)

// Service stubs shared by the handler tests. They record the inputs the
// handler forwarded and return canned results.

type stubAppointmentService struct {
	view *ports.AppointmentView
	page *ports.AppointmentPage
	err  error

	gotBook   ports.BookAppointmentInput
	gotStatus ports.UpdateStatusInput
	gotCancel ports.CancelAppointmentInput
	gotList   ports.ListAppointmentsInput
}

func (s *stubAppointmentService) Book(_ context.Context, in ports.BookAppointmentInput) (*ports.AppointmentView, error) {
	s.gotBook = in
	return s.view, s.err
}

func (s *stubAppointmentService) UpdateStatus(_ context.Context, in ports.UpdateStatusInput) (*ports.AppointmentView, error) {
	s.gotStatus = in
	return s.view, s.err
}

func (s *stubAppointmentService) Cancel(_ context.Context, in ports.CancelAppointmentInput) (*ports.AppointmentView, error) {
	s.gotCancel = in
	return s.view, s.err
}

func (s *stubAppointmentService) List(_ context.Context, in ports.ListAppointmentsInput) (*ports.AppointmentPage, error) {
	s.gotList = in
	return s.page, s.err
}

type stubPrescriptionService struct {
	view *ports.PrescriptionView
	page *ports.PrescriptionPage
	err  error

	gotCreate ports.CreatePrescriptionInput
}

func (s *stubPrescriptionService) Create(_ context.Context, in ports.CreatePrescriptionInput) (*ports.PrescriptionView, error) {
	s.gotCreate = in
	return s.view, s.err
}

func (s *stubPrescriptionService) ListByPatient(_ context.Context, _ string, _, _ int) (*ports.PrescriptionPage, error) {
	return s.page, s.err
}

func (s *stubPrescriptionService) ListByDoctor(_ context.Context, _ string, _, _ int) (*ports.PrescriptionPage, error) {
	return s.page, s.err
}

type stubUserService struct {
	user *domain.User
	err  error
}

func (s *stubUserService) CreateDoctor(_ context.Context, _ ports.CreateDoctorInput) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) CreateReceptionist(_ context.Context, _ ports.CreateReceptionistInput) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) RegisterPatient(_ context.Context, _ ports.RegisterPatientInput) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) GetUser(_ context.Context, _ string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) GetByRole(_ context.Context, _ string, _ domain.Role) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) ListUsers(_ context.Context, _ ports.ListUsersFilter) ([]*domain.User, int64, error) {
	return nil, 0, s.err
}

func (s *stubUserService) UpdateUser(_ context.Context, _ ports.UpdateUserInput) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) DeactivateUser(_ context.Context, _, _ string, _ domain.Role) error {
	return s.err
}

func (s *stubUserService) UpdateDoctorProfile(_ context.Context, _ string, _ ports.UpdateDoctorProfileInput) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) UpdatePatientProfile(_ context.Context, _ string, _ ports.UpdatePatientProfileInput) (*domain.User, error) {
	return s.user, s.err
}
