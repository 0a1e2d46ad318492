package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/medisys/hospital-api/internal/core/domain"
	"github.com/medisys/hospital-api/internal/core/ports"
)

func seedPatientAndDoctor(users *stubUserRepo) (patient, doctor *domain.User) {
	patient = users.mustSeedUser(&domain.User{
		Name: "Pat Patient", Email: "pat@example.com", Role: domain.RolePatient,
		IsActive: true, Patient: &domain.PatientProfile{},
	})
	doctor = users.mustSeedUser(&domain.User{
		Name: "Doc Doctor", Email: "doc@example.com", Role: domain.RoleDoctor,
		IsActive: true, Doctor: &domain.DoctorProfile{Specialization: "cardiology"},
	})
	return patient, doctor
}

func tomorrow() time.Time {
	return time.Now().UTC().Add(24 * time.Hour)
}

func TestAppointmentService_Book_Success(t *testing.T) {
	users := newStubUserRepo()
	appts := newStubAppointmentRepo()
	patient, doctor := seedPatientAndDoctor(users)
	svc := NewAppointmentService(appts, users, zerolog.Nop())

	view, err := svc.Book(context.Background(), ports.BookAppointmentInput{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      tomorrow(),
		Time:      "10:00",
		Reason:    "checkup",
	})
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}
	if view.Appointment.Status != domain.StatusPending {
		t.Fatalf("expected pending status, got %s", view.Appointment.Status)
	}
	if view.Appointment.Duration != domain.DefaultDurationMinutes {
		t.Fatalf("expected default duration, got %d", view.Appointment.Duration)
	}
	if view.Appointment.Type != domain.TypeGeneral {
		t.Fatalf("expected general type, got %s", view.Appointment.Type)
	}
	if view.Doctor.Specialization != "cardiology" {
		t.Fatalf("expected doctor ref resolved, got %+v", view.Doctor)
	}
	if view.Patient.Name != "Pat Patient" {
		t.Fatalf("expected patient ref resolved, got %+v", view.Patient)
	}
}

func TestAppointmentService_Book_PastDate(t *testing.T) {
	users := newStubUserRepo()
	appts := newStubAppointmentRepo()
	patient, doctor := seedPatientAndDoctor(users)
	svc := NewAppointmentService(appts, users, zerolog.Nop())

	_, err := svc.Book(context.Background(), ports.BookAppointmentInput{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      time.Now().UTC().Add(-48 * time.Hour),
		Time:      "10:00",
		Reason:    "checkup",
	})
	if !errors.Is(err, domain.ErrPastAppointment) {
		t.Fatalf("expected ErrPastAppointment, got %v", err)
	}
}

func TestAppointmentService_Book_TodayAllowed(t *testing.T) {
	users := newStubUserRepo()
	appts := newStubAppointmentRepo()
	patient, doctor := seedPatientAndDoctor(users)
	svc := NewAppointmentService(appts, users, zerolog.Nop())

	if _, err := svc.Book(context.Background(), ports.BookAppointmentInput{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      time.Now().UTC(),
		Time:      "10:00",
		Reason:    "checkup",
	}); err != nil {
		t.Fatalf("same-day booking should be allowed, got %v", err)
	}
}

func TestAppointmentService_Book_Conflict(t *testing.T) {
	users := newStubUserRepo()
	appts := newStubAppointmentRepo()
	patient, doctor := seedPatientAndDoctor(users)
	svc := NewAppointmentService(appts, users, zerolog.Nop())

	in := ports.BookAppointmentInput{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      tomorrow(),
		Time:      "10:00",
		Reason:    "checkup",
	}
	if _, err := svc.Book(context.Background(), in); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.Book(context.Background(), in); !errors.Is(err, domain.ErrAppointmentConflict) {
		t.Fatalf("expected ErrAppointmentConflict, got %v", err)
	}

	// A different time on the same day is fine.
	in.Time = "10:30"
	if _, err := svc.Book(context.Background(), in); err != nil {
		t.Fatalf("different slot should succeed, got %v", err)
	}
}

func TestAppointmentService_Book_CancelledSlotReusable(t *testing.T) {
	users := newStubUserRepo()
	appts := newStubAppointmentRepo()
	patient, doctor := seedPatientAndDoctor(users)
	svc := NewAppointmentService(appts, users, zerolog.Nop())

	in := ports.BookAppointmentInput{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      tomorrow(),
		Time:      "10:00",
		Reason:    "checkup",
	}
	first, err := svc.Book(context.Background(), in)
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.Cancel(context.Background(), ports.CancelAppointmentInput{
		AppointmentID: first.Appointment.ID,
		CancelledBy:   patient.ID,
	}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if _, err := svc.Book(context.Background(), in); err != nil {
		t.Fatalf("cancelled slot should be bookable again, got %v", err)
	}
}

func TestAppointmentService_Book_WrongRoles(t *testing.T) {
	users := newStubUserRepo()
	appts := newStubAppointmentRepo()
	patient, doctor := seedPatientAndDoctor(users)
	svc := NewAppointmentService(appts, users, zerolog.Nop())

	// Swapped ids: the "patient" is actually a doctor.
	_, err := svc.Book(context.Background(), ports.BookAppointmentInput{
		PatientID: doctor.ID,
		DoctorID:  patient.ID,
		Date:      tomorrow(),
		Time:      "10:00",
		Reason:    "checkup",
	})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for role mismatch, got %v", err)
	}
}

func TestAppointmentService_Book_BadDuration(t *testing.T) {
	users := newStubUserRepo()
	appts := newStubAppointmentRepo()
	patient, doctor := seedPatientAndDoctor(users)
	svc := NewAppointmentService(appts, users, zerolog.Nop())

	_, err := svc.Book(context.Background(), ports.BookAppointmentInput{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      tomorrow(),
		Time:      "10:00",
		Reason:    "checkup",
		Duration:  10,
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAppointmentService_UpdateStatus_CompletedStamp(t *testing.T) {
	users := newStubUserRepo()
	appts := newStubAppointmentRepo()
	patient, doctor := seedPatientAndDoctor(users)
	svc := NewAppointmentService(appts, users, zerolog.Nop())

	view, err := svc.Book(context.Background(), ports.BookAppointmentInput{
		PatientID: patient.ID, DoctorID: doctor.ID,
		Date: tomorrow(), Time: "10:00", Reason: "checkup",
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		AppointmentID: view.Appointment.ID,
		DoctorID:      doctor.ID,
		Status:        string(domain.StatusCompleted),
	})
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.Appointment.Status != domain.StatusCompleted {
		t.Fatalf("expected completed, got %s", updated.Appointment.Status)
	}
	if updated.Appointment.CompletedAt == nil {
		t.Fatalf("expected completedAt to be stamped")
	}
}

func TestAppointmentService_UpdateStatus_NotAssignedDoctor(t *testing.T) {
	users := newStubUserRepo()
	appts := newStubAppointmentRepo()
	patient, doctor := seedPatientAndDoctor(users)
	other := users.mustSeedUser(&domain.User{
		Name: "Other Doctor", Email: "other@example.com", Role: domain.RoleDoctor,
		IsActive: true, Doctor: &domain.DoctorProfile{},
	})
	svc := NewAppointmentService(appts, users, zerolog.Nop())

	view, err := svc.Book(context.Background(), ports.BookAppointmentInput{
		PatientID: patient.ID, DoctorID: doctor.ID,
		Date: tomorrow(), Time: "10:00", Reason: "checkup",
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		AppointmentID: view.Appointment.ID,
		DoctorID:      other.ID,
		Status:        string(domain.StatusConfirmed),
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAppointmentService_UpdateStatus_InvalidValue(t *testing.T) {
	users := newStubUserRepo()
	appts := newStubAppointmentRepo()
	svc := NewAppointmentService(appts, users, zerolog.Nop())

	if _, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		AppointmentID: "appt-1",
		DoctorID:      "user-1",
		Status:        "rescheduled",
	}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestAppointmentService_Cancel_Completed(t *testing.T) {
	users := newStubUserRepo()
	appts := newStubAppointmentRepo()
	patient, doctor := seedPatientAndDoctor(users)
	svc := NewAppointmentService(appts, users, zerolog.Nop())

	view, err := svc.Book(context.Background(), ports.BookAppointmentInput{
		PatientID: patient.ID, DoctorID: doctor.ID,
		Date: tomorrow(), Time: "10:00", Reason: "checkup",
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		AppointmentID: view.Appointment.ID,
		DoctorID:      doctor.ID,
		Status:        string(domain.StatusCompleted),
	}); err != nil {
		t.Fatalf("completing failed: %v", err)
	}

	if _, err := svc.Cancel(context.Background(), ports.CancelAppointmentInput{
		AppointmentID: view.Appointment.ID,
		CancelledBy:   patient.ID,
	}); !errors.Is(err, domain.ErrAppointmentClosed) {
		t.Fatalf("expected ErrAppointmentClosed, got %v", err)
	}
}

func TestAppointmentService_Cancel_Metadata(t *testing.T) {
	users := newStubUserRepo()
	appts := newStubAppointmentRepo()
	patient, doctor := seedPatientAndDoctor(users)
	svc := NewAppointmentService(appts, users, zerolog.Nop())

	view, err := svc.Book(context.Background(), ports.BookAppointmentInput{
		PatientID: patient.ID, DoctorID: doctor.ID,
		Date: tomorrow(), Time: "10:00", Reason: "checkup",
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	cancelled, err := svc.Cancel(context.Background(), ports.CancelAppointmentInput{
		AppointmentID: view.Appointment.ID,
		CancelledBy:   patient.ID,
		Reason:        "feeling better",
	})
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if cancelled.Appointment.Status != domain.StatusCancelled {
		t.Fatalf("expected cancelled status, got %s", cancelled.Appointment.Status)
	}
	if cancelled.Appointment.CancelledAt == nil {
		t.Fatalf("expected cancelledAt to be stamped")
	}
	if cancelled.Appointment.CancelledBy != patient.ID {
		t.Fatalf("expected cancelledBy %s, got %s", patient.ID, cancelled.Appointment.CancelledBy)
	}
	if cancelled.Appointment.CancellationReason != "feeling better" {
		t.Fatalf("unexpected cancellation reason: %s", cancelled.Appointment.CancellationReason)
	}
}

func TestAppointmentService_List_FiltersAndPagination(t *testing.T) {
	users := newStubUserRepo()
	appts := newStubAppointmentRepo()
	patient, doctor := seedPatientAndDoctor(users)
	svc := NewAppointmentService(appts, users, zerolog.Nop())

	for _, slot := range []string{"09:00", "10:00", "11:00"} {
		if _, err := svc.Book(context.Background(), ports.BookAppointmentInput{
			PatientID: patient.ID, DoctorID: doctor.ID,
			Date: tomorrow(), Time: slot, Reason: "checkup",
		}); err != nil {
			t.Fatalf("booking %s failed: %v", slot, err)
		}
	}

	page, err := svc.List(context.Background(), ports.ListAppointmentsInput{
		DoctorID: doctor.ID,
		Page:     1,
		Limit:    2,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("expected total 3, got %d", page.Total)
	}
	if page.Pages != 2 {
		t.Fatalf("expected 2 pages, got %d", page.Pages)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.Items[0].Appointment.Time != "09:00" {
		t.Fatalf("expected earliest slot first, got %s", page.Items[0].Appointment.Time)
	}

	newest, err := svc.List(context.Background(), ports.ListAppointmentsInput{
		PatientID:   patient.ID,
		Page:        1,
		Limit:       10,
		NewestFirst: true,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if newest.Items[0].Appointment.Time != "11:00" {
		t.Fatalf("expected latest slot first, got %s", newest.Items[0].Appointment.Time)
	}
}
