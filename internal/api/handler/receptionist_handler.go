package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medisys/hospital-api/internal/core/domain"
	"github.com/medisys/hospital-api/internal/core/ports"
)

// ReceptionistHandler handles patient intake and appointment scheduling.
type ReceptionistHandler struct {
	users        ports.UserService
	appointments ports.AppointmentService
}

func NewReceptionistHandler(users ports.UserService, appointments ports.AppointmentService) *ReceptionistHandler {
	return &ReceptionistHandler{users: users, appointments: appointments}
}

type registerPatientRequest struct {
	Name             string     `json:"name" validate:"required,min=2,max=50"`
	Email            string     `json:"email" validate:"required,email"`
	Password         string     `json:"password" validate:"required,min=6"`
	Phone            string     `json:"phone" validate:"required"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	Gender           string     `json:"gender" validate:"omitempty,oneof=male female other"`
	Address          string     `json:"address"`
	EmergencyContact string     `json:"emergency_contact"`
	BloodGroup       string     `json:"blood_group"`
}

type bookAppointmentRequest struct {
	PatientID string `json:"patient_id" validate:"required,len=24,hexadecimal"`
	DoctorID  string `json:"doctor_id" validate:"required,len=24,hexadecimal"`
	Date      string `json:"date" validate:"required"`
	Time      string `json:"time" validate:"required"`
	Reason    string `json:"reason" validate:"required,max=500"`
	Type      string `json:"type" validate:"omitempty,oneof=general follow-up emergency consultation checkup"`
	Duration  int    `json:"duration" validate:"omitempty,gte=15,lte=120"`
}

type cancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// RegisterPatient creates a patient account at the front desk.
//
// @Summary      Register a walk-in patient
// @Tags         receptionist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerPatientRequest  true  "Patient details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /api/receptionist/patients [post]
func (h *ReceptionistHandler) RegisterPatient(c echo.Context) error {
	var req registerPatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.RegisterPatient(c.Request().Context(), ports.RegisterPatientInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		Phone:            req.Phone,
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		BloodGroup:       req.BloodGroup,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "patient registered", user)
}

// ListPatients lists patient accounts with an optional search filter.
//
// @Summary      List patients
// @Tags         receptionist
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "Match against name, email, or phone"
// @Param        page    query  int     false  "Page number"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  map[string]any
// @Router       /api/receptionist/patients [get]
func (h *ReceptionistHandler) ListPatients(c echo.Context) error {
	page, limit := pageParams(c)
	users, total, err := h.users.ListUsers(c.Request().Context(), ports.ListUsersFilter{
		Role:   domain.RolePatient,
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, users, total, page, totalPages(total, limit))
}

// BookAppointment schedules a patient with a doctor.
//
// @Summary      Book an appointment
// @Tags         receptionist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookAppointmentRequest  true  "Appointment details"
// @Success      201   {object}  ports.AppointmentView
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /api/receptionist/appointments [post]
func (h *ReceptionistHandler) BookAppointment(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req bookAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return domain.Validation("date must be a date in YYYY-MM-DD format")
	}

	view, err := h.appointments.Book(c.Request().Context(), ports.BookAppointmentInput{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      req.Time,
		Reason:    req.Reason,
		Type:      req.Type,
		Duration:  req.Duration,
		BookedBy:  actor.ID,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "appointment booked", view)
}

// ListAppointments lists all appointments with optional filters.
//
// @Summary      List appointments
// @Tags         receptionist
// @Produce      json
// @Security     BearerAuth
// @Param        status     query  string  false  "Filter by status"
// @Param        date       query  string  false  "Filter by date (YYYY-MM-DD)"
// @Param        doctor_id  query  string  false  "Filter by doctor"
// @Param        page       query  int     false  "Page number"
// @Param        limit      query  int     false  "Page size"
// @Success      200  {object}  map[string]any
// @Router       /api/receptionist/appointments [get]
func (h *ReceptionistHandler) ListAppointments(c echo.Context) error {
	date, err := dateParam(c, "date")
	if err != nil {
		return err
	}
	page, limit := pageParams(c)
	result, err := h.appointments.List(c.Request().Context(), ports.ListAppointmentsInput{
		DoctorID: c.QueryParam("doctor_id"),
		Status:   c.QueryParam("status"),
		Date:     date,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, result.Items, result.Total, result.Page, result.Pages)
}

// CancelAppointment cancels a booking on a patient's behalf.
//
// @Summary      Cancel an appointment
// @Tags         receptionist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true   "Appointment id"
// @Param        body  body      cancelAppointmentRequest  false  "Cancellation reason"
// @Success      200   {object}  ports.AppointmentView
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/receptionist/appointments/{id}/cancel [put]
func (h *ReceptionistHandler) CancelAppointment(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req cancelAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	view, err := h.appointments.Cancel(c.Request().Context(), ports.CancelAppointmentInput{
		AppointmentID: id,
		CancelledBy:   actor.ID,
		Reason:        req.Reason,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "appointment cancelled", view)
}
