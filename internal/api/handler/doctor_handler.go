package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medisys/hospital-api/internal/core/domain"
	"github.com/medisys/hospital-api/internal/core/ports"
)

// DoctorHandler handles the doctor's own profile, schedule, and prescriptions.
type DoctorHandler struct {
	users         ports.UserService
	appointments  ports.AppointmentService
	prescriptions ports.PrescriptionService
}

func NewDoctorHandler(users ports.UserService, appointments ports.AppointmentService, prescriptions ports.PrescriptionService) *DoctorHandler {
	return &DoctorHandler{users: users, appointments: appointments, prescriptions: prescriptions}
}

type updateDoctorProfileRequest struct {
	Name           string            `json:"name" validate:"omitempty,min=2,max=50"`
	Phone          string            `json:"phone"`
	Specialization string            `json:"specialization"`
	Qualifications string            `json:"qualifications"`
	Experience     *int              `json:"experience" validate:"omitempty,gte=0"`
	Availability   map[string]string `json:"availability"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=pending confirmed in-progress completed cancelled no-show"`
	Notes  string `json:"notes" validate:"max=1000"`
}

type medicineRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Dosage       string `json:"dosage" validate:"required,max=50"`
	Frequency    string `json:"frequency" validate:"required,max=50"`
	Duration     string `json:"duration" validate:"max=50"`
	Quantity     string `json:"quantity"`
	Instructions string `json:"instructions" validate:"max=200"`
}

type createPrescriptionRequest struct {
	AppointmentID string            `json:"appointment_id" validate:"required,len=24,hexadecimal"`
	Medicines     []medicineRequest `json:"medicines" validate:"required,min=1,dive"`
	Diagnosis     string            `json:"diagnosis" validate:"max=500"`
	Instructions  string            `json:"instructions" validate:"max=1000"`
	FollowUpDate  *time.Time        `json:"follow_up_date"`
	Refills       int               `json:"refills" validate:"gte=0"`
	IsRefillable  bool              `json:"is_refillable"`
}

// Profile returns the doctor's own record.
//
// @Summary      Get own doctor profile
// @Tags         doctor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Router       /api/doctor/profile [get]
func (h *DoctorHandler) Profile(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", user)
}

// UpdateProfile updates the doctor's own profile fields.
//
// @Summary      Update own doctor profile
// @Tags         doctor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateDoctorProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]any
// @Router       /api/doctor/profile [put]
func (h *DoctorHandler) UpdateProfile(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateDoctorProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.users.UpdateDoctorProfile(c.Request().Context(), user.ID, ports.UpdateDoctorProfileInput{
		Name:           req.Name,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		Qualifications: req.Qualifications,
		Experience:     req.Experience,
		Availability:   req.Availability,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "profile updated", updated)
}

// ListAppointments lists the doctor's own schedule, earliest first.
//
// @Summary      List own appointments
// @Tags         doctor
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Filter by status"
// @Param        date    query  string  false  "Filter by date (YYYY-MM-DD)"
// @Param        page    query  int     false  "Page number"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  map[string]any
// @Router       /api/doctor/appointments [get]
func (h *DoctorHandler) ListAppointments(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	date, err := dateParam(c, "date")
	if err != nil {
		return err
	}

	page, limit := pageParams(c)
	result, err := h.appointments.List(c.Request().Context(), ports.ListAppointmentsInput{
		DoctorID: user.ID,
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

// UpdateAppointmentStatus transitions one of the doctor's appointments.
//
// @Summary      Update an appointment's status
// @Tags         doctor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Appointment id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  ports.AppointmentView
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/doctor/appointments/{id}/status [put]
func (h *DoctorHandler) UpdateAppointmentStatus(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	view, err := h.appointments.UpdateStatus(c.Request().Context(), ports.UpdateStatusInput{
		AppointmentID: id,
		DoctorID:      user.ID,
		Status:        req.Status,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "appointment updated", view)
}

// CreatePrescription issues a prescription for one of the doctor's
// appointments, completing the appointment in the process.
//
// @Summary      Issue a prescription
// @Tags         doctor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPrescriptionRequest  true  "Prescription details"
// @Success      201   {object}  ports.PrescriptionView
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/doctor/prescriptions [post]
func (h *DoctorHandler) CreatePrescription(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createPrescriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	medicines := make([]domain.Medicine, len(req.Medicines))
	for i, m := range req.Medicines {
		medicines[i] = domain.Medicine(m)
	}

	view, err := h.prescriptions.Create(c.Request().Context(), ports.CreatePrescriptionInput{
		AppointmentID: req.AppointmentID,
		DoctorID:      user.ID,
		Medicines:     medicines,
		Diagnosis:     req.Diagnosis,
		Instructions:  req.Instructions,
		FollowUpDate:  req.FollowUpDate,
		Refills:       req.Refills,
		IsRefillable:  req.IsRefillable,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "prescription issued", view)
}

// ListPrescriptions lists prescriptions the doctor has issued, newest first.
//
// @Summary      List own issued prescriptions
// @Tags         doctor
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page number"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {object}  map[string]any
// @Router       /api/doctor/prescriptions [get]
func (h *DoctorHandler) ListPrescriptions(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	page, limit := pageParams(c)
	result, err := h.prescriptions.ListByDoctor(c.Request().Context(), user.ID, page, limit)
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, result.Items, result.Total, result.Page, result.Pages)
}
