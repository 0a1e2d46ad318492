package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medisys/hospital-api/internal/core/ports"
)

// PatientHandler handles the patient's own profile, appointments, and
// prescriptions.
type PatientHandler struct {
	users         ports.UserService
	appointments  ports.AppointmentService
	prescriptions ports.PrescriptionService
}

func NewPatientHandler(users ports.UserService, appointments ports.AppointmentService, prescriptions ports.PrescriptionService) *PatientHandler {
	return &PatientHandler{users: users, appointments: appointments, prescriptions: prescriptions}
}

type updatePatientProfileRequest struct {
	Name             string     `json:"name" validate:"omitempty,min=2,max=50"`
	Phone            string     `json:"phone"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	Gender           string     `json:"gender" validate:"omitempty,oneof=male female other"`
	Address          string     `json:"address"`
	EmergencyContact string     `json:"emergency_contact"`
	BloodGroup       string     `json:"blood_group"`
}

// Profile returns the patient's own record.
//
// @Summary      Get own patient profile
// @Tags         patient
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Router       /api/patient/profile [get]
func (h *PatientHandler) Profile(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", user)
}

// UpdateProfile updates the patient's own profile fields. Email cannot be
// changed here.
//
// @Summary      Update own patient profile
// @Tags         patient
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePatientProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]any
// @Router       /api/patient/profile [put]
func (h *PatientHandler) UpdateProfile(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updatePatientProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.users.UpdatePatientProfile(c.Request().Context(), user.ID, ports.UpdatePatientProfileInput{
		Name:             req.Name,
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
	return respond(c, http.StatusOK, "profile updated", updated)
}

// ListAppointments lists the patient's own appointments, most recent first.
//
// @Summary      List own appointments
// @Tags         patient
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Filter by status"
// @Param        page    query  int     false  "Page number"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  map[string]any
// @Router       /api/patient/appointments [get]
func (h *PatientHandler) ListAppointments(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	page, limit := pageParams(c)
	result, err := h.appointments.List(c.Request().Context(), ports.ListAppointmentsInput{
		PatientID:   user.ID,
		Status:      c.QueryParam("status"),
		Page:        page,
		Limit:       limit,
		NewestFirst: true,
	})
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, result.Items, result.Total, result.Page, result.Pages)
}

// ListPrescriptions lists prescriptions issued to the patient, newest first.
//
// @Summary      List own prescriptions
// @Tags         patient
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page number"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {object}  map[string]any
// @Router       /api/patient/prescriptions [get]
func (h *PatientHandler) ListPrescriptions(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	page, limit := pageParams(c)
	result, err := h.prescriptions.ListByPatient(c.Request().Context(), user.ID, page, limit)
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, result.Items, result.Total, result.Page, result.Pages)
}
