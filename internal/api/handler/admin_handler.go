package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medisys/hospital-api/internal/core/domain"
	"github.com/medisys/hospital-api/internal/core/ports"
)

// AdminHandler handles staff management and the dashboard.
type AdminHandler struct {
	users     ports.UserService
	dashboard ports.DashboardService
}

func NewAdminHandler(users ports.UserService, dashboard ports.DashboardService) *AdminHandler {
	return &AdminHandler{users: users, dashboard: dashboard}
}

type createDoctorRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=50"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization" validate:"required"`
	Qualifications string `json:"qualifications"`
	Experience     int    `json:"experience" validate:"gte=0"`
}

type createReceptionistRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
}

type updateUserRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=50"`
	Phone    string `json:"phone"`
	IsActive *bool  `json:"is_active"`
	Role     string `json:"role" validate:"omitempty,oneof=patient doctor admin receptionist"`
}

// Dashboard returns the aggregated system snapshot.
//
// @Summary      Admin dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Failure      403  {object}  map[string]any
// @Router       /api/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.dashboard.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", stats)
}

// CreateDoctor registers a doctor account.
//
// @Summary      Create a doctor
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDoctorRequest  true  "Doctor details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /api/admin/doctors [post]
func (h *AdminHandler) CreateDoctor(c echo.Context) error {
	var req createDoctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.CreateDoctor(c.Request().Context(), ports.CreateDoctorInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		Qualifications: req.Qualifications,
		Experience:     req.Experience,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "doctor created", user)
}

// ListDoctors lists doctor accounts with optional filters.
//
// @Summary      List doctors
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search          query  string  false  "Match against name, email, or phone"
// @Param        specialization  query  string  false  "Match against specialization"
// @Param        page            query  int     false  "Page number"
// @Param        limit           query  int     false  "Page size"
// @Success      200  {object}  map[string]any
// @Router       /api/admin/doctors [get]
func (h *AdminHandler) ListDoctors(c echo.Context) error {
	return h.listByRole(c, domain.RoleDoctor)
}

// DeleteDoctor deactivates a doctor account.
//
// @Summary      Deactivate a doctor
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Doctor id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/admin/doctors/{id} [delete]
func (h *AdminHandler) DeleteDoctor(c echo.Context) error {
	return h.deactivate(c, domain.RoleDoctor, "doctor deactivated")
}

// CreateReceptionist registers a receptionist account.
//
// @Summary      Create a receptionist
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReceptionistRequest  true  "Receptionist details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /api/admin/receptionists [post]
func (h *AdminHandler) CreateReceptionist(c echo.Context) error {
	var req createReceptionistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.CreateReceptionist(c.Request().Context(), ports.CreateReceptionistInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "receptionist created", user)
}

// DeleteReceptionist deactivates a receptionist account.
//
// @Summary      Deactivate a receptionist
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Receptionist id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/admin/receptionists/{id} [delete]
func (h *AdminHandler) DeleteReceptionist(c echo.Context) error {
	return h.deactivate(c, domain.RoleReceptionist, "receptionist deactivated")
}

// ListPatients lists patient accounts with an optional search filter.
//
// @Summary      List patients
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "Match against name, email, or phone"
// @Param        page    query  int     false  "Page number"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  map[string]any
// @Router       /api/admin/patients [get]
func (h *AdminHandler) ListPatients(c echo.Context) error {
	return h.listByRole(c, domain.RolePatient)
}

// ListUsers lists accounts of any role.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role    query  string  false  "Restrict to one role"
// @Param        search  query  string  false  "Match against name, email, or phone"
// @Param        page    query  int     false  "Page number"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  map[string]any
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	role := domain.Role(c.QueryParam("role"))
	if role != "" && !domain.ValidRole(string(role)) {
		return domain.Validation("role must be one of: patient, doctor, admin, receptionist")
	}
	return h.listByRole(c, role)
}

// GetUser fetches a single user by id.
//
// @Summary      Get a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]any
// @Router       /api/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", user)
}

// UpdateUser updates a user's core fields.
//
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "User id"
// @Param        body  body  updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.UpdateUser(c.Request().Context(), ports.UpdateUserInput{
		ActorID:  actor.ID,
		UserID:   id,
		Name:     req.Name,
		Phone:    req.Phone,
		IsActive: req.IsActive,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user updated", user)
}

// DeleteUser deactivates a user of any role.
//
// @Summary      Deactivate a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	return h.deactivate(c, "", "user deactivated")
}

func (h *AdminHandler) listByRole(c echo.Context, role domain.Role) error {
	page, limit := pageParams(c)
	users, total, err := h.users.ListUsers(c.Request().Context(), ports.ListUsersFilter{
		Role:           role,
		Search:         c.QueryParam("search"),
		Specialization: c.QueryParam("specialization"),
		Page:           page,
		Limit:          limit,
	})
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, users, total, page, totalPages(total, limit))
}

func (h *AdminHandler) deactivate(c echo.Context, role domain.Role, message string) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.DeactivateUser(c.Request().Context(), actor.ID, id, role); err != nil {
		return err
	}
	return respond(c, http.StatusOK, message, nil)
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		return 1
	}
	return pages
}
