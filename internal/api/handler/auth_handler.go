package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medisys/hospital-api/internal/core/domain"
	"github.com/medisys/hospital-api/internal/core/ports"
)

// AuthHandler handles registration, login, and session self-service.
type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=patient doctor admin receptionist"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user"`
}

// Register creates a new patient account.
//
// @Summary      Register a new patient account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "registration successful", authResponse{
		Token: result.Token,
		User:  result.User,
	})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "login successful", authResponse{
		Token: result.Token,
		User:  result.User,
	})
}

// Logout acknowledges the end of a session. Tokens are stateless, so the
// client discards its copy; nothing is revoked server-side.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return respond(c, http.StatusOK, "logged out", nil)
}

// Me returns the authenticated user's own record.
//
// @Summary      Get the current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Failure      401  {object}  map[string]any
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", authResponse{User: user})
}

// UpdatePassword changes the caller's password after checking the current one.
//
// @Summary      Update the current user's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePasswordRequest  true  "Password change"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /api/auth/password [put]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.auth.UpdatePassword(c.Request().Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "password updated", nil)
}

// ForgotPassword issues a password reset token. Unknown emails get the same
// success response so the endpoint cannot be used to probe for accounts.
//
// @Summary      Request a password reset token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.auth.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}

	// The token would normally be delivered out of band. It is returned in
	// the body here because no mail transport is wired up.
	var data any
	if token != "" {
		data = map[string]string{"reset_token": token}
	}
	return respond(c, http.StatusOK, "if the email exists, a reset token has been issued", data)
}

// ResetPassword sets a new password using a reset token.
//
// @Summary      Reset password with a reset token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  path      string                true  "Reset token"
// @Param        body   body      resetPasswordRequest  true  "New password"
// @Success      200    {object}  map[string]any
// @Failure      400    {object}  map[string]any
// @Failure      401    {object}  map[string]any
// @Router       /api/auth/reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.auth.ResetPassword(c.Request().Context(), c.Param("token"), req.Password); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "password reset successful", nil)
}
