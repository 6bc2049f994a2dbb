package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lar-university/advisor/api/http/presenter"
	"github.com/lar-university/advisor/pkg/account"
	"github.com/lar-university/advisor/pkg/security/jwt"
)

type AuthHandler struct {
	useCase account.UseCase
}

func NewAuthHandler(useCase account.UseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles account registration.
// @Summary Register account
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "name, email and password are required")
	}

	result, err := h.useCase.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"user":  account.SafeView(result.Account),
		"token": result.Token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles account login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"user":  account.SafeView(result.Account),
		"token": result.Token,
	})
}

// Me returns the authenticated account.
// @Summary Current account
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} account.View
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	view, ok := c.Locals(jwt.LocalsAccount).(account.View)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	return presenter.JSON(c, http.StatusOK, view)
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

// UpdateProfile changes the display name.
// @Summary Update profile
// @Tags    auth
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body updateProfileRequest true "profile payload"
// @Success 200 {object} account.View
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Name) == "" {
		return presenter.Error(c, http.StatusBadRequest, "name is required")
	}
	a, err := h.useCase.UpdateName(c.Context(), userID, req.Name)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, account.SafeView(a))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword verifies the current credential and installs a new one. A
// fresh token is returned so old sessions age out naturally.
// @Summary Change password
// @Tags    auth
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body changePasswordRequest true "password payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return presenter.Error(c, http.StatusBadRequest, "currentPassword and newPassword are required")
	}
	token, err := h.useCase.ChangePassword(c.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message": "password updated",
		"token":   token,
	})
}
