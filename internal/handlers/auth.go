package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/example/teapos/internal/config"
	"github.com/example/teapos/internal/middleware"
	"github.com/example/teapos/internal/services"
	"github.com/example/teapos/internal/session"
	"github.com/example/teapos/internal/utils"
)

var validate = validator.New()

// AuthHandler bundles dependencies for session endpoints. Credential
// checks are delegated to the ordering backend; the terminal only
// issues its own session tokens afterwards.
type AuthHandler struct {
	backend  *services.BackendClient
	registry *session.Registry
	cfg      *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(backend *services.BackendClient, registry *session.Registry, cfg *config.Config) *AuthHandler {
	return &AuthHandler{backend: backend, registry: registry, cfg: cfg}
}

type loginRequest struct {
	EmployeeID int    `json:"employee_id" validate:"required,gt=0"`
	Password   string `json:"password"`
}

// Login verifies employee credentials against the backend and opens a
// terminal session with a fresh empty cart.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "employee_id is required")
	}

	employee, err := h.backend.Login(req.EmployeeID, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return fiber.NewError(fiber.StatusBadGateway, "login service unavailable")
	}

	role := session.RoleCashier
	if employee.AuthLevel == "manager" {
		role = session.RoleManager
	}

	sess := h.registry.Create(role, employee.EmployeeID, employee.FirstName+" "+employee.LastName)

	token, err := utils.GenerateToken(h.cfg.JWTSecret, sess.ID, string(sess.Role), h.cfg.TokenExpires)
	if err != nil {
		h.registry.Delete(sess.ID)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"session": fiber.Map{
			"id":   sess.ID,
			"role": sess.Role,
			"name": sess.Name,
		},
	})
}

// StartKiosk opens an anonymous self-service session.
func (h *AuthHandler) StartKiosk(c *fiber.Ctx) error {
	sess := h.registry.Create(session.RoleKiosk, 0, "")

	token, err := utils.GenerateToken(h.cfg.JWTSecret, sess.ID, string(sess.Role), h.cfg.TokenExpires)
	if err != nil {
		h.registry.Delete(sess.ID)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"token":   token,
		"session": fiber.Map{
			"id":   sess.ID,
			"role": sess.Role,
		},
	})
}

// Logout closes the session and discards its cart.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, ok := middleware.GetCurrentSession(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	h.registry.Delete(sess.ID)
	return c.JSON(fiber.Map{"success": true})
}
