package identity

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tunebox/tunebox/internal/apperr"
	"github.com/tunebox/tunebox/internal/auth"
)

// Handler exposes identity endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an identity HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Signup handles account creation.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req SignupInput
	if err := c.BodyParser(&req); err != nil {
		return apperr.ErrInvalidInput.WithMessage("malformed request body")
	}
	user, err := h.service.Signup(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(user)
}

// Login verifies credentials and returns a token with the user.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginInput
	if err := c.BodyParser(&req); err != nil {
		return apperr.ErrInvalidInput.WithMessage("malformed request body")
	}
	res, err := h.service.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(res)
}

// Current returns the caller's profile. It must run behind the auth gate.
func (h *Handler) Current(c *fiber.Ctx) error {
	id, ok := auth.IdentityFrom(c.UserContext())
	if !ok {
		return apperr.ErrMissingCredential
	}
	profile, err := h.service.Current(c.UserContext(), id.Subject)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(profile)
}
