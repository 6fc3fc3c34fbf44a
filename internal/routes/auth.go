package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tunebox/tunebox/internal/identity"
)

// RegisterAuthRoutes wires signup, login and the current-user lookup. Only
// the lookup sits behind the gate.
func RegisterAuthRoutes(r fiber.Router, h *identity.Handler, gate fiber.Handler) {
	group := r.Group("/auth")
	group.Post("/signup", h.Signup)
	group.Post("/login", h.Login)
	group.Get("/", gate, h.Current)
}
