package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/tunebox/tunebox/internal/apperr"
	"github.com/tunebox/tunebox/internal/auth"
)

const (
	identityLocal = "identity"

	reasonMissing = "missing_credential"
	reasonInvalid = "invalid_credential"
)

// TokenVerifier decodes and verifies a raw token.
type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

// AuthGate admits a request only when the x-auth-token header carries a token
// the verifier accepts. The verified identity is attached to the request's
// user context; rejected requests never reach the next handler.
//
// An accepted token without a subject claim is let through with an empty
// subject, leaving the not-found decision to the handler's lookup.
func AuthGate(verifier TokenVerifier, logger *slog.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(auth.TokenHeader)
		if token == "" {
			metrics.recordRejection(reasonMissing)
			logger.Warn("auth gate rejected request", slog.String("reason", reasonMissing), slog.String("path", c.Path()))
			return apperr.ErrMissingCredential
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			metrics.recordRejection(reasonInvalid)
			logger.Warn("auth gate rejected request", slog.String("reason", reasonInvalid), slog.String("path", c.Path()))
			logger.Debug("token verification failed", slog.Any("error", err))
			return apperr.ErrInvalidCredential
		}

		id := auth.Identity{Subject: claims.UserID, Token: token}
		c.Locals(identityLocal, id)
		c.SetUserContext(auth.WithIdentity(c.UserContext(), id))
		return c.Next()
	}
}

// subjectOf returns the authenticated subject of c, if any.
func subjectOf(c *fiber.Ctx) string {
	id, _ := c.Locals(identityLocal).(auth.Identity)
	return id.Subject
}
