package middleware

import (
	"strings"

	"notes-assistant/internal/domain"
	"notes-assistant/internal/logger"
	"notes-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	SessionIDKey        = "sessionID" // Key for storing the session ID in fiber.Ctx locals
)

// RequireSession protects routes by requiring a valid session token.
// The session ID it carries is stored in the request locals.
func RequireSession(tokens service.SessionTokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return domain.NewUnauthorizedError("Authorization header is missing", nil)
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return domain.NewUnauthorizedError("Authorization scheme is not Bearer", nil)
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return domain.NewUnauthorizedError("Token is empty", nil)
		}

		sessionID, err := tokens.Validate(c.UserContext(), tokenString)
		if err != nil {
			logger.Get().Debug("Session token rejected", zap.Error(err))
			return domain.NewUnauthorizedError("Session token is invalid or expired", err)
		}

		c.Locals(SessionIDKey, sessionID)
		return c.Next()
	}
}

// SessionID returns the session ID stored by RequireSession, or "".
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(SessionIDKey).(string)
	return id
}
