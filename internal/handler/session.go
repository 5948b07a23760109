package handler

import (
	"notes-assistant/internal/logger"
	"notes-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionHandler opens user sessions
type SessionHandler struct {
	tokens service.SessionTokenService
}

func NewSessionHandler(tokens service.SessionTokenService) *SessionHandler {
	return &SessionHandler{tokens: tokens}
}

// CreateSession godoc
// @Summary Open a session
// @Description Issues a session token; send it as "Authorization: Bearer <token>"
// @Tags session
// @Produce json
// @Success 201 {object} dto.SessionResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	session, err := h.tokens.Issue(c.UserContext())
	if err != nil {
		return err
	}
	logger.Get().Info("Session opened", zap.String("sessionID", session.SessionID))
	return c.Status(fiber.StatusCreated).JSON(session)
}
