package handler

import (
	"notes-assistant/internal/middleware"
	"notes-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything SetupRoutes mounts.
type Handlers struct {
	Assistant *AssistantHandler
	Session   *SessionHandler
	Health    *HealthHandler
	Tokens    service.SessionTokenService
}

// SetupRoutes mounts the HTTP API on app.
func SetupRoutes(app *fiber.App, h Handlers) {
	vm := middleware.NewValidationMiddleware()

	app.Get("/healthz", h.Health.Check)

	apiGroup := app.Group("/api")
	apiGroup.Post("/sessions", h.Session.CreateSession)

	// Everything else belongs to a session
	auth := middleware.RequireSession(h.Tokens)
	apiGroup.Post("/notes", auth, h.Assistant.GenerateNotes)
	apiGroup.Post("/summaries", auth, h.Assistant.Summarize)

	quizGroup := apiGroup.Group("/quizzes", auth)
	quizGroup.Post("/", h.Assistant.GenerateQuiz)
	quizGroup.Get("/current", h.Assistant.GetQuiz)
	quizGroup.Put("/current/answers/:index", vm.ValidateAnswerIndex(), h.Assistant.SelectAnswer)
	quizGroup.Post("/current/submit", h.Assistant.SubmitQuiz)

	apiGroup.Get("/downloads/:kind", auth, vm.ValidateArtifactKind(), h.Assistant.Download)
}
