package handler

import (
	"context"
	"io"
	"strings"

	"notes-assistant/internal/domain"
	"notes-assistant/internal/dto"
	"notes-assistant/internal/logger"
	"notes-assistant/internal/middleware"
	"notes-assistant/internal/service"
	"notes-assistant/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// uploadField is the multipart field carrying a study document.
const uploadField = "file"

// DocumentExtractor turns an uploaded document into plain text.
type DocumentExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
	Supports(filename string) bool
}

// AssistantHandler handles notes, summary and quiz requests
type AssistantHandler struct {
	service   service.AssistantService
	extractor DocumentExtractor
	validator *validation.Validator
}

// NewAssistantHandler creates a new AssistantHandler instance
func NewAssistantHandler(service service.AssistantService, extractor DocumentExtractor) *AssistantHandler {
	return &AssistantHandler{
		service:   service,
		extractor: extractor,
		validator: validation.NewValidator(),
	}
}

// GenerateNotes godoc
// @Summary Generate study notes
// @Description Generates detailed, structured notes on a topic
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body dto.NotesRequest true "Topic"
// @Success 200 {object} dto.TextResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /notes [post]
func (h *AssistantHandler) GenerateNotes(c *fiber.Ctx) error {
	var req dto.NotesRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be JSON with a topic field")
	}
	if err := h.validator.ValidateTopic(req.Topic); err != nil {
		return err
	}

	text, err := h.service.GenerateNotes(c.UserContext(), middleware.SessionID(c), req.Topic)
	if err != nil {
		return err
	}
	return c.JSON(dto.TextResponse{Kind: string(domain.ArtifactNotes), Text: text})
}

// Summarize godoc
// @Summary Summarize notes
// @Description Summarizes pasted notes or an uploaded PDF/DOCX document
// @Tags assistant
// @Accept json,mpfd
// @Produce json
// @Param request body dto.SourceTextRequest false "Pasted notes"
// @Param file formData file false "PDF or DOCX document"
// @Success 200 {object} dto.TextResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /summaries [post]
func (h *AssistantHandler) Summarize(c *fiber.Ctx) error {
	notes, err := h.sourceText(c)
	if err != nil {
		return err
	}

	text, err := h.service.Summarize(c.UserContext(), middleware.SessionID(c), notes)
	if err != nil {
		return err
	}
	return c.JSON(dto.TextResponse{Kind: string(domain.ArtifactSummary), Text: text})
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Generates multiple-choice questions from notes and replaces the current quiz
// @Tags quiz
// @Accept json,mpfd
// @Produce json
// @Param request body dto.SourceTextRequest false "Pasted notes"
// @Param file formData file false "PDF or DOCX document"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes [post]
func (h *AssistantHandler) GenerateQuiz(c *fiber.Ctx) error {
	notes, err := h.sourceText(c)
	if err != nil {
		return err
	}

	quiz, err := h.service.GenerateQuiz(c.UserContext(), middleware.SessionID(c), notes)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewQuizResponse(quiz))
}

// GetQuiz godoc
// @Summary Get the current quiz
// @Description Answers are included only after the quiz was submitted
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.QuizResponse
// @Security ApiKeyAuth
// @Router /quizzes/current [get]
func (h *AssistantHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.service.GetQuiz(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizResponse(quiz))
}

// SelectAnswer godoc
// @Summary Select an option
// @Description Records the option chosen for one question; the latest choice wins
// @Tags quiz
// @Accept json
// @Produce json
// @Param index path int true "Zero-based question index"
// @Param request body dto.SelectAnswerRequest true "Chosen option"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes/current/answers/{index} [put]
func (h *AssistantHandler) SelectAnswer(c *fiber.Ctx) error {
	index, ok := c.Locals(middleware.ValidatedIndexKey).(int)
	if !ok {
		var err error
		if index, err = h.validator.ValidateAnswerIndex(c.Params("index")); err != nil {
			return err
		}
	}

	var req dto.SelectAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be JSON with an option field")
	}
	if err := h.validator.ValidateOption(req.Option); err != nil {
		return err
	}

	quiz, err := h.service.SelectAnswer(c.UserContext(), middleware.SessionID(c), index, req.Option)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizResponse(quiz))
}

// SubmitQuiz godoc
// @Summary Submit the current quiz
// @Description Grades the quiz and reveals the answers; submitting again returns the same result
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.QuizResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes/current/submit [post]
func (h *AssistantHandler) SubmitQuiz(c *fiber.Ctx) error {
	quiz, _, err := h.service.SubmitQuiz(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizResponse(quiz))
}

// Download godoc
// @Summary Download generated text
// @Description Returns the last generated notes or summary as a text attachment
// @Tags assistant
// @Produce plain
// @Param kind path string true "notes or summary"
// @Success 200 {string} string
// @Failure 404 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /downloads/{kind} [get]
func (h *AssistantHandler) Download(c *fiber.Ctx) error {
	kind, ok := c.Locals(middleware.ValidatedKindKey).(domain.ArtifactKind)
	if !ok {
		var err error
		if kind, err = h.validator.ValidateArtifactKind(c.Params("kind")); err != nil {
			return err
		}
	}

	text, err := h.service.LastArtifact(c.UserContext(), middleware.SessionID(c), kind)
	if err != nil {
		return err
	}
	c.Attachment(kind.Filename())
	return c.SendString(text)
}

// sourceText returns the notes of a summary or quiz request. An uploaded
// document wins over pasted notes unless its format yields no text.
func (h *AssistantHandler) sourceText(c *fiber.Ctx) (string, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		var req dto.SourceTextRequest
		if len(c.Body()) == 0 {
			return "", nil
		}
		if err := c.BodyParser(&req); err != nil {
			return "", domain.NewInvalidInputError("request body must be JSON with a notes field")
		}
		return req.Notes, nil
	}

	pasted := c.FormValue("notes")
	fh, err := c.FormFile(uploadField)
	if err != nil {
		// No file part; the pasted notes are all there is.
		return pasted, nil
	}
	if !h.extractor.Supports(fh.Filename) {
		logger.Get().Debug("Unsupported upload format, using pasted notes", zap.String("filename", fh.Filename))
		return pasted, nil
	}

	f, err := fh.Open()
	if err != nil {
		return "", domain.NewExtractionFailedError(fh.Filename, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", domain.NewExtractionFailedError(fh.Filename, err)
	}

	text, err := h.extractor.Extract(c.UserContext(), fh.Filename, data)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		logger.Get().Debug("Upload produced no text, using pasted notes", zap.String("filename", fh.Filename))
		return pasted, nil
	}
	return text, nil
}
