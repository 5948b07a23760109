package middleware

import (
	"notes-assistant/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	ValidatedIndexKey = "validated_index"
	ValidatedKindKey  = "validated_kind"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateAnswerIndex validates the :index path parameter
func (vm *ValidationMiddleware) ValidateAnswerIndex() fiber.Handler {
	return func(c *fiber.Ctx) error {
		index, err := vm.validator.ValidateAnswerIndex(c.Params("index"))
		if err != nil {
			return err // This will be handled by ErrorHandler middleware
		}

		// Store validated value in context for handlers to use
		c.Locals(ValidatedIndexKey, index)
		return c.Next()
	}
}

// ValidateArtifactKind validates the :kind path parameter of downloads
func (vm *ValidationMiddleware) ValidateArtifactKind() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := vm.validator.ValidateArtifactKind(c.Params("kind"))
		if err != nil {
			return err
		}

		c.Locals(ValidatedKindKey, kind)
		return c.Next()
	}
}
