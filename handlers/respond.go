package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"achievement-review-system/services"
)

var validate = validator.New()

// writeError maps the service error taxonomy onto HTTP statuses. Anything
// unrecognized is logged and collapsed to a generic 500 so internals never
// leak to the caller.
func writeError(c *fiber.Ctx, err error) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Msg})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, services.ErrDuplicateEmail):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrPayloadTooLarge):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrUnsupportedMedia):
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("❌ [HTTP] %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}

func formatValidationErrors(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	var msg string
	for i, e := range validationErrors {
		if i > 0 {
			msg += "; "
		}
		switch e.Tag() {
		case "required":
			msg += e.Field() + " is required"
		case "email":
			msg += e.Field() + " must be a valid email"
		case "min":
			msg += e.Field() + " must be at least " + e.Param() + " characters"
		case "oneof":
			msg += e.Field() + " must be one of: " + e.Param()
		default:
			msg += e.Field() + " is invalid"
		}
	}
	return msg
}

// validateBody runs the struct validator, returning a taxonomy error the
// handlers can pass straight to writeError.
func validateBody(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return &services.ValidationError{Msg: formatValidationErrors(err)}
	}
	return nil
}
