package middleware

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/simplechess/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateMove parses and validates a move request body and stores it
// under the "move" local for the handler.
func ValidateMove() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.MoveRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "invalid request body",
				"code":    "INVALID_REQUEST",
				"details": err.Error(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "validation failed",
				"code":    "INVALID_REQUEST",
				"details": describeValidation(err),
			})
		}

		c.Locals("move", req)
		return c.Next()
	}
}

// ValidatedMove returns the request stored by ValidateMove.
func ValidatedMove(c *fiber.Ctx) (model.MoveRequest, bool) {
	req, ok := c.Locals("move").(model.MoveRequest)
	return req, ok
}

func describeValidation(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	var details strings.Builder
	for _, fe := range errs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch fe.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", fe.Field()))
		case "len":
			details.WriteString(fmt.Sprintf("%s must be %s characters", fe.Field(), fe.Param()))
		case "oneof":
			details.WriteString(fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return details.String()
}
