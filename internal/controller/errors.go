package controller

import (
	"errors"

	"github.com/benbeisheim/simplechess/internal/model"
	"github.com/benbeisheim/simplechess/internal/service"
	"github.com/gofiber/fiber/v2"
)

// errBadMessage marks websocket frames that could not be turned into a command.
var errBadMessage = errors.New("bad message")

// classify maps a service error to an HTTP status and a stable error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound, "GAME_NOT_FOUND"
	case errors.Is(err, model.ErrGameOver):
		return fiber.StatusUnprocessableEntity, "GAME_OVER"
	case errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity, "ILLEGAL_MOVE"
	case errors.Is(err, model.ErrNothingToUndo):
		return fiber.StatusUnprocessableEntity, "NOTHING_TO_UNDO"
	case errors.Is(err, model.ErrDuplicateConnection):
		return fiber.StatusConflict, "ALREADY_CONNECTED"
	case errors.Is(err, model.ErrInvalidSquare), errors.Is(err, model.ErrInvalidPromotion),
		errors.Is(err, errBadMessage):
		return fiber.StatusBadRequest, "INVALID_REQUEST"
	}
	return fiber.StatusInternalServerError, "INTERNAL_ERROR"
}

func sendError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
