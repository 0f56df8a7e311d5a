package controller

import (
	"github.com/benbeisheim/simplechess/internal/middleware"
	"github.com/benbeisheim/simplechess/internal/model"
	"github.com/benbeisheim/simplechess/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// MoveResponse reports a played move together with the resulting state.
type MoveResponse struct {
	Move     string         `json:"move"`
	Notation string         `json:"notation"`
	Sound    model.Sound    `json:"sound"`
	Status   string         `json:"status"`
	State    model.Snapshot `json:"state"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameState)
}

// GetValidMoves lists legal moves, optionally only those from the "from" square.
func (gc *GameController) GetValidMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.ValidMoves(c.Params("gameId"), c.Query("from"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"moves": moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	req, ok := middleware.ValidatedMove(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "move request missing",
			"code":  "INVALID_REQUEST",
		})
	}

	played, err := gc.gameService.HandleMove(gameID, req)
	if err != nil {
		return sendError(c, err)
	}
	state, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(MoveResponse{
		Move:     played.Move.String(),
		Notation: played.Notation,
		Sound:    played.Sound,
		Status:   played.Status.String(),
		State:    state,
	})
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if _, err := gc.gameService.HandleUndo(gameID); err != nil {
		return sendError(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) Reset(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if err := gc.gameService.HandleReset(gameID); err != nil {
		return sendError(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
