package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/benbeisheim/simplechess/internal/model"
	"github.com/benbeisheim/simplechess/internal/service"
	"github.com/benbeisheim/simplechess/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("wsGameID").(string)
	playerID, _ := c.Locals("wsPlayerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("failed to register connection: %v", err)
		wsc.sendError(c, gameID, err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("read error: %v", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(c, gameID, fmt.Errorf("%w: %v", errBadMessage, err))
			continue
		}

		// successful commands are answered by the game's state broadcast
		if err := wsc.handleMessage(gameID, msg); err != nil {
			wsc.sendError(c, gameID, err)
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.MoveRequest
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return fmt.Errorf("%w: move payload: %v", errBadMessage, err)
		}
		_, err := wsc.gameService.HandleMove(gameID, move)
		return err

	case ws.MessageTypeUndo:
		_, err := wsc.gameService.HandleUndo(gameID)
		return err

	case ws.MessageTypeReset:
		return wsc.gameService.HandleReset(gameID)

	default:
		return fmt.Errorf("%w: unknown message type %q", errBadMessage, msg.Type)
	}
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, gameID string, err error) {
	_, code := classify(err)
	if werr := wsc.gameService.Send(gameID, c, ws.NewErrorMessage(code, err.Error())); werr != nil {
		log.Printf("failed to send error: %v", werr)
	}
}
