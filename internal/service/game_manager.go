// service/game_manager.go
package service

import (
	"errors"
	"sync"

	"github.com/benbeisheim/simplechess/internal/model"
	"github.com/gofiber/websocket/v2"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameManager owns the live sessions. Its lock guards only the registry;
// each Game serializes its own plies.
type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
	}
}

func (gm *GameManager) CreateGame(gameID string) (*model.Game, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, ErrGameExists
	}

	game := model.NewGame(gameID)
	gm.games[gameID] = game
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) RemoveGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; !exists {
		return ErrGameNotFound
	}
	delete(gm.games, gameID)
	return nil
}

func (gm *GameManager) GameCount() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

func (gm *GameManager) GetGameState(gameID string) (model.Snapshot, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.Snapshot{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, move model.MoveRequest) (model.PlayedMove, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.PlayedMove{}, err
	}
	return game.MakeMove(move)
}

func (gm *GameManager) Undo(gameID string) (int, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return 0, err
	}
	return game.Undo()
}

func (gm *GameManager) Reset(gameID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	game.Reset()
	return nil
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

// Send writes v to conn under the game's write lock. Unknown games get a direct write.
func (gm *GameManager) Send(gameID string, conn *websocket.Conn, v any) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return conn.WriteJSON(v)
	}
	return game.Send(conn, v)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}
