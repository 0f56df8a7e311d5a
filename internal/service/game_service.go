package service

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/simplechess/internal/model"
	"github.com/benbeisheim/simplechess/internal/storage"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// Recorder persists session activity. *storage.Store satisfies it.
type Recorder interface {
	RecordNewGame(storage.GameRecord) error
	RecordMove(storage.MoveRecord) error
	DeleteUndoneMoves(gameID string, afterPly int) error
	RecordResult(gameID, result, winner string) error
}

type noopRecorder struct{}

func (noopRecorder) RecordNewGame(storage.GameRecord) error    { return nil }
func (noopRecorder) RecordMove(storage.MoveRecord) error       { return nil }
func (noopRecorder) DeleteUndoneMoves(string, int) error       { return nil }
func (noopRecorder) RecordResult(string, string, string) error { return nil }

// GameService applies commands to live games and records them. Each game's
// mutation and its record happen under one session lock, so the persisted
// log sees plies in the order the game applied them.
type GameService struct {
	gameManager *GameManager
	recorder    Recorder
	sessions    sync.Map // gameID -> *sync.Mutex
}

// NewGameService wires the registry to a recorder; a nil recorder disables persistence.
func NewGameService(gameManager *GameManager, recorder Recorder) *GameService {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &GameService{
		gameManager: gameManager,
		recorder:    recorder,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	game, err := gs.gameManager.CreateGame(gameID)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	gs.record(gs.recorder.RecordNewGame(storage.GameRecord{
		GameID:     gameID,
		CreatedUTC: game.CreatedAt,
	}))

	return gameID, nil
}

func (gs *GameService) GetGameState(gameID string) (model.Snapshot, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) ValidMoves(gameID, from string) ([]model.SimpleMove, error) {
	if from == "" {
		state, err := gs.gameManager.GetGameState(gameID)
		if err != nil {
			return nil, err
		}
		return state.LegalMoves, nil
	}
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.ValidMovesFrom(from)
}

func (gs *GameService) lockSession(gameID string) (unlock func(), err error) {
	if _, err := gs.gameManager.GetGame(gameID); err != nil {
		return nil, err
	}
	v, _ := gs.sessions.LoadOrStore(gameID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock, nil
}

func (gs *GameService) HandleMove(gameID string, move model.MoveRequest) (model.PlayedMove, error) {
	unlock, err := gs.lockSession(gameID)
	if err != nil {
		return model.PlayedMove{}, err
	}
	defer unlock()

	played, err := gs.gameManager.MakeMove(gameID, move)
	if err != nil {
		return model.PlayedMove{}, err
	}

	gs.record(gs.recorder.RecordMove(storage.MoveRecord{
		GameID:      gameID,
		Ply:         played.Ply,
		Move:        played.Move.String(),
		Notation:    played.Notation,
		PlayerColor: played.Move.PieceMoved.Color.String(),
		MoveTimeUTC: time.Now().UTC(),
	}))
	switch played.Status {
	case model.StatusCheckmate:
		gs.record(gs.recorder.RecordResult(gameID, played.Status.String(), played.Move.PieceMoved.Color.String()))
	case model.StatusStalemate:
		gs.record(gs.recorder.RecordResult(gameID, played.Status.String(), ""))
	}

	return played, nil
}

func (gs *GameService) HandleUndo(gameID string) (int, error) {
	unlock, err := gs.lockSession(gameID)
	if err != nil {
		return 0, err
	}
	defer unlock()

	remaining, err := gs.gameManager.Undo(gameID)
	if err != nil {
		return 0, err
	}
	gs.record(gs.recorder.DeleteUndoneMoves(gameID, remaining))
	return remaining, nil
}

func (gs *GameService) HandleReset(gameID string) error {
	unlock, err := gs.lockSession(gameID)
	if err != nil {
		return err
	}
	defer unlock()

	if err := gs.gameManager.Reset(gameID); err != nil {
		return err
	}
	gs.record(gs.recorder.DeleteUndoneMoves(gameID, 0))
	return nil
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) Send(gameID string, conn *websocket.Conn, v any) error {
	return gs.gameManager.Send(gameID, conn, v)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}

func (gs *GameService) record(err error) {
	if err != nil {
		log.Printf("failed to record game activity: %v", err)
	}
}
