package model

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/simplechess/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
	sendMu      sync.Mutex // websocket writes are not concurrency safe
	lastSent    uint64     // newest snapshot version written, guarded by sendMu
}

// Game is one hot-seat session. The mutex serializes plies so only one
// move, undo or reset is ever in flight.
type Game struct {
	ID          string
	CreatedAt   time.Time
	mu          sync.Mutex
	state       *GameState
	notation    []string // display notation per ply, parallel to state.MoveLog
	sound       Sound
	version     uint64 // bumped on every published change, guarded by mu
	connections *GameConnections
}

// Snapshot is the JSON view of a game sent to clients.
type Snapshot struct {
	ID                string         `json:"id"`
	Sound             Sound          `json:"sound"`
	Board             [8][8]Piece    `json:"board"`
	ToMove            Color          `json:"toMove"`
	Ply               int            `json:"ply"`
	MoveHistory       []MovePair     `json:"moveHistory"`
	CapturedPieces    CapturedPieces `json:"capturedPieces"`
	IsCheck           bool           `json:"isCheck"`
	IsCheckmate       bool           `json:"isCheckmate"`
	IsStalemate       bool           `json:"isStalemate"`
	Resolve           *string        `json:"resolve"`
	Message           string         `json:"message,omitempty"`
	LegalMoves        []SimpleMove   `json:"legalMoves"`
	EnPassantTarget   *string        `json:"enPassantTarget"`
	Castling          string         `json:"castling"`
	WhiteKingLocation Square         `json:"whiteKingLocation"`
	BlackKingLocation Square         `json:"blackKingLocation"`
	LastMove          *SimpleMove    `json:"lastMove"`
}

// CapturedPieces lists the pieces each side has taken.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// PlayedMove is what a successful MakeMove reports back.
type PlayedMove struct {
	Move     Move
	Ply      int
	Notation string
	Sound    Sound
	Status   Status
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		CreatedAt:   time.Now().UTC(),
		state:       NewGameState(),
		notation:    make([]string, 0),
		connections: NewGameConnections(),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

func (g *Game) GetState() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) MakeMove(req MoveRequest) (PlayedMove, error) {
	from, err := ParseSquare(req.From)
	if err != nil {
		return PlayedMove{}, err
	}
	to, err := ParseSquare(req.To)
	if err != nil {
		return PlayedMove{}, err
	}
	promotion, err := ParsePromotion(req.Promotion)
	if err != nil {
		return PlayedMove{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	move, err := g.state.TryMove(from, to, promotion)
	if err != nil {
		return PlayedMove{}, err
	}

	status := g.state.Status()
	notation := move.Notation()
	switch status {
	case StatusCheckmate:
		notation += "#"
	case StatusCheck:
		notation += "+"
	}
	g.notation = append(g.notation, notation)
	g.sound = SoundFor(move, g.state)

	g.publish()

	return PlayedMove{
		Move:     move,
		Ply:      len(g.state.MoveLog),
		Notation: notation,
		Sound:    g.sound,
		Status:   status,
	}, nil
}

// Undo takes back the last ply and returns the number of plies left.
func (g *Game) Undo() (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.state.UndoMove() {
		return 0, ErrNothingToUndo
	}
	g.notation = g.notation[:len(g.notation)-1]
	g.sound = SoundNone

	g.publish()
	return len(g.state.MoveLog), nil
}

// Reset starts the session over from the initial position.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = NewGameState()
	g.notation = g.notation[:0]
	g.sound = SoundNone

	g.publish()
}

// ValidMovesFrom lists the legal moves of the piece on from.
func (g *Game) ValidMovesFrom(from string) ([]SimpleMove, error) {
	sq, err := ParseSquare(from)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	moves := []SimpleMove{}
	for _, m := range g.state.GetValidMoves() {
		if m.Start == sq {
			moves = append(moves, m.simple())
		}
	}
	return moves, nil
}

func (g *Game) snapshot() Snapshot {
	gs := g.state
	valid := gs.GetValidMoves()

	snap := Snapshot{
		ID:                g.ID,
		Sound:             g.sound,
		Board:             gs.Board.Board,
		ToMove:            gs.SideToMove(),
		Ply:               len(gs.MoveLog),
		MoveHistory:       pairNotation(g.notation),
		CapturedPieces:    CapturedPieces{White: []Piece{}, Black: []Piece{}},
		IsCheck:           gs.InCheck(),
		IsCheckmate:       gs.CheckMate,
		IsStalemate:       gs.StaleMate,
		Message:           gs.Describe(),
		LegalMoves:        make([]SimpleMove, 0, len(valid)),
		Castling:          gs.Castling.String(),
		WhiteKingLocation: gs.WhiteKingLocation(),
		BlackKingLocation: gs.BlackKingLocation(),
	}
	for _, m := range valid {
		snap.LegalMoves = append(snap.LegalMoves, m.simple())
	}
	for _, entry := range gs.MoveLog {
		if !entry.Move.IsCapture() {
			continue
		}
		switch entry.Move.PieceMoved.Color {
		case White:
			snap.CapturedPieces.White = append(snap.CapturedPieces.White, entry.Move.PieceCaptured)
		case Black:
			snap.CapturedPieces.Black = append(snap.CapturedPieces.Black, entry.Move.PieceCaptured)
		}
	}
	switch {
	case gs.CheckMate:
		result := "checkmate"
		snap.Resolve = &result
	case gs.StaleMate:
		result := "stalemate"
		snap.Resolve = &result
	}
	if gs.EnPassant != nil {
		target := gs.EnPassant.Notation()
		snap.EnPassantTarget = &target
	}
	if last, ok := gs.LastMove(); ok {
		lastMove := last.simple()
		snap.LastMove = &lastMove
	}
	return snap
}

// publish queues the current position for every watcher. Callers hold g.mu.
func (g *Game) publish() {
	g.version++
	go g.broadcastState(g.snapshot(), g.version)
}

func pairNotation(plies []string) []MovePair {
	pairs := make([]MovePair, 0, (len(plies)+1)/2)
	for i := 0; i < len(plies); i += 2 {
		pair := MovePair{Number: i/2 + 1, WhitePly: plies[i]}
		if i+1 < len(plies) {
			pair.BlackPly = plies[i+1]
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	connID := fmt.Sprintf("%p", conn)
	log.Printf("registering connection %s for player %s in game %s", connID, playerID, g.ID)

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the existing connection, the caller closes the new one
		g.connections.mu.Unlock()
		return ErrDuplicateConnection
	}

	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	g.mu.Lock()
	snap, version := g.snapshot(), g.version
	g.mu.Unlock()

	go g.broadcastState(snap, version)
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[playerID]; exists {
		log.Printf("unregistering connection for player %s in game %s", playerID, g.ID)
		delete(g.connections.connections, playerID)
	}
}

// Send writes v to one connection of this game, serialized with broadcasts.
func (g *Game) Send(conn *websocket.Conn, v any) error {
	g.connections.sendMu.Lock()
	defer g.connections.sendMu.Unlock()
	return conn.WriteJSON(v)
}

// ConnectionCount reports how many clients are watching the game.
func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	return len(g.connections.connections)
}

// claim reports whether a snapshot of the given version may still be sent.
// Snapshots older than one already written are stale and dropped. Callers hold sendMu.
func (gc *GameConnections) claim(version uint64) bool {
	if version < gc.lastSent {
		return false
	}
	gc.lastSent = version
	return true
}

func (g *Game) broadcastState(snap Snapshot, version uint64) {
	payload, err := json.Marshal(snap)
	if err != nil {
		log.Printf("failed to marshal state for game %s: %v", g.ID, err)
		return
	}

	// Make a copy of the connections so no lock is held while writing
	g.connections.mu.RLock()
	activeConnections := make(map[string]*websocket.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	g.connections.sendMu.Lock()
	defer g.connections.sendMu.Unlock()
	if !g.connections.claim(version) {
		return
	}
	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Printf("failed to send state to player %s: %v", playerID, err)
			g.UnregisterConnection(playerID)
		}
	}
}
