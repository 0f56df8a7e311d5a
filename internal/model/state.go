package model

import (
	"fmt"
	"slices"
)

// GameState is the authoritative state of one game. It is not safe for
// concurrent use; see Game for a session wrapper that serializes plies.
type GameState struct {
	Board       BoardState
	WhiteToMove bool
	Castling    CastlingRights
	EnPassant   *Square
	MoveLog     []LogEntry

	// CheckMate and StaleMate describe the position as of the last
	// GetValidMoves call. MakeMove and UndoMove refresh them.
	CheckMate bool
	StaleMate bool

	validMoves []Move
	fresh      bool
}

func NewGameState() *GameState {
	return NewGameStateFromBoard(NewBoard(), true, AllCastlingRights(), nil)
}

// NewGameStateFromBoard starts a game from a constructed position. Both
// kings are expected on the board.
func NewGameStateFromBoard(board *BoardState, whiteToMove bool, rights CastlingRights, enPassant *Square) *GameState {
	gs := &GameState{
		Board:       *board,
		WhiteToMove: whiteToMove,
		Castling:    rights,
	}
	if enPassant != nil {
		ep := *enPassant
		gs.EnPassant = &ep
	}
	return gs
}

// SideToMove returns the colour whose turn it is.
func (gs *GameState) SideToMove() Color {
	if gs.WhiteToMove {
		return White
	}
	return Black
}

func (gs *GameState) WhiteKingLocation() Square {
	return gs.Board.WhiteKingLocation
}

func (gs *GameState) BlackKingLocation() Square {
	return gs.Board.BlackKingLocation
}

// InCheck reports whether the side to move is in check.
func (gs *GameState) InCheck() bool {
	return isKingInCheck(&gs.Board, gs.SideToMove())
}

// GetValidMoves returns the legal moves for the side to move and updates
// CheckMate and StaleMate.
func (gs *GameState) GetValidMoves() []Move {
	if !gs.fresh {
		gs.validMoves = Legal(&gs.Board, gs.SideToMove(), gs.Castling, gs.EnPassant)
		gs.fresh = true
	}
	gs.CheckMate, gs.StaleMate = false, false
	if len(gs.validMoves) == 0 {
		if gs.InCheck() {
			gs.CheckMate = true
		} else {
			gs.StaleMate = true
		}
	}
	return slices.Clone(gs.validMoves)
}

// legalMatch finds the legal move with the same endpoints as candidate.
func (gs *GameState) legalMatch(start, end Square) (Move, bool) {
	gs.GetValidMoves()
	for _, m := range gs.validMoves {
		if m.Start == start && m.End == end {
			return m, true
		}
	}
	return Move{}, false
}

// MakeMove plays m if it is in the current legal set. Anything else is
// rejected with ErrIllegalMove (or ErrGameOver) and the state is left as it
// was. The promotion choice of m is honoured; the rest of the move is taken
// from the legal set, so a stale or hand-built Move cannot corrupt the board.
func (gs *GameState) MakeMove(m Move) error {
	legal, ok := gs.legalMatch(m.Start, m.End)
	if !ok {
		return gs.rejected(m, m.Start.Notation()+m.End.Notation())
	}
	if legal.IsPawnPromotion && m.Promotion != NoPiece {
		switch m.Promotion {
		case Queen, Rook, Bishop, Knight:
			legal.Promotion = m.Promotion
		default:
			return &MoveError{Err: ErrInvalidPromotion, Move: m.String(), Ply: len(gs.MoveLog) + 1}
		}
	}
	gs.apply(legal)
	gs.GetValidMoves()
	return nil
}

// TryMove looks up the legal move from start to end and plays it.
// promotion may be NoPiece, which promotes to a queen.
func (gs *GameState) TryMove(start, end Square, promotion PieceType) (Move, error) {
	legal, ok := gs.legalMatch(start, end)
	if !ok {
		return Move{}, gs.rejected(Move{}, start.Notation()+end.Notation())
	}
	candidate := legal.WithPromotion(promotion)
	if err := gs.MakeMove(candidate); err != nil {
		return Move{}, err
	}
	return gs.MoveLog[len(gs.MoveLog)-1].Move, nil
}

func (gs *GameState) rejected(m Move, text string) error {
	err := ErrIllegalMove
	if gs.CheckMate || gs.StaleMate {
		err = ErrGameOver
	}
	if m.IsPawnPromotion {
		text = m.String()
	}
	return &MoveError{Err: err, Move: text, Ply: len(gs.MoveLog) + 1}
}

// UndoMove takes back the last ply. It reports false when there is nothing to undo.
func (gs *GameState) UndoMove() bool {
	if len(gs.MoveLog) == 0 {
		return false
	}
	gs.revert()
	gs.GetValidMoves()
	return true
}

// LastMove returns the most recent ply, if any.
func (gs *GameState) LastMove() (Move, bool) {
	if len(gs.MoveLog) == 0 {
		return Move{}, false
	}
	return gs.MoveLog[len(gs.MoveLog)-1].Move, true
}

// apply plays m without checking legality.
func (gs *GameState) apply(m Move) {
	c := planChange(m, &gs.Board)
	c.apply(&gs.Board)
	gs.MoveLog = append(gs.MoveLog, LogEntry{
		Move:      m,
		Castling:  gs.Castling,
		EnPassant: gs.EnPassant,
		change:    c,
	})
	gs.Castling = gs.Castling.after(m)
	gs.EnPassant = nil
	if m.PieceMoved.Type == Pawn && (m.End.Row-m.Start.Row == 2 || m.Start.Row-m.End.Row == 2) {
		gs.EnPassant = &Square{Row: (m.Start.Row + m.End.Row) / 2, Col: m.Start.Col}
	}
	gs.WhiteToMove = !gs.WhiteToMove
	gs.fresh = false
}

func (gs *GameState) revert() {
	last := gs.MoveLog[len(gs.MoveLog)-1]
	gs.MoveLog = gs.MoveLog[:len(gs.MoveLog)-1]
	last.change.revert(&gs.Board)
	gs.Castling = last.Castling
	gs.EnPassant = last.EnPassant
	gs.WhiteToMove = !gs.WhiteToMove
	gs.fresh = false
}

type Status int

const (
	StatusOngoing Status = iota
	StatusCheck
	StatusCheckmate
	StatusStalemate
)

// Status classifies the current position for the side to move.
func (gs *GameState) Status() Status {
	gs.GetValidMoves()
	switch {
	case gs.CheckMate:
		return StatusCheckmate
	case gs.StaleMate:
		return StatusStalemate
	case gs.InCheck():
		return StatusCheck
	}
	return StatusOngoing
}

// Describe returns the announcement for the current position, empty while
// the game goes on quietly.
func (gs *GameState) Describe() string {
	switch gs.Status() {
	case StatusCheckmate:
		winner := "White"
		if gs.WhiteToMove {
			winner = "Black"
		}
		return fmt.Sprintf("Checkmate! %s wins!", winner)
	case StatusStalemate:
		return "Stalemate!"
	case StatusCheck:
		return "Check!"
	}
	return ""
}

func (s Status) String() string {
	switch s {
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	}
	return "ongoing"
}
