package model

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalMove is returned for a move absent from the current legal set.
	ErrIllegalMove = errors.New("illegal move")

	ErrInvalidSquare    = errors.New("invalid square")
	ErrInvalidPromotion = errors.New("invalid promotion piece")

	// ErrGameOver is returned when a move is attempted after checkmate or stalemate.
	ErrGameOver = errors.New("game is over")

	ErrNothingToUndo = errors.New("no moves to undo")

	ErrDuplicateConnection = errors.New("player already connected to this game")
)

// MoveError wraps a rejected move with the ply it was attempted at.
type MoveError struct {
	Err  error
	Move string // coordinate notation of the candidate
	Ply  int    // 1-based ply the move would have been
}

func (e *MoveError) Error() string {
	if e.Move == "" {
		return fmt.Sprintf("ply %d: %v", e.Ply, e.Err)
	}
	return fmt.Sprintf("ply %d, move %q: %v", e.Ply, e.Move, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
