package model

import (
	"fmt"
	"strings"
)

// MoveRequest is a move as submitted by a client, in coordinate notation.
type MoveRequest struct {
	From      string `json:"from" validate:"required,len=2"`
	To        string `json:"to" validate:"required,len=2"`
	Promotion string `json:"promotion" validate:"omitempty,oneof=q r b n Q R B N"`
}

type CastleRookMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Move describes a single ply. Moves are values; the board is never reached through them.
type Move struct {
	Start           Square    `json:"start"`
	End             Square    `json:"end"`
	PieceMoved      Piece     `json:"pieceMoved"`
	PieceCaptured   Piece     `json:"pieceCaptured"`
	IsPawnPromotion bool      `json:"isPawnPromotion"`
	IsEnPassantMove bool      `json:"isEnPassantMove"`
	IsCastleMove    bool      `json:"isCastleMove"`
	Promotion       PieceType `json:"promotion,omitempty"`
}

// NewMove reads the moved and captured pieces from board and infers the
// en passant and promotion flags. Castling is never inferred, see NewCastleMove.
func NewMove(start, end Square, board *BoardState) Move {
	m := Move{
		Start:         start,
		End:           end,
		PieceMoved:    board.At(start),
		PieceCaptured: board.At(end),
	}
	if m.PieceMoved.Type != Pawn {
		return m
	}
	if start.Col != end.Col && m.PieceCaptured.IsEmpty() {
		m.IsEnPassantMove = true
		m.PieceCaptured = Piece{Color: m.PieceMoved.Color.Opponent(), Type: Pawn}
	}
	if end.Row == promotionRow(m.PieceMoved.Color) {
		m.IsPawnPromotion = true
		m.Promotion = Queen
	}
	return m
}

func NewCastleMove(start, end Square, board *BoardState) Move {
	m := NewMove(start, end, board)
	m.IsCastleMove = true
	return m
}

func promotionRow(c Color) int {
	if c == White {
		return 0
	}
	return 7
}

// WithPromotion returns a copy of m promoting to t. Moves that are not
// promotions are returned unchanged.
func (m Move) WithPromotion(t PieceType) Move {
	if m.IsPawnPromotion && t != NoPiece {
		m.Promotion = t
	}
	return m
}

func (m Move) promotionChoice() PieceType {
	if !m.IsPawnPromotion {
		return NoPiece
	}
	if m.Promotion == NoPiece {
		return Queen
	}
	return m.Promotion
}

// Equal reports whether both moves share endpoints and promotion choice.
// An unspecified promotion choice counts as a queen.
func (m Move) Equal(o Move) bool {
	return m.Start == o.Start && m.End == o.End && m.promotionChoice() == o.promotionChoice()
}

// castleRook returns the rook relocation implied by a castling move.
func (m Move) castleRook() CastleRookMove {
	row := m.Start.Row
	if m.End.Col > m.Start.Col {
		return CastleRookMove{From: Square{Row: row, Col: 7}, To: Square{Row: row, Col: 5}}
	}
	return CastleRookMove{From: Square{Row: row, Col: 0}, To: Square{Row: row, Col: 3}}
}

// capturedSquare is where the captured piece stands, which differs from End only for en passant.
func (m Move) capturedSquare() Square {
	if m.IsEnPassantMove {
		return Square{Row: m.Start.Row, Col: m.End.Col}
	}
	return m.End
}

func (m Move) IsCapture() bool {
	return !m.PieceCaptured.IsEmpty()
}

// String returns coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.Start.Notation() + m.End.Notation()
	if p := m.promotionChoice(); p != NoPiece {
		s += strings.ToLower(string(p))
	}
	return s
}

// Notation returns short algebraic-style notation without check markers.
func (m Move) Notation() string {
	if m.IsCastleMove {
		if m.End.Col > m.Start.Col {
			return "O-O"
		}
		return "O-O-O"
	}
	pieceNotationPrefix := m.PieceMoved.Type.getPieceNotation()
	pawnFileSpecifier := ""
	if m.PieceMoved.Type == Pawn && m.Start.Col != m.End.Col {
		pawnFileSpecifier = m.Start.fileNotation()
	}
	pieceNotationCapture := ""
	if m.IsCapture() {
		pieceNotationCapture = "x"
	}
	pieceNotationSuffix := m.End.Notation()
	if p := m.promotionChoice(); p != NoPiece {
		pieceNotationSuffix += "=" + string(p)
	}
	return fmt.Sprintf("%s%s%s%s", pieceNotationPrefix, pawnFileSpecifier, pieceNotationCapture, pieceNotationSuffix)
}

// MovePair groups a white ply with black's reply for numbered move lists.
type MovePair struct {
	Number   int    `json:"number"`
	WhitePly string `json:"whitePly"`
	BlackPly string `json:"blackPly,omitempty"`
}

type SimpleMove struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Capture   bool   `json:"capture"`
	Promotion bool   `json:"promotion,omitempty"`
	Castle    bool   `json:"castle,omitempty"`
}

func (m Move) simple() SimpleMove {
	return SimpleMove{
		From:      m.Start.Notation(),
		To:        m.End.Notation(),
		Capture:   m.IsCapture(),
		Promotion: m.IsPawnPromotion,
		Castle:    m.IsCastleMove,
	}
}
