package model

import (
	"encoding/json"
	"fmt"
)

type Color byte

const (
	White Color = 'w'
	Black Color = 'b'
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white", "w":
		*c = White
	case "black", "b":
		*c = Black
	default:
		return fmt.Errorf("invalid colour %q", text)
	}
	return nil
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return ""
}

type PieceType byte

const (
	NoPiece PieceType = 0
	Pawn    PieceType = 'p'
	Knight  PieceType = 'N'
	Bishop  PieceType = 'B'
	Rook    PieceType = 'R'
	Queen   PieceType = 'Q'
	King    PieceType = 'K'
)

func (p PieceType) getPieceNotation() string {
	switch p {
	case King, Queen, Rook, Bishop, Knight:
		return string(p)
	}
	return ""
}

func (p PieceType) MarshalText() ([]byte, error) {
	if p == NoPiece {
		return []byte{}, nil
	}
	return []byte{byte(p)}, nil
}

func (p *PieceType) UnmarshalText(text []byte) error {
	t, err := ParsePromotion(string(text))
	if err != nil {
		if len(text) == 1 && (text[0] == byte(Pawn) || text[0] == byte(King)) {
			*p = PieceType(text[0])
			return nil
		}
		return err
	}
	*p = t
	return nil
}

// ParsePromotion accepts the piece letters a pawn may promote to, in either case.
func ParsePromotion(s string) (PieceType, error) {
	switch s {
	case "":
		return NoPiece, nil
	case "q", "Q":
		return Queen, nil
	case "r", "R":
		return Rook, nil
	case "b", "B":
		return Bishop, nil
	case "n", "N":
		return Knight, nil
	}
	return NoPiece, fmt.Errorf("%w: %q", ErrInvalidPromotion, s)
}

// Piece is an occupant of a square. The zero value is an empty square.
type Piece struct {
	Color Color
	Type  PieceType
}

var Empty = Piece{}

const emptyCode = "--"

func (p Piece) IsEmpty() bool {
	return p.Type == NoPiece
}

// Code returns the two-symbol board code, e.g. "wp" or "bK", and "--" for an empty square.
func (p Piece) Code() string {
	if p.IsEmpty() {
		return emptyCode
	}
	return string([]byte{byte(p.Color), byte(p.Type)})
}

func (p Piece) String() string {
	return p.Code()
}

func (p Piece) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Code())
}

func (p *Piece) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	piece, err := ParsePiece(code)
	if err != nil {
		return err
	}
	*p = piece
	return nil
}

// ParsePiece is the inverse of Code.
func ParsePiece(code string) (Piece, error) {
	if code == emptyCode {
		return Empty, nil
	}
	if len(code) != 2 {
		return Empty, fmt.Errorf("invalid piece code %q", code)
	}
	c, t := Color(code[0]), PieceType(code[1])
	if c != White && c != Black {
		return Empty, fmt.Errorf("invalid piece colour in %q", code)
	}
	switch t {
	case Pawn, Knight, Bishop, Rook, Queen, King:
		return Piece{Color: c, Type: t}, nil
	}
	return Empty, fmt.Errorf("invalid piece type in %q", code)
}

// Square is a (row, col) pair. Row 0 is black's back rank, row 7 is white's.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

func (s Square) offset(dRow, dCol int) Square {
	return Square{Row: s.Row + dRow, Col: s.Col + dCol}
}

func (s Square) Notation() string {
	return fmt.Sprintf("%c%d", s.Col+'a', 8-s.Row)
}

func (s Square) fileNotation() string {
	return fmt.Sprintf("%c", s.Col+'a')
}

func (s Square) String() string {
	return s.Notation()
}

// ParseSquare reads coordinates such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return Square{Row: int('8' - s[1]), Col: int(s[0] - 'a')}, nil
}

// BoardState holds piece occupancy and the cached king locations.
type BoardState struct {
	Board             [8][8]Piece `json:"board"`
	WhiteKingLocation Square      `json:"whiteKingLocation"`
	BlackKingLocation Square      `json:"blackKingLocation"`
}

func (b *BoardState) At(sq Square) Piece {
	return b.Board[sq.Row][sq.Col]
}

// Place puts piece on sq, overwriting whatever was there, and keeps the king cache current.
func (b *BoardState) Place(sq Square, piece Piece) {
	b.Board[sq.Row][sq.Col] = piece
	if piece.Type == King {
		switch piece.Color {
		case White:
			b.WhiteKingLocation = sq
		case Black:
			b.BlackKingLocation = sq
		}
	}
}

func (b *BoardState) KingLocation(c Color) Square {
	if c == White {
		return b.WhiteKingLocation
	}
	return b.BlackKingLocation
}

// EmptyBoard returns a board with no pieces, for constructed positions.
func EmptyBoard() *BoardState {
	return &BoardState{}
}

// NewBoard returns the standard starting position.
func NewBoard() *BoardState {
	board := EmptyBoard()
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col, t := range backRank {
		board.Place(Square{Row: 0, Col: col}, Piece{Color: Black, Type: t})
		board.Place(Square{Row: 7, Col: col}, Piece{Color: White, Type: t})
	}
	for col := 0; col < 8; col++ {
		board.Place(Square{Row: 1, Col: col}, Piece{Color: Black, Type: Pawn})
		board.Place(Square{Row: 6, Col: col}, Piece{Color: White, Type: Pawn})
	}
	return board
}
