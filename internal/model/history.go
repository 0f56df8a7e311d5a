package model

// edit is one square's occupant before and after a move.
type edit struct {
	sq     Square
	before Piece
	after  Piece
}

// change is the full set of square edits a move makes. Applying writes every
// after value in order; reverting writes every before value in reverse
// order. Castling, en passant and promotion are all expressed as edits, so
// the two directions can never disagree about the special cases.
type change []edit

func planChange(m Move, board *BoardState) change {
	c := make(change, 0, 4)
	moved := board.At(m.Start)
	c = append(c, edit{sq: m.Start, before: moved, after: Empty})
	if m.IsEnPassantMove {
		sq := m.capturedSquare()
		c = append(c, edit{sq: sq, before: board.At(sq), after: Empty})
	}
	landing := moved
	if m.IsPawnPromotion {
		landing = Piece{Color: moved.Color, Type: m.promotionChoice()}
	}
	c = append(c, edit{sq: m.End, before: board.At(m.End), after: landing})
	if m.IsCastleMove {
		rook := m.castleRook()
		rookPiece := board.At(rook.From)
		c = append(c,
			edit{sq: rook.From, before: rookPiece, after: Empty},
			edit{sq: rook.To, before: board.At(rook.To), after: rookPiece},
		)
	}
	return c
}

func (c change) apply(board *BoardState) {
	for _, e := range c {
		board.Place(e.sq, e.after)
	}
}

func (c change) revert(board *BoardState) {
	for i := len(c) - 1; i >= 0; i-- {
		board.Place(c[i].sq, c[i].before)
	}
}

// LogEntry is one ply of the move log together with the state it replaced.
type LogEntry struct {
	Move      Move           `json:"move"`
	Castling  CastlingRights `json:"castling"`
	EnPassant *Square        `json:"enPassant"`
	change    change
}
