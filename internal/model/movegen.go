package model

// PseudoLegal returns every move obeying piece movement rules for side,
// including moves that leave side's own king in check. Castling is the
// exception: it is only offered when the king is not in check and does not
// pass through an attacked square.
func PseudoLegal(board *BoardState, side Color, rights CastlingRights, enPassant *Square) []Move {
	moves := make([]Move, 0, 48)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := Square{Row: row, Col: col}
			piece := board.At(sq)
			if piece.IsEmpty() || piece.Color != side {
				continue
			}
			switch piece.Type {
			case Pawn:
				moves = appendPawnMoves(moves, board, sq, side, enPassant)
			case Knight:
				moves = appendStepMoves(moves, board, sq, side, knightDirs)
			case Bishop:
				moves = appendSlidingMoves(moves, board, sq, side, bishopDirs)
			case Rook:
				moves = appendSlidingMoves(moves, board, sq, side, rookDirs)
			case Queen:
				moves = appendSlidingMoves(moves, board, sq, side, queenDirs)
			case King:
				moves = appendStepMoves(moves, board, sq, side, kingDirs)
				moves = appendCastleMoves(moves, board, sq, side, rights)
			}
		}
	}
	return moves
}

// Legal filters PseudoLegal down to the moves that do not leave side's king
// attacked. Each candidate is applied to board and reverted before the next,
// so board is unchanged on return.
func Legal(board *BoardState, side Color, rights CastlingRights, enPassant *Square) []Move {
	pseudo := PseudoLegal(board, side, rights, enPassant)
	legal := pseudo[:0]
	for _, m := range pseudo {
		c := planChange(m, board)
		c.apply(board)
		if !isKingInCheck(board, side) {
			legal = append(legal, m)
		}
		c.revert(board)
	}
	return legal
}

func appendPawnMoves(moves []Move, board *BoardState, sq Square, side Color, enPassant *Square) []Move {
	forward := pawnForward(side)
	one := sq.offset(forward, 0)
	if one.OnBoard() && board.At(one).IsEmpty() {
		moves = append(moves, NewMove(sq, one, board))
		two := sq.offset(2*forward, 0)
		if sq.Row == pawnStartRow(side) && board.At(two).IsEmpty() {
			moves = append(moves, NewMove(sq, two, board))
		}
	}
	for _, dCol := range []int{-1, 1} {
		target := sq.offset(forward, dCol)
		if !target.OnBoard() {
			continue
		}
		occupant := board.At(target)
		switch {
		case !occupant.IsEmpty():
			if occupant.Color != side {
				moves = append(moves, NewMove(sq, target, board))
			}
		case enPassant != nil && *enPassant == target:
			// the pawn that just double-stepped sits beside us
			if pieceAt(board, Square{Row: sq.Row, Col: target.Col}, side.Opponent(), Pawn) {
				moves = append(moves, NewMove(sq, target, board))
			}
		}
	}
	return moves
}

func pawnStartRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

func appendStepMoves(moves []Move, board *BoardState, sq Square, side Color, dirs []direction) []Move {
	for _, dir := range dirs {
		target := sq.offset(dir.dRow, dir.dCol)
		if !target.OnBoard() {
			continue
		}
		if occupant := board.At(target); occupant.IsEmpty() || occupant.Color != side {
			moves = append(moves, NewMove(sq, target, board))
		}
	}
	return moves
}

func appendSlidingMoves(moves []Move, board *BoardState, sq Square, side Color, dirs []direction) []Move {
	for _, dir := range dirs {
		target := sq.offset(dir.dRow, dir.dCol)
		for target.OnBoard() {
			occupant := board.At(target)
			if occupant.IsEmpty() {
				moves = append(moves, NewMove(sq, target, board))
			} else {
				if occupant.Color != side {
					moves = append(moves, NewMove(sq, target, board))
				}
				break
			}
			target = target.offset(dir.dRow, dir.dCol)
		}
	}
	return moves
}

func appendCastleMoves(moves []Move, board *BoardState, sq Square, side Color, rights CastlingRights) []Move {
	homeRow := 7
	if side == Black {
		homeRow = 0
	}
	if sq != (Square{Row: homeRow, Col: 4}) {
		return moves
	}
	if !rights.kingSide(side) && !rights.queenSide(side) {
		return moves
	}
	opponent := side.Opponent()
	if IsAttacked(board, sq, opponent) {
		return moves
	}
	if rights.kingSide(side) && pieceAt(board, Square{Row: homeRow, Col: 7}, side, Rook) &&
		clearAndSafe(board, homeRow, []int{5, 6}, []int{5, 6}, opponent) {
		moves = append(moves, NewCastleMove(sq, Square{Row: homeRow, Col: 6}, board))
	}
	if rights.queenSide(side) && pieceAt(board, Square{Row: homeRow, Col: 0}, side, Rook) &&
		clearAndSafe(board, homeRow, []int{1, 2, 3}, []int{3, 2}, opponent) {
		moves = append(moves, NewCastleMove(sq, Square{Row: homeRow, Col: 2}, board))
	}
	return moves
}

// clearAndSafe checks that the empty columns are unoccupied and the transit
// columns are not attacked by opponent.
func clearAndSafe(board *BoardState, row int, empty, transit []int, opponent Color) bool {
	for _, col := range empty {
		if !board.At(Square{Row: row, Col: col}).IsEmpty() {
			return false
		}
	}
	for _, col := range transit {
		if IsAttacked(board, Square{Row: row, Col: col}, opponent) {
			return false
		}
	}
	return true
}
