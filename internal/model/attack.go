package model

type direction struct {
	dRow, dCol int
}

var (
	rookDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = append(append([]direction{}, rookDirs...), bishopDirs...)
	knightDirs = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingDirs   = queenDirs
)

// pawnForward is the row delta of a pawn advance for c.
func pawnForward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

// IsAttacked reports whether any piece of colour by attacks sq. It walks
// outward from sq rather than generating the attacker's moves, so it never
// depends on move generation.
func IsAttacked(board *BoardState, sq Square, by Color) bool {
	if slidingAttack(board, sq, by, rookDirs, Rook) || slidingAttack(board, sq, by, bishopDirs, Bishop) {
		return true
	}
	for _, dir := range knightDirs {
		if pieceAt(board, sq.offset(dir.dRow, dir.dCol), by, Knight) {
			return true
		}
	}
	for _, dir := range kingDirs {
		if pieceAt(board, sq.offset(dir.dRow, dir.dCol), by, King) {
			return true
		}
	}
	// an attacking pawn stands one row behind sq from its own point of view
	back := -pawnForward(by)
	return pieceAt(board, sq.offset(back, -1), by, Pawn) || pieceAt(board, sq.offset(back, 1), by, Pawn)
}

func slidingAttack(board *BoardState, sq Square, by Color, dirs []direction, slider PieceType) bool {
	for _, dir := range dirs {
		target := sq.offset(dir.dRow, dir.dCol)
		for target.OnBoard() {
			occupant := board.At(target)
			if !occupant.IsEmpty() {
				if occupant.Color == by && (occupant.Type == slider || occupant.Type == Queen) {
					return true
				}
				break
			}
			target = target.offset(dir.dRow, dir.dCol)
		}
	}
	return false
}

func pieceAt(board *BoardState, sq Square, c Color, t PieceType) bool {
	if !sq.OnBoard() {
		return false
	}
	p := board.At(sq)
	return p.Color == c && p.Type == t
}

func isKingInCheck(board *BoardState, c Color) bool {
	return IsAttacked(board, board.KingLocation(c), c.Opponent())
}
