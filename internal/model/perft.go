package model

// Perft counts the leaf positions reachable in exactly depth plies.
// The state is restored before returning.
func Perft(gs *GameState, depth int) int64 {
	if depth == 0 {
		return 1
	}
	moves := Legal(&gs.Board, gs.SideToMove(), gs.Castling, gs.EnPassant)
	if depth == 1 {
		return int64(len(moves))
	}
	var nodes int64
	for _, m := range moves {
		gs.apply(m)
		nodes += Perft(gs, depth-1)
		gs.revert()
	}
	return nodes
}

// Divide reports Perft(depth-1) below each legal root move, keyed by
// coordinate notation.
func Divide(gs *GameState, depth int) map[string]int64 {
	counts := make(map[string]int64)
	if depth < 1 {
		return counts
	}
	for _, m := range Legal(&gs.Board, gs.SideToMove(), gs.Castling, gs.EnPassant) {
		gs.apply(m)
		counts[m.String()] = Perft(gs, depth-1)
		gs.revert()
	}
	return counts
}
