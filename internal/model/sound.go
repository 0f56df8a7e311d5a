package model

// Sound names the effect a front-end should play for a move.
type Sound string

const (
	SoundNone            Sound = ""
	SoundMove            Sound = "move"
	SoundCapture         Sound = "capture"
	SoundCheck           Sound = "check"
	SoundCheckmate       Sound = "checkmate"
	SoundStalemate       Sound = "stalemate"
	SoundCastle          Sound = "castle"
	SoundPromotion       Sound = "promotion"
	SoundEnPassant       Sound = "enpassant"
	SoundQueenSacrifice  Sound = "queen_sacrifice"
	SoundRookSacrifice   Sound = "rook_sacrifice"
	SoundBishopSacrifice Sound = "bishop_sacrifice"
	SoundKnightSacrifice Sound = "knight_sacrifice"
)

// SoundFor picks the effect for m, which must be the move just played on
// gs. Game-ending and check sounds win over everything else.
func SoundFor(m Move, gs *GameState) Sound {
	switch gs.Status() {
	case StatusCheckmate:
		return SoundCheckmate
	case StatusStalemate:
		return SoundStalemate
	case StatusCheck:
		return SoundCheck
	}
	switch {
	case m.IsCastleMove:
		return SoundCastle
	case m.IsPawnPromotion:
		return SoundPromotion
	case m.IsEnPassantMove:
		return SoundEnPassant
	}
	switch m.PieceCaptured.Type {
	case NoPiece:
		return SoundMove
	case Queen:
		return SoundQueenSacrifice
	case Rook:
		return SoundRookSacrifice
	case Bishop:
		return SoundBishopSacrifice
	case Knight:
		return SoundKnightSacrifice
	}
	return SoundCapture
}
