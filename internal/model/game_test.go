package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func playRequests(t *testing.T, g *Game, moves ...string) []PlayedMove {
	t.Helper()
	var played []PlayedMove
	for _, m := range moves {
		p, err := g.MakeMove(MoveRequest{From: m[:2], To: m[2:4], Promotion: m[4:]})
		if err != nil {
			t.Fatalf("MakeMove(%s): %v", m, err)
		}
		played = append(played, p)
	}
	return played
}

func TestGameNotationAndHistory(t *testing.T) {
	g := NewGame("test")
	played := playRequests(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	last := played[len(played)-1]
	if last.Notation != "Qh4#" || last.Status != StatusCheckmate || last.Sound != SoundCheckmate {
		t.Errorf("last move = %+v, want Qh4# checkmate", last)
	}
	if last.Ply != 4 {
		t.Errorf("ply = %d, want 4", last.Ply)
	}

	snap := g.GetState()
	want := []MovePair{
		{Number: 1, WhitePly: "f3", BlackPly: "e5"},
		{Number: 2, WhitePly: "g4", BlackPly: "Qh4#"},
	}
	if diff := cmp.Diff(want, snap.MoveHistory); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	if snap.Resolve == nil || *snap.Resolve != "checkmate" {
		t.Errorf("resolve = %v, want checkmate", snap.Resolve)
	}
	if snap.Message != "Checkmate! Black wins!" {
		t.Errorf("message = %q", snap.Message)
	}
	if len(snap.LegalMoves) != 0 {
		t.Errorf("legal moves after mate = %v", snap.LegalMoves)
	}

	_, err := g.MakeMove(MoveRequest{From: "a2", To: "a3"})
	if !errors.Is(err, ErrGameOver) {
		t.Errorf("move after mate error = %v, want ErrGameOver", err)
	}
}

func TestGameCheckSuffix(t *testing.T) {
	g := NewGame("test")
	played := playRequests(t, g, "e2e4", "f7f6", "d1h5")
	if got := played[2].Notation; got != "Qh5+" {
		t.Errorf("notation = %q, want Qh5+", got)
	}
}

func TestGameRejectsBadRequests(t *testing.T) {
	g := NewGame("test")
	tests := []struct {
		req  MoveRequest
		want error
	}{
		{MoveRequest{From: "z9", To: "e4"}, ErrInvalidSquare},
		{MoveRequest{From: "e2", To: "e9"}, ErrInvalidSquare},
		{MoveRequest{From: "e2", To: "e4", Promotion: "k"}, ErrInvalidPromotion},
		{MoveRequest{From: "e2", To: "e5"}, ErrIllegalMove},
		{MoveRequest{From: "e3", To: "e4"}, ErrIllegalMove},
	}
	for _, tt := range tests {
		if _, err := g.MakeMove(tt.req); !errors.Is(err, tt.want) {
			t.Errorf("MakeMove(%+v) error = %v, want %v", tt.req, err, tt.want)
		}
	}
	if snap := g.GetState(); snap.Ply != 0 {
		t.Errorf("rejected requests advanced the game to ply %d", snap.Ply)
	}
}

func TestGameUndoAndReset(t *testing.T) {
	g := NewGame("test")
	if _, err := g.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("Undo on a new game error = %v, want ErrNothingToUndo", err)
	}

	playRequests(t, g, "e2e4", "d7d5", "e4d5")
	snap := g.GetState()
	if diff := cmp.Diff([]Piece{{Color: Black, Type: Pawn}}, snap.CapturedPieces.White); diff != "" {
		t.Errorf("white captures mismatch (-want +got):\n%s", diff)
	}

	remaining, err := g.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if remaining != 2 {
		t.Errorf("remaining plies = %d, want 2", remaining)
	}
	snap = g.GetState()
	if len(snap.CapturedPieces.White) != 0 {
		t.Errorf("captures after undo = %v", snap.CapturedPieces.White)
	}
	if snap.EnPassantTarget == nil || *snap.EnPassantTarget != "d6" {
		t.Errorf("en passant target = %v, want d6", snap.EnPassantTarget)
	}
	if snap.LastMove == nil || snap.LastMove.From != "d7" || snap.LastMove.To != "d5" {
		t.Errorf("last move = %+v, want d7d5", snap.LastMove)
	}

	g.Reset()
	snap = g.GetState()
	if snap.Ply != 0 || len(snap.MoveHistory) != 0 || snap.ToMove != White {
		t.Errorf("reset left ply %d, history %v, to move %v", snap.Ply, snap.MoveHistory, snap.ToMove)
	}
	if len(snap.LegalMoves) != 20 {
		t.Errorf("legal moves after reset = %d, want 20", len(snap.LegalMoves))
	}
}

func TestGameValidMovesFrom(t *testing.T) {
	g := NewGame("test")
	moves, err := g.ValidMovesFrom("g1")
	if err != nil {
		t.Fatal(err)
	}
	want := []SimpleMove{{From: "g1", To: "h3"}, {From: "g1", To: "f3"}}
	byTarget := cmpopts.SortSlices(func(a, b SimpleMove) bool { return a.To < b.To })
	if diff := cmp.Diff(want, moves, byTarget); diff != "" {
		t.Errorf("moves from g1 mismatch (-want +got):\n%s", diff)
	}

	if moves, err := g.ValidMovesFrom("e8"); err != nil || len(moves) != 0 {
		t.Errorf("black king on white's turn: %v, %v", moves, err)
	}
	if _, err := g.ValidMovesFrom("x1"); !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("error = %v, want ErrInvalidSquare", err)
	}
}

func TestSnapshotJSON(t *testing.T) {
	g := NewGame("test")
	playRequests(t, g, "e2e4")

	data, err := json.Marshal(g.GetState())
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Board    [8][8]string `json:"board"`
		ToMove   string       `json:"toMove"`
		Castling string       `json:"castling"`
		LastMove SimpleMove   `json:"lastMove"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Board[4][4] != "wp" || decoded.Board[6][4] != "--" || decoded.Board[0][4] != "bK" {
		t.Errorf("board codes = %v", decoded.Board)
	}
	if decoded.ToMove != "black" || decoded.Castling != "KQkq" {
		t.Errorf("toMove = %q, castling = %q", decoded.ToMove, decoded.Castling)
	}
	if decoded.LastMove.From != "e2" || decoded.LastMove.To != "e4" {
		t.Errorf("lastMove = %+v", decoded.LastMove)
	}
	if !strings.Contains(string(data), `"enPassantTarget":"e3"`) {
		t.Errorf("snapshot should carry the e3 en passant target: %s", data)
	}
}

func TestGameVersionPerPublishedChange(t *testing.T) {
	g := NewGame("test")
	playRequests(t, g, "e2e4", "e7e5")
	if _, err := g.MakeMove(MoveRequest{From: "e4", To: "e6"}); err == nil {
		t.Fatal("illegal move accepted")
	}
	if _, err := g.Undo(); err != nil {
		t.Fatal(err)
	}
	g.Reset()

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.version != 4 {
		t.Errorf("version = %d, want 4", g.version)
	}
}

func TestStaleSnapshotsAreDropped(t *testing.T) {
	gc := NewGameConnections()
	steps := []struct {
		version uint64
		want    bool
	}{
		{2, true},
		{1, false}, // ply 1 finished writing after ply 2
		{2, true},  // a new watcher gets the current version again
		{4, true},
		{3, false},
	}
	for _, s := range steps {
		if got := gc.claim(s.version); got != s.want {
			t.Errorf("claim(%d) = %v, want %v", s.version, got, s.want)
		}
	}
	if gc.lastSent != 4 {
		t.Errorf("lastSent = %d, want 4", gc.lastSent)
	}
}
