package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbeisheim/simplechess/internal/model"
	"github.com/benbeisheim/simplechess/internal/storage"
	"github.com/google/go-cmp/cmp"
)

type fakeRecorder struct {
	mu      sync.Mutex
	games   []string
	moves   []string
	deletes []int
	results []string
}

func (f *fakeRecorder) RecordNewGame(r storage.GameRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.games = append(f.games, r.GameID)
	return nil
}

func (f *fakeRecorder) RecordMove(r storage.MoveRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moves = append(f.moves, r.PlayerColor+":"+r.Move)
	return nil
}

func (f *fakeRecorder) DeleteUndoneMoves(_ string, afterPly int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, afterPly)
	return nil
}

func (f *fakeRecorder) RecordResult(_ string, result, winner string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, result+":"+winner)
	return nil
}

func newTestService(t *testing.T) (*GameService, *fakeRecorder, string) {
	t.Helper()
	rec := &fakeRecorder{}
	svc := NewGameService(NewGameManager(), rec)
	id, err := svc.CreateGame()
	if err != nil {
		t.Fatal(err)
	}
	return svc, rec, id
}

func move(t *testing.T, svc *GameService, id string, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if _, err := svc.HandleMove(id, model.MoveRequest{From: m[:2], To: m[2:4], Promotion: m[4:]}); err != nil {
			t.Fatalf("HandleMove(%s): %v", m, err)
		}
	}
}

func TestHandleMoveRecordsPlies(t *testing.T) {
	svc, rec, id := newTestService(t)
	move(t, svc, id, "f2f3", "e7e5", "g2g4", "d8h4")

	if diff := cmp.Diff([]string{id}, rec.games); diff != "" {
		t.Errorf("games mismatch (-want +got):\n%s", diff)
	}
	wantMoves := []string{"white:f2f3", "black:e7e5", "white:g2g4", "black:d8h4"}
	if diff := cmp.Diff(wantMoves, rec.moves); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"checkmate:black"}, rec.results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestIllegalMoveIsNotRecorded(t *testing.T) {
	svc, rec, id := newTestService(t)
	_, err := svc.HandleMove(id, model.MoveRequest{From: "e2", To: "e5"})
	if !errors.Is(err, model.ErrIllegalMove) {
		t.Fatalf("error = %v, want ErrIllegalMove", err)
	}
	if len(rec.moves) != 0 {
		t.Errorf("recorded %v for a rejected move", rec.moves)
	}
}

func TestUndoAndReset(t *testing.T) {
	svc, rec, id := newTestService(t)
	if _, err := svc.HandleUndo(id); !errors.Is(err, model.ErrNothingToUndo) {
		t.Fatalf("undo on new game error = %v", err)
	}

	move(t, svc, id, "e2e4", "e7e5")
	remaining, err := svc.HandleUndo(id)
	if err != nil {
		t.Fatal(err)
	}
	if remaining != 1 {
		t.Errorf("remaining = %d, want 1", remaining)
	}
	if err := svc.HandleReset(id); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 0}, rec.deletes); diff != "" {
		t.Errorf("deletes mismatch (-want +got):\n%s", diff)
	}

	state, err := svc.GetGameState(id)
	if err != nil {
		t.Fatal(err)
	}
	if state.Ply != 0 {
		t.Errorf("ply after reset = %d", state.Ply)
	}
}

func TestValidMoves(t *testing.T) {
	svc, _, id := newTestService(t)
	all, err := svc.ValidMoves(id, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 20 {
		t.Errorf("got %d moves, want 20", len(all))
	}
	fromE2, err := svc.ValidMoves(id, "e2")
	if err != nil {
		t.Fatal(err)
	}
	if len(fromE2) != 2 {
		t.Errorf("got %v from e2, want two pawn pushes", fromE2)
	}
}

func TestUnknownGame(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.GetGameState("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("GetGameState error = %v", err)
	}
	if _, err := svc.HandleMove("nope", model.MoveRequest{From: "e2", To: "e4"}); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("HandleMove error = %v", err)
	}
	if err := svc.HandleReset("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("HandleReset error = %v", err)
	}
}

func TestNilRecorder(t *testing.T) {
	svc := NewGameService(NewGameManager(), nil)
	id, err := svc.CreateGame()
	if err != nil {
		t.Fatal(err)
	}
	move(t, svc, id, "e2e4")
}

func TestGameManagerRegistry(t *testing.T) {
	gm := NewGameManager()
	if _, err := gm.CreateGame("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := gm.CreateGame("a"); !errors.Is(err, ErrGameExists) {
		t.Errorf("duplicate create error = %v, want ErrGameExists", err)
	}
	if gm.GameCount() != 1 {
		t.Errorf("count = %d, want 1", gm.GameCount())
	}
	if err := gm.RemoveGame("a"); err != nil {
		t.Fatal(err)
	}
	if err := gm.RemoveGame("a"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("second remove error = %v, want ErrGameNotFound", err)
	}
}

// logRecorder keeps the persisted move log by ply. RecordMove can be held
// open to let a competing command run while a write is in flight.
type logRecorder struct {
	noopRecorder
	mu      sync.Mutex
	rows    map[int]string
	entered chan struct{}
	release chan struct{}
}

func (r *logRecorder) RecordMove(m storage.MoveRecord) error {
	if r.entered != nil {
		close(r.entered)
		r.entered = nil
		<-r.release
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[m.Ply] = m.Move
	return nil
}

func (r *logRecorder) DeleteUndoneMoves(_ string, afterPly int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for ply := range r.rows {
		if ply > afterPly {
			delete(r.rows, ply)
		}
	}
	return nil
}

func TestUndoWaitsForMoveRecord(t *testing.T) {
	entered := make(chan struct{})
	rec := &logRecorder{
		rows:    map[int]string{},
		entered: entered,
		release: make(chan struct{}),
	}
	svc := NewGameService(NewGameManager(), rec)
	id, err := svc.CreateGame()
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if _, err := svc.HandleMove(id, model.MoveRequest{From: "e2", To: "e4"}); err != nil {
			t.Errorf("HandleMove: %v", err)
		}
	}()
	<-entered

	undone := make(chan struct{})
	go func() {
		defer wg.Done()
		defer close(undone)
		if _, err := svc.HandleUndo(id); err != nil {
			t.Errorf("HandleUndo: %v", err)
		}
	}()

	select {
	case <-undone:
		t.Fatal("undo finished while the move was still being recorded")
	case <-time.After(50 * time.Millisecond):
	}
	close(rec.release)
	wg.Wait()

	state, err := svc.GetGameState(id)
	if err != nil {
		t.Fatal(err)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if state.Ply != len(rec.rows) {
		t.Errorf("live game has %d plies, persisted log has %v", state.Ply, rec.rows)
	}
}
