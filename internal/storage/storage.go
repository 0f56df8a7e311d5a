package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store records sessions and their move logs in SQLite. Writes are queued
// and applied by a single writer goroutine, in submission order.
type Store struct {
	db           *sql.DB
	path         string
	writeChan    chan writeOp
	healthStatus atomic.Bool
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

// ErrStoreClosed is returned by Sync once Close has stopped the writer.
var ErrStoreClosed = errors.New("store closed")

// writeOp is a queued write, or a Sync barrier when done is set.
type writeOp struct {
	fn   func(*sql.Tx) error
	done chan struct{}
}

// NewStore creates a new storage instance with async writer
func NewStore(dataSourceName string, devMode bool) (*Store, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if devMode {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// a single connection keeps the pragmas in force for every statement
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithCancel(context.Background())

	s := &Store{
		db:        db,
		path:      dataSourceName,
		writeChan: make(chan writeOp, 1000),
		ctx:       ctx,
		cancel:    cancel,
	}
	s.healthStatus.Store(true)

	s.wg.Add(1)
	go s.writerLoop()

	return s, nil
}

func (s *Store) writerLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			// Drain remaining writes
			for {
				select {
				case op := <-s.writeChan:
					s.handle(op)
				default:
					return
				}
			}

		case op := <-s.writeChan:
			s.handle(op)
		}
	}
}

func (s *Store) handle(op writeOp) {
	if op.done != nil {
		close(op.done)
		return
	}
	if s.healthStatus.Load() {
		s.executeWrite(op.fn)
	}
}

func (s *Store) executeWrite(fn func(*sql.Tx) error) {
	tx, err := s.db.Begin()
	if err != nil {
		log.Printf("storage degraded: failed to begin transaction: %v", err)
		s.healthStatus.Store(false)
		return
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		log.Printf("storage degraded: write operation failed: %v", err)
		s.healthStatus.Store(false)
		return
	}

	if err := tx.Commit(); err != nil {
		log.Printf("storage degraded: failed to commit: %v", err)
		s.healthStatus.Store(false)
	}
}

// enqueue hands fn to the writer, dropping it when degraded or when the queue is full.
func (s *Store) enqueue(what string, fn func(*sql.Tx) error) error {
	if !s.healthStatus.Load() {
		return nil
	}
	select {
	case s.writeChan <- writeOp{fn: fn}:
	default:
		log.Printf("storage write queue full, dropping %s", what)
	}
	return nil
}

// RecordNewGame asynchronously records a new session
func (s *Store) RecordNewGame(record GameRecord) error {
	return s.enqueue("game record", func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO games (game_id, created_utc) VALUES (?, ?)`,
			record.GameID, record.CreatedUTC)
		return err
	})
}

// RecordMove asynchronously records a ply
func (s *Store) RecordMove(record MoveRecord) error {
	return s.enqueue("move record", func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT OR REPLACE INTO moves (
			game_id, ply, move, notation, player_color, move_time_utc
		) VALUES (?, ?, ?, ?, ?, ?)`,
			record.GameID, record.Ply, record.Move, record.Notation,
			record.PlayerColor, record.MoveTimeUTC,
		)
		return err
	})
}

// DeleteUndoneMoves asynchronously deletes plies after afterPly and clears
// any recorded result, since the position is live again.
func (s *Store) DeleteUndoneMoves(gameID string, afterPly int) error {
	return s.enqueue("undo", func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM moves WHERE game_id = ? AND ply > ?`, gameID, afterPly); err != nil {
			return err
		}
		_, err := tx.Exec(`UPDATE games SET result = '', winner = '', finished_at_ms = 0 WHERE game_id = ?`, gameID)
		return err
	})
}

// RecordResult asynchronously stores how a game ended
func (s *Store) RecordResult(gameID, result, winner string) error {
	finished := time.Now().UnixMilli()
	return s.enqueue("result", func(tx *sql.Tx) error {
		_, err := tx.Exec(`UPDATE games SET result = ?, winner = ?, finished_at_ms = ? WHERE game_id = ?`,
			result, winner, finished, gameID)
		return err
	})
}

// Sync blocks until every write queued before it has been handled.
func (s *Store) Sync(ctx context.Context) error {
	if s.ctx.Err() != nil {
		return ErrStoreClosed
	}
	done := make(chan struct{})
	select {
	case s.writeChan <- writeOp{done: done}:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return ErrStoreClosed
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return ErrStoreClosed
	}
}

func (s *Store) IsHealthy() bool {
	return s.healthStatus.Load()
}

// Close stops the writer, waiting briefly for queued writes, and closes the database.
func (s *Store) Close() error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		log.Printf("warning: storage writer shutdown timeout, some writes may be lost")
	}

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitDB creates the database schema
func (s *Store) InitDB() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return tx.Commit()
}

// QueryGames retrieves sessions, newest first. An empty or "*" gameID matches all.
func (s *Store) QueryGames(gameID string) ([]GameRecord, error) {
	query := `SELECT game_id, created_utc, result, winner, finished_at_ms FROM games WHERE 1=1`
	var args []interface{}
	if gameID != "" && gameID != "*" {
		query += " AND game_id = ?"
		args = append(args, gameID)
	}
	query += " ORDER BY created_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		if err := rows.Scan(&g.GameID, &g.CreatedUTC, &g.Result, &g.Winner, &g.FinishedAtMs); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return games, nil
}

// QueryMoves returns the recorded plies of a game in order.
func (s *Store) QueryMoves(gameID string) ([]MoveRecord, error) {
	rows, err := s.db.Query(`SELECT game_id, ply, move, notation, player_color, move_time_utc
		FROM moves WHERE game_id = ? ORDER BY ply`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(&m.GameID, &m.Ply, &m.Move, &m.Notation, &m.PlayerColor, &m.MoveTimeUTC); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return moves, nil
}
