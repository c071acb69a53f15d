package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/cubetwist"
)

// Move sources.
const (
	SourcePlayer    = "player"
	SourceScramble  = "scramble"
	SourceSmartCube = "smartcube"
)

// MoveRecord represents an applied move in the database.
type MoveRecord struct {
	MoveID    int64
	GameID    string
	MoveIndex int
	TsMs      int64
	Move      cubetwist.Move
	Source    string
}

// MoveRepository provides CRUD operations for game moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// Create records one move and returns its ID.
func (r *MoveRepository) Create(ctx context.Context, gameID string, moveIndex int, tsMs int64, m cubetwist.Move, source string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO game_moves (game_id, move_index, ts_ms, axis, slice, direction, source)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, gameID, moveIndex, tsMs, m.Axis.String(), m.Slice, m.Direction, source)
	if err != nil {
		return 0, fmt.Errorf("failed to create move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get move ID: %w", err)
	}

	return id, nil
}

// CreateBatch records several moves in a single transaction, numbering
// them from startIndex.
func (r *MoveRepository) CreateBatch(ctx context.Context, gameID string, moves []cubetwist.Move, startIndex int, source string) error {
	return r.db.Transaction(ctx, func(tx *sql.Tx) error {
		for i, m := range moves {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO game_moves (game_id, move_index, ts_ms, axis, slice, direction, source)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, gameID, startIndex+i, 0, m.Axis.String(), m.Slice, m.Direction, source)
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", startIndex+i, err)
			}
		}
		return nil
	})
}

// GetByGame retrieves all moves of a game in order.
func (r *MoveRepository) GetByGame(ctx context.Context, gameID string) ([]MoveRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT move_id, game_id, move_index, ts_ms, axis, slice, direction, source
		FROM game_moves
		WHERE game_id = ?
		ORDER BY move_index
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var records []MoveRecord
	for rows.Next() {
		var rec MoveRecord
		var axis string
		err := rows.Scan(
			&rec.MoveID, &rec.GameID, &rec.MoveIndex, &rec.TsMs,
			&axis, &rec.Move.Slice, &rec.Move.Direction, &rec.Source,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		rec.Move.Axis, err = cubetwist.ParseAxis(axis)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", rec.MoveID, err)
		}
		rec.Move.Duration = cubetwist.DefaultDuration
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read moves: %w", err)
	}

	return records, nil
}

// Moves returns just the moves of a game, optionally filtered by source.
func (r *MoveRepository) Moves(ctx context.Context, gameID string, sources ...string) ([]cubetwist.Move, error) {
	records, err := r.GetByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	keep := func(s string) bool {
		if len(sources) == 0 {
			return true
		}
		for _, want := range sources {
			if s == want {
				return true
			}
		}
		return false
	}

	var moves []cubetwist.Move
	for _, rec := range records {
		if keep(rec.Source) {
			moves = append(moves, rec.Move)
		}
	}
	return moves, nil
}

// Count returns the number of moves recorded for a game.
func (r *MoveRepository) Count(ctx context.Context, gameID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM game_moves WHERE game_id = ?", gameID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get move count: %w", err)
	}
	return count, nil
}
