package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Game represents one played game in the database.
type Game struct {
	GameID     string
	Size       int
	Scramble   *string
	StartedAt  time.Time
	EndedAt    *time.Time
	DurationMs *int64
	MoveCount  int
	Solved     bool
	PlayerName *string
}

// Duration returns the solve time, or zero if the game never ended.
func (g Game) Duration() time.Duration {
	if g.DurationMs == nil {
		return 0
	}
	return time.Duration(*g.DurationMs) * time.Millisecond
}

// GameRepository provides CRUD operations for games.
type GameRepository struct {
	db  *DB
	now func() time.Time
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *DB) *GameRepository {
	return &GameRepository{db: db, now: time.Now}
}

// Create creates a new game and returns its ID.
func (r *GameRepository) Create(ctx context.Context, size int, scramble string) (string, error) {
	id := uuid.New().String()
	startedAt := r.now().UTC()

	var scramblePtr *string
	if scramble != "" {
		scramblePtr = &scramble
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO games (game_id, size, scramble, started_at)
		VALUES (?, ?, ?, ?)
	`, id, size, scramblePtr, startedAt.Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return id, nil
}

// Finish marks a game as ended. duration is the solve time measured by
// the game timer; solved is false for abandoned games.
func (r *GameRepository) Finish(ctx context.Context, gameID string, duration time.Duration, solved bool, playerName string) error {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM game_moves WHERE game_id = ?", gameID).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count moves: %w", err)
	}

	var namePtr *string
	if playerName != "" {
		namePtr = &playerName
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE games
		SET ended_at = ?, duration_ms = ?, move_count = ?, solved = ?, player_name = ?
		WHERE game_id = ?
	`, r.now().UTC().Format(time.RFC3339Nano), duration.Milliseconds(), count, solved, namePtr, gameID)
	if err != nil {
		return fmt.Errorf("failed to finish game: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("game %s: %w", gameID, ErrNotFound)
	}

	return nil
}

const gameColumns = `game_id, size, scramble, started_at, ended_at, duration_ms, move_count, solved, player_name`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(s rowScanner) (*Game, error) {
	var g Game
	var startedAtStr string
	var endedAtStr sql.NullString

	err := s.Scan(
		&g.GameID, &g.Size, &g.Scramble, &startedAtStr, &endedAtStr,
		&g.DurationMs, &g.MoveCount, &g.Solved, &g.PlayerName,
	)
	if err != nil {
		return nil, err
	}

	g.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAtStr)
	if endedAtStr.Valid {
		t, _ := time.Parse(time.RFC3339Nano, endedAtStr.String)
		g.EndedAt = &t
	}
	return &g, nil
}

// Get retrieves a game by ID. Returns ErrNotFound if it does not exist.
func (r *GameRepository) Get(ctx context.Context, gameID string) (*Game, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE game_id = ?`, gameID)
	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return g, nil
}

// GetLast retrieves the most recent game.
func (r *GameRepository) GetLast(ctx context.Context) (*Game, error) {
	games, err := r.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, ErrNotFound
	}
	return &games[0], nil
}

// List retrieves recent games, newest first.
func (r *GameRepository) List(ctx context.Context, limit int) ([]Game, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+gameColumns+`
		FROM games
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read games: %w", err)
	}

	return games, nil
}

// Delete deletes a game and its moves.
func (r *GameRepository) Delete(ctx context.Context, gameID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM games WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}
