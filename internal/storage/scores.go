package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubetwist"
)

// ScoreRepository stores ranking entries. It implements
// cubetwist.ScoreStore.
type ScoreRepository struct {
	db   *DB
	size int
	now  func() time.Time
}

var _ cubetwist.ScoreStore = (*ScoreRepository)(nil)

// NewScoreRepository creates a score repository for one puzzle size.
// Each size has its own ranking.
func NewScoreRepository(db *DB, size int) *ScoreRepository {
	return &ScoreRepository{db: db, size: size, now: time.Now}
}

// SaveScore records a result and returns the updated top ranking. Only
// the best cubetwist.MaxRankEntries rows of the size are kept. A blank
// name is stored as cubetwist.DefaultPlayerName.
func (r *ScoreRepository) SaveScore(ctx context.Context, name, timeText string) ([]cubetwist.Score, error) {
	err := r.db.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO scores (name, time_text, size, created_at)
			VALUES (?, ?, ?, ?)
		`, cubetwist.PlayerName(name), timeText, r.size, r.now().UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to save score: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			DELETE FROM scores
			WHERE size = ? AND score_id NOT IN (
				SELECT score_id FROM scores
				WHERE size = ?
				ORDER BY time_text, score_id
				LIMIT ?
			)
		`, r.size, r.size, cubetwist.MaxRankEntries)
		if err != nil {
			return fmt.Errorf("failed to trim scores: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.Rank(ctx)
}

// Rank returns the best cubetwist.MaxRankEntries scores, fastest first.
func (r *ScoreRepository) Rank(ctx context.Context) ([]cubetwist.Score, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, time_text
		FROM scores
		WHERE size = ?
		ORDER BY time_text, score_id
		LIMIT ?
	`, r.size, cubetwist.MaxRankEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranking: %w", err)
	}
	defer rows.Close()

	var scores []cubetwist.Score
	for rows.Next() {
		var s cubetwist.Score
		if err := rows.Scan(&s.Name, &s.Time); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ranking: %w", err)
	}

	return cubetwist.RankScores(scores), nil
}

// Clear deletes every score for the repository's size.
func (r *ScoreRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM scores WHERE size = ?", r.size); err != nil {
		return fmt.Errorf("failed to clear scores: %w", err)
	}
	return nil
}
