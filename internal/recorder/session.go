package recorder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/SeamusWaldron/cubetwist"
	"github.com/SeamusWaldron/cubetwist/internal/storage"
)

// Session errors.
var (
	ErrGameActive = errors.New("recorder: game already in progress")
	ErrNoGame     = errors.New("recorder: no game in progress")
)

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session records one game at a time: its scramble and every move that
// lands on the puzzle afterwards.
type Session struct {
	stateFile *StateFile
	now       func() time.Time

	mu        sync.RWMutex
	state     SessionState
	gameID    string
	size      int
	startTime time.Time
	moveIndex int

	// Repositories
	gameRepo *storage.GameRepository
	moveRepo *storage.MoveRepository

	// Callbacks
	onMove func(cubetwist.Move, string)
}

// NewSession creates a new session manager. stateFile may be nil.
func NewSession(db *storage.DB, stateFile *StateFile) *Session {
	return &Session{
		stateFile: stateFile,
		now:       time.Now,
		state:     StateIdle,
		gameRepo:  storage.NewGameRepository(db),
		moveRepo:  storage.NewMoveRepository(db),
	}
}

// SetMoveCallback sets a callback fired after each recorded move.
func (s *Session) SetMoveCallback(cb func(m cubetwist.Move, source string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMove = cb
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// GameID returns the current game ID.
func (s *Session) GameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gameID
}

// MoveCount returns the number of moves recorded, scramble included.
func (s *Session) MoveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moveIndex
}

// FormatMoves joins moves into the compact text stored as the scramble.
func FormatMoves(moves []cubetwist.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// Start begins recording a new game with the given scramble.
func (s *Session) Start(ctx context.Context, size int, scramble []cubetwist.Move) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", ErrGameActive
	}

	gameID, err := s.gameRepo.Create(ctx, size, FormatMoves(scramble))
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	if err := s.moveRepo.CreateBatch(ctx, gameID, scramble, 0, storage.SourceScramble); err != nil {
		return "", fmt.Errorf("failed to store scramble: %w", err)
	}

	s.gameID = gameID
	s.size = size
	s.startTime = s.now()
	s.moveIndex = len(scramble)
	s.state = StateRecording

	if s.stateFile != nil {
		// The game is recorded even if the state file cannot be written.
		_ = s.stateFile.SetActiveGame(gameID)
	}

	return gameID, nil
}

// RecordMove stores a move that landed on the puzzle. It is a no-op when
// no game is being recorded.
func (s *Session) RecordMove(ctx context.Context, m cubetwist.Move, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return nil
	}

	tsMs := s.now().Sub(s.startTime).Milliseconds()
	if _, err := s.moveRepo.Create(ctx, s.gameID, s.moveIndex, tsMs, m, source); err != nil {
		return fmt.Errorf("failed to store move: %w", err)
	}
	s.moveIndex++

	if s.onMove != nil {
		go s.onMove(m, source)
	}
	return nil
}

// End finishes the current game. elapsed is the solve time shown to the
// player; solved is false when the game was abandoned.
func (s *Session) End(ctx context.Context, elapsed time.Duration, solved bool, player string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNoGame
	}

	if err := s.gameRepo.Finish(ctx, s.gameID, elapsed, solved, player); err != nil {
		return fmt.Errorf("failed to end game: %w", err)
	}

	s.state = StateEnded

	if s.stateFile != nil {
		_ = s.stateFile.ClearActiveGame()
		_ = s.stateFile.SetLastGame(s.size, player)
	}

	return nil
}

// Resume continues recording a game left unfinished by an earlier run.
func (s *Session) Resume(ctx context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, err := s.gameRepo.Get(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}
	if game.EndedAt != nil {
		return fmt.Errorf("game %s already ended", gameID)
	}

	count, err := s.moveRepo.Count(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to get next move index: %w", err)
	}

	s.gameID = gameID
	s.size = game.Size
	s.startTime = game.StartedAt
	s.moveIndex = count
	s.state = StateRecording

	return nil
}
