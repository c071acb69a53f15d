// Package sessionlog writes and reads JSONL logs of play sessions. The
// first line is a header; every following line is one event.
package sessionlog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SeamusWaldron/cubetwist"
)

// Version is the log format version written in the header.
const Version = "1.0"

// ErrEmptyLog is returned when a log file has no header line.
var ErrEmptyLog = errors.New("sessionlog: empty log file")

// EventType identifies the type of logged event.
type EventType string

const (
	EventKeyPress    EventType = "key_press"
	EventDrag        EventType = "drag"
	EventMoveQueued  EventType = "move_queued"
	EventMoveApplied EventType = "move_applied"
	EventSettled     EventType = "settled"
	EventScramble    EventType = "scramble"
	EventSolved      EventType = "solved"
	EventReset       EventType = "reset"
)

// MoveData is the serialized form of a move.
type MoveData struct {
	Axis      string  `json:"axis"`
	Slice     float64 `json:"slice"`
	Direction int     `json:"direction"`
}

// NewMoveData converts a move for logging.
func NewMoveData(m cubetwist.Move) *MoveData {
	return &MoveData{Axis: m.Axis.String(), Slice: m.Slice, Direction: m.Direction}
}

// Move converts the logged move back. Unknown axes return an error.
func (d MoveData) Move() (cubetwist.Move, error) {
	axis, err := cubetwist.ParseAxis(d.Axis)
	if err != nil {
		return cubetwist.Move{}, err
	}
	return cubetwist.NewMove(axis, d.Slice, d.Direction), nil
}

// Event represents a single logged event.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	ElapsedMs int64     `json:"elapsed_ms"`
	EventType EventType `json:"event_type"`
	Key       string    `json:"key,omitempty"`
	Move      *MoveData `json:"move,omitempty"`
	Size      int       `json:"size,omitempty"`
	SolveTime string    `json:"solve_time,omitempty"`
	Count     int       `json:"count,omitempty"`
}

// Log represents a complete session log.
type Log struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Size      int       `json:"size"`
	GameID    string    `json:"game_id,omitempty"`
	Events    []Event   `json:"events"`
}

type header struct {
	Type      string    `json:"type"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Size      int       `json:"size"`
	GameID    string    `json:"game_id,omitempty"`
}

// Logger appends events to a session log file. It is safe for concurrent
// use. A zero or unstarted Logger drops every event.
type Logger struct {
	mu        sync.Mutex
	file      *os.File
	enc       *json.Encoder
	startTime time.Time
	now       func() time.Time
}

// NewLogger creates a logger that is not yet writing.
func NewLogger() *Logger {
	return &Logger{now: time.Now}
}

// Start creates a new log file in dir and writes the header.
func (l *Logger) Start(dir string, size int, gameID string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.now == nil {
		l.now = time.Now
	}
	l.startTime = l.now()

	// Create log file with timestamp
	filename := fmt.Sprintf("session_%s.jsonl", l.startTime.Format("20060102_150405.000"))
	file, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	l.file = file
	l.enc = json.NewEncoder(file)

	return l.enc.Encode(header{
		Type:      "header",
		Version:   Version,
		CreatedAt: l.startTime,
		Size:      size,
		GameID:    gameID,
	})
}

// LogKeyPress logs a key press.
func (l *Logger) LogKeyPress(key string) {
	l.write(Event{EventType: EventKeyPress, Key: key})
}

// LogDrag logs a drag gesture that produced m.
func (l *Logger) LogDrag(m cubetwist.Move) {
	l.write(Event{EventType: EventDrag, Move: NewMoveData(m)})
}

// LogMoveQueued logs a move entering the scheduler.
func (l *Logger) LogMoveQueued(m cubetwist.Move) {
	l.write(Event{EventType: EventMoveQueued, Move: NewMoveData(m)})
}

// LogMoveApplied logs a move that landed on the puzzle.
func (l *Logger) LogMoveApplied(m cubetwist.Move) {
	l.write(Event{EventType: EventMoveApplied, Move: NewMoveData(m)})
}

// LogSettled logs the move queue draining.
func (l *Logger) LogSettled() {
	l.write(Event{EventType: EventSettled})
}

// LogScramble logs the start of a scramble of count moves.
func (l *Logger) LogScramble(size, count int) {
	l.write(Event{EventType: EventScramble, Size: size, Count: count})
}

// LogSolved logs a win with the formatted solve time.
func (l *Logger) LogSolved(solveTime string) {
	l.write(Event{EventType: EventSolved, SolveTime: solveTime})
}

// LogReset logs the puzzle being rebuilt at size.
func (l *Logger) LogReset(size int) {
	l.write(Event{EventType: EventReset, Size: size})
}

func (l *Logger) write(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.enc == nil {
		return
	}
	now := l.now()
	e.Timestamp = now
	e.ElapsedMs = now.Sub(l.startTime).Milliseconds()
	// A failed write loses one event; the game keeps running.
	_ = l.enc.Encode(e)
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.enc = nil
	return err
}

// FilePath returns the current log file path.
func (l *Logger) FilePath() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Name()
	}
	return ""
}

// Load reads a session log from a JSONL file.
func Load(path string) (*Log, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	log := &Log{Events: make([]Event, 0)}

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		// First line is the header
		if lineNum == 1 {
			var h header
			if err := json.Unmarshal(line, &h); err != nil {
				return nil, fmt.Errorf("failed to parse header: %w", err)
			}
			log.Version = h.Version
			log.CreatedAt = h.CreatedAt
			log.Size = h.Size
			log.GameID = h.GameID
			continue
		}

		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("failed to parse event at line %d: %w", lineNum, err)
		}
		log.Events = append(log.Events, event)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}
	if lineNum == 0 {
		return nil, ErrEmptyLog
	}

	return log, nil
}

// AppliedMoves returns the moves that landed on the puzzle since the last
// reset, in order. Replaying them on a fresh puzzle of log.Size rebuilds
// the final state.
func (log *Log) AppliedMoves() ([]cubetwist.Move, error) {
	var moves []cubetwist.Move
	for i, e := range log.Events {
		switch e.EventType {
		case EventReset:
			moves = moves[:0]
		case EventMoveApplied:
			if e.Move == nil {
				return nil, fmt.Errorf("event %d: move_applied without move", i)
			}
			m, err := e.Move.Move()
			if err != nil {
				return nil, fmt.Errorf("event %d: %w", i, err)
			}
			moves = append(moves, m)
		}
	}
	return moves, nil
}

// List returns the session log files in dir, oldest first. A missing
// directory yields no files.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jsonl") {
			logs = append(logs, e.Name())
		}
	}

	// Names carry the timestamp, so name order is time order.
	sort.Strings(logs)
	return logs, nil
}
