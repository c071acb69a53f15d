package cubetwist

import (
	"fmt"
	"time"
)

// Default animation times.
const (
	DefaultDuration  = 300 * time.Millisecond
	ScrambleDuration = 50 * time.Millisecond
)

// Direction values for Move.Direction.
const (
	CCW = 1  // Positive quarter turn (right-hand rule)
	CW  = -1 // Negative quarter turn
)

// Move is a quarter turn of one slice.
type Move struct {
	Axis      Axis          // World axis of rotation
	Slice     float64       // Layer coordinate along Axis, e.g. -1, 0, 1 or ±0.5, ±1.5
	Direction int           // +1 or -1, right-hand rule sign
	Duration  time.Duration // Animation time; does not affect the resulting state
}

// NewMove creates a move with the default duration.
func NewMove(axis Axis, slice float64, dir int) Move {
	return Move{Axis: axis, Slice: slice, Direction: dir, Duration: DefaultDuration}
}

// WithDuration returns a copy of the move with the given duration.
func (m Move) WithDuration(d time.Duration) Move {
	m.Duration = d
	return m
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	inv := m
	inv.Direction = -m.Direction
	return inv
}

// Validate checks the caller contract: a known axis and a direction of
// +1 or -1. The engine itself never calls it.
func (m Move) Validate() error {
	if !m.Axis.Valid() {
		return fmt.Errorf("%w: axis %d", ErrInvalidMove, int(m.Axis))
	}
	if m.Direction != 1 && m.Direction != -1 {
		return fmt.Errorf("%w: direction %d", ErrInvalidMove, m.Direction)
	}
	return nil
}

// String returns a short description such as "x@1+" or "z@-0.5-".
func (m Move) String() string {
	d := "+"
	if m.Direction < 0 {
		d = "-"
	}
	return fmt.Sprintf("%s@%g%s", m.Axis, m.Slice, d)
}
