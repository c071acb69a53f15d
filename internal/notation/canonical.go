// Package notation converts between puzzle moves and face notation.
//
// Outer layers use the face letters R L U D F B. A plain letter is a
// clockwise quarter turn seen from outside that face, a ' suffix turns
// counter-clockwise and a 2 suffix turns twice. The 3x3x3 middle slices
// are M (follows L), E (follows D) and S (follows F). The inner slices of
// a 4x4x4 are 2R 2L 2U 2D 2F 2B and follow their face.
package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubetwist"
)

// ErrNotation is returned for tokens that name no layer of the puzzle.
var ErrNotation = errors.New("notation: invalid move")

// axisFaces names the faces and middle slice of each axis.
type axisFaces struct {
	pos, neg, mid byte
	// midDir is the direction a plain middle-slice letter turns.
	midDir int
}

var faces = map[cubetwist.Axis]axisFaces{
	cubetwist.AxisX: {'R', 'L', 'M', cubetwist.CCW},
	cubetwist.AxisY: {'U', 'D', 'E', cubetwist.CCW},
	cubetwist.AxisZ: {'F', 'B', 'S', cubetwist.CW},
}

// Format returns the face notation of a single quarter turn. ok is false
// when the layer has no name on a puzzle of this size.
func Format(m cubetwist.Move, size int) (s string, ok bool) {
	f, known := faces[m.Axis]
	if !known {
		return "", false
	}
	off := float64(size-1) / 2

	var prefix string
	var letter byte
	var plain int
	switch {
	case m.Slice == off:
		letter, plain = f.pos, cubetwist.CW
	case m.Slice == -off:
		letter, plain = f.neg, cubetwist.CCW
	case size == 3 && m.Slice == 0:
		letter, plain = f.mid, f.midDir
	case size == 4 && m.Slice == 0.5:
		prefix, letter, plain = "2", f.pos, cubetwist.CW
	case size == 4 && m.Slice == -0.5:
		prefix, letter, plain = "2", f.neg, cubetwist.CCW
	default:
		return "", false
	}

	s = prefix + string(letter)
	if m.Direction != plain {
		s += "'"
	}
	return s, true
}

// FormatSequence formats moves as a space-separated string. Two equal
// consecutive quarter turns are written as a half turn. Moves without a
// name fall back to Move.String.
func FormatSequence(moves []cubetwist.Move, size int) string {
	parts := make([]string, 0, len(moves))
	for i := 0; i < len(moves); i++ {
		m := moves[i]
		s, ok := Format(m, size)
		if !ok {
			parts = append(parts, m.String())
			continue
		}
		if i+1 < len(moves) && sameTurn(m, moves[i+1]) {
			s = strings.TrimSuffix(s, "'") + "2"
			i++
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func sameTurn(a, b cubetwist.Move) bool {
	return a.Axis == b.Axis && a.Slice == b.Slice && a.Direction == b.Direction
}

// Parse parses one token such as R, U', F2 or 2R'. Half turns return two
// quarter turns.
func Parse(token string, size int) ([]cubetwist.Move, error) {
	s := strings.TrimSpace(token)
	bad := fmt.Errorf("%w: %q on %dx%dx%d", ErrNotation, token, size, size, size)

	inner := false
	if size == 4 && strings.HasPrefix(s, "2") {
		inner = true
		s = s[1:]
	}
	if s == "" {
		return nil, bad
	}

	letter, suffix := s[0], s[1:]
	m, ok := layerMove(letter, size, inner)
	if !ok {
		return nil, bad
	}
	if inner {
		if m.Slice > 0 {
			m.Slice = 0.5
		} else {
			m.Slice = -0.5
		}
	}

	switch suffix {
	case "":
		return []cubetwist.Move{m}, nil
	case "'", "`":
		return []cubetwist.Move{m.Inverse()}, nil
	case "2", "2'":
		return []cubetwist.Move{m, m}, nil
	default:
		return nil, bad
	}
}

// layerMove returns the plain quarter turn named by a face letter.
func layerMove(letter byte, size int, inner bool) (cubetwist.Move, bool) {
	off := float64(size-1) / 2
	for _, axis := range cubetwist.Axes {
		f := faces[axis]
		switch {
		case letter == f.pos:
			return cubetwist.NewMove(axis, off, cubetwist.CW), true
		case letter == f.neg:
			return cubetwist.NewMove(axis, -off, cubetwist.CCW), true
		case letter == f.mid && size == 3 && !inner:
			return cubetwist.NewMove(axis, 0, f.midDir), true
		}
	}
	return cubetwist.Move{}, false
}

// ParseSequence parses a space-separated sequence of moves.
func ParseSequence(s string, size int) ([]cubetwist.Move, error) {
	var moves []cubetwist.Move
	for _, part := range strings.Fields(s) {
		ms, err := Parse(part, size)
		if err != nil {
			return nil, err
		}
		moves = append(moves, ms...)
	}
	return moves, nil
}
