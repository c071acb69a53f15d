package smartcube

import (
	"fmt"

	"github.com/SeamusWaldron/cubetwist"
)

// FaceColor is the center color GoCube reports a turn by.
type FaceColor byte

const (
	ColorBlue FaceColor = iota
	ColorGreen
	ColorWhite
	ColorYellow
	ColorRed
	ColorOrange
)

func (c FaceColor) Valid() bool {
	return c <= ColorOrange
}

func (c FaceColor) String() string {
	switch c {
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorWhite:
		return "white"
	case ColorYellow:
		return "yellow"
	case ColorRed:
		return "red"
	case ColorOrange:
		return "orange"
	default:
		return fmt.Sprintf("color(%d)", byte(c))
	}
}

// Normal returns the world face that carries this color on a solved
// cubetwist puzzle.
func (c FaceColor) Normal() cubetwist.SignedAxis {
	switch c {
	case ColorRed:
		return cubetwist.SignedAxis{Axis: cubetwist.AxisX, Sign: 1}
	case ColorOrange:
		return cubetwist.SignedAxis{Axis: cubetwist.AxisX, Sign: -1}
	case ColorWhite:
		return cubetwist.SignedAxis{Axis: cubetwist.AxisY, Sign: 1}
	case ColorYellow:
		return cubetwist.SignedAxis{Axis: cubetwist.AxisY, Sign: -1}
	case ColorGreen:
		return cubetwist.SignedAxis{Axis: cubetwist.AxisZ, Sign: 1}
	default:
		return cubetwist.SignedAxis{Axis: cubetwist.AxisZ, Sign: -1}
	}
}

// Move converts the rotation into an outer layer turn on a puzzle of the
// given size. Clockwise is as seen looking at the turned face, which is a
// negative turn about the face's outward normal.
func (r Rotation) Move(size int) (cubetwist.Move, error) {
	if size < cubetwist.MinSize || size > cubetwist.MaxSize {
		return cubetwist.Move{}, fmt.Errorf("%w: got %d", cubetwist.ErrInvalidSize, size)
	}
	if !r.Color.Valid() {
		return cubetwist.Move{}, fmt.Errorf("%w: face color %d", cubetwist.ErrInvalidMove, byte(r.Color))
	}

	n := r.Color.Normal()
	slice := float64(n.Sign) * float64(size-1) / 2

	dir := n.Sign
	if r.Clockwise {
		dir = -n.Sign
	}
	return cubetwist.NewMove(n.Axis, slice, dir), nil
}

// Notation returns the standard face letter for the rotation, assuming
// white up and green front.
func (r Rotation) Notation() string {
	face := map[FaceColor]string{
		ColorWhite:  "U",
		ColorYellow: "D",
		ColorGreen:  "F",
		ColorBlue:   "B",
		ColorRed:    "R",
		ColorOrange: "L",
	}[r.Color]
	if !r.Clockwise {
		face += "'"
	}
	return face
}
