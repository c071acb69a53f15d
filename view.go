package cubetwist

import (
	"math"
	"strings"
)

// Frame is the screen frame of a view snapped to world axes. Normal points
// from the puzzle toward the viewer.
type Frame struct {
	Right  SignedAxis
	Up     SignedAxis
	Normal SignedAxis
}

// FrameOf snaps an alignment to a right-handed frame. When the camera is
// rolled so that right and up resolve to the same world axis, up falls
// back to the next closest axis.
func FrameOf(a Alignment) Frame {
	right := SignedAxis{Axis: a.VAxis, Sign: a.VSign}
	up := SignedAxis{Axis: a.HAxis, Sign: a.HSign}

	if up.Axis == right.Axis {
		best := -1.0
		for _, axis := range Axes {
			if axis == right.Axis {
				continue
			}
			d := axis.Unit().Dot(a.Up)
			if math.Abs(d) > best {
				best = math.Abs(d)
				up = SignedAxis{Axis: axis, Sign: sign(d)}
			}
		}
	}

	return Frame{Right: right, Up: up, Normal: right.Cross(up)}
}

// FaceGrid returns the stickers of the world face normal as seen by a
// viewer whose screen right and up are right and up. Row 0 is the top row
// and column 0 the left column. Cells without a readable sticker are
// NoColor.
func FaceGrid(p *Puzzle, normal, right, up SignedAxis) [][]Color {
	n := p.size
	shell := p.shell()
	byPos := p.indexByPosition()

	grid := make([][]Color, n)
	for r := 0; r < n; r++ {
		grid[r] = make([]Color, n)
		for c := 0; c < n; c++ {
			pt := facePoint(shell, normal, right, up, r, c)
			if i, ok := byPos[pt]; ok {
				grid[r][c] = p.cubies[i].ColorToward(normal)
			}
		}
	}
	return grid
}

func facePoint(shell int, normal, right, up SignedAxis, row, col int) Point {
	var pt Point
	pt.Set(normal.Axis, shell*normal.Sign)
	pt.Set(right.Axis, (2*col-shell)*right.Sign)
	pt.Set(up.Axis, (shell-2*row)*up.Sign)
	return pt
}

// CellPosition returns the world position of the cubie showing the front
// face cell at row and col on a puzzle of the given size.
func (f Frame) CellPosition(size, row, col int) Vec3 {
	return facePoint(size-1, f.Normal, f.Right, f.Up, row, col).Vec()
}

// PuzzleNet is the six faces of a puzzle unfolded around the face the
// camera looks at.
type PuzzleNet struct {
	Frame Frame

	Front [][]Color
	Back  [][]Color
	Up    [][]Color
	Down  [][]Color
	Left  [][]Color
	Right [][]Color
}

// Net unfolds p relative to the camera alignment. Side faces are seen as
// if the puzzle were turned to show them, so adjacent edges line up in the
// usual cross layout.
func Net(p *Puzzle, a Alignment) PuzzleNet {
	f := FrameOf(a)
	n, r, u := f.Normal, f.Right, f.Up

	return PuzzleNet{
		Frame: f,
		Front: FaceGrid(p, n, r, u),
		Back:  FaceGrid(p, n.Neg(), r.Neg(), u),
		Up:    FaceGrid(p, u, r, n.Neg()),
		Down:  FaceGrid(p, u.Neg(), r, n),
		Left:  FaceGrid(p, r.Neg(), n, u),
		Right: FaceGrid(p, r, n.Neg(), u),
	}
}

// String renders the net as letters in a cross:
//
//	  U
//	L F R B
//	  D
func (pn PuzzleNet) String() string {
	size := len(pn.Front)
	pad := strings.Repeat(" ", size+1)
	var b strings.Builder

	writeRow := func(row []Color) {
		for _, c := range row {
			b.WriteString(c.String())
		}
	}

	for r := 0; r < size; r++ {
		b.WriteString(pad)
		writeRow(pn.Up[r])
		b.WriteByte('\n')
	}
	for r := 0; r < size; r++ {
		for i, face := range [][][]Color{pn.Left, pn.Front, pn.Right, pn.Back} {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeRow(face[r])
		}
		b.WriteByte('\n')
	}
	for r := 0; r < size; r++ {
		b.WriteString(pad)
		writeRow(pn.Down[r])
		b.WriteByte('\n')
	}
	return b.String()
}
