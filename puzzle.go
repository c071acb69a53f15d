package cubetwist

import (
	"fmt"
	"math"
)

// Supported puzzle sizes.
const (
	MinSize = 2
	MaxSize = 4
)

// Puzzle is an NxNxN twisty puzzle. Cubies live in a flat slice and are
// selected by position; none are created or destroyed after NewPuzzle.
type Puzzle struct {
	size   int
	cubies []Cubie
}

// NewPuzzle creates a solved puzzle of the given size.
func NewPuzzle(size int) (*Puzzle, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	p := &Puzzle{size: size}
	p.build()
	return p, nil
}

// MustPuzzle is like NewPuzzle but panics on an invalid size.
func MustPuzzle(size int) *Puzzle {
	p, err := NewPuzzle(size)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Puzzle) build() {
	shell := p.size - 1
	p.cubies = make([]Cubie, 0, p.size*p.size*p.size)
	for x := 0; x < p.size; x++ {
		for y := 0; y < p.size; y++ {
			for z := 0; z < p.size; z++ {
				home := Point{2*x - shell, 2*y - shell, 2*z - shell}
				p.cubies = append(p.cubies, newCubie(home, shell))
			}
		}
	}
}

// Size returns N.
func (p *Puzzle) Size() int {
	return p.size
}

// Offset returns (N-1)/2, the world coordinate of the outer shell.
func (p *Puzzle) Offset() float64 {
	return float64(p.size-1) / 2
}

// shell returns the doubled coordinate of the outer shell.
func (p *Puzzle) shell() int {
	return p.size - 1
}

// Len returns the number of cubies (N³).
func (p *Puzzle) Len() int {
	return len(p.cubies)
}

// Cubie returns a copy of cubie i.
func (p *Puzzle) Cubie(i int) Cubie {
	return p.cubies[i]
}

// Cubies returns a copy of all cubies.
func (p *Puzzle) Cubies() []Cubie {
	out := make([]Cubie, len(p.cubies))
	copy(out, p.cubies)
	return out
}

// Clone creates a deep copy of the puzzle.
func (p *Puzzle) Clone() *Puzzle {
	return &Puzzle{size: p.size, cubies: p.Cubies()}
}

// Reset returns every cubie to its home placement.
func (p *Puzzle) Reset() {
	p.build()
}

// Equal reports whether both puzzles have every cubie in the same place
// and orientation.
func (p *Puzzle) Equal(o *Puzzle) bool {
	if p.size != o.size || len(p.cubies) != len(o.cubies) {
		return false
	}
	for i := range p.cubies {
		if p.cubies[i] != o.cubies[i] {
			return false
		}
	}
	return true
}

// LatticeCoords returns the valid slice coordinates along any axis,
// e.g. -1, 0, 1 for a 3x3x3 and -1.5, -0.5, 0.5, 1.5 for a 4x4x4.
func (p *Puzzle) LatticeCoords() []float64 {
	return LatticeCoords(p.size)
}

// LatticeCoords returns i - (size-1)/2 for i in 0..size-1.
func LatticeCoords(size int) []float64 {
	out := make([]float64, size)
	off := float64(size-1) / 2
	for i := range out {
		out[i] = float64(i) - off
	}
	return out
}

// SnapCoord returns the lattice coordinate of a size-N puzzle nearest to v.
// Values beyond the shell are clamped to the outer layer.
func SnapCoord(v float64, size int) float64 {
	off := float64(size-1) / 2
	i := math.Round(v + off)
	if i < 0 {
		i = 0
	}
	if last := float64(size - 1); i > last {
		i = last
	}
	return i - off
}

// CubieAt returns the index of the cubie currently at world position v,
// or -1 if none is within tolerance.
func (p *Puzzle) CubieAt(v Vec3) int {
	for i, c := range p.cubies {
		pos := c.Position.Vec()
		if math.Abs(pos.X-v.X) < sliceTolerance &&
			math.Abs(pos.Y-v.Y) < sliceTolerance &&
			math.Abs(pos.Z-v.Z) < sliceTolerance {
			return i
		}
	}
	return -1
}

// indexByPosition maps current positions to cubie indices.
func (p *Puzzle) indexByPosition() map[Point]int {
	m := make(map[Point]int, len(p.cubies))
	for i, c := range p.cubies {
		m[c.Position] = i
	}
	return m
}
