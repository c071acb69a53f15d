package cubetwist

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomMoves(r *rand.Rand, size, n int) []Move {
	slices := LatticeCoords(size)
	moves := make([]Move, n)
	for i := range moves {
		dir := CCW
		if r.IntN(2) == 1 {
			dir = CW
		}
		moves[i] = NewMove(Axes[r.IntN(3)], slices[r.IntN(len(slices))], dir)
	}
	return moves
}

func TestApplyOuterSlice3x3(t *testing.T) {
	p := MustPuzzle(3)
	before := p.Cubies()

	affected := Apply(p, NewMove(AxisX, 1, CCW))
	require.Len(t, affected, 9)

	moved := map[int]bool{}
	for _, i := range affected {
		moved[i] = true
	}

	untouched := 0
	for i, c := range p.Cubies() {
		if moved[i] {
			assert.Equal(t, 2, c.Position.X, "turned cubie left the slice")
			continue
		}
		assert.Equal(t, before[i], c)
		untouched++
	}
	assert.Equal(t, 18, untouched)
}

func TestApplyRotatesPositionAndStickers(t *testing.T) {
	p := MustPuzzle(3)
	i := p.CubieAt(V3(1, 1, 1))

	Apply(p, NewMove(AxisX, 1, CCW))

	c := p.Cubie(i)
	assert.Equal(t, Point{2, -2, 2}, c.Position)
	// The white +y sticker turns to face +z.
	assert.Equal(t, White, c.ColorToward(SignedAxis{AxisZ, 1}))
	assert.Equal(t, Green, c.ColorToward(SignedAxis{AxisY, -1}))
	assert.Equal(t, Red, c.ColorToward(SignedAxis{AxisX, 1}))
}

func TestApplyEvenSlice(t *testing.T) {
	p := MustPuzzle(2)
	assert.Len(t, Apply(p, NewMove(AxisY, 0.5, CW)), 4)

	p4 := MustPuzzle(4)
	assert.Len(t, Apply(p4, NewMove(AxisZ, -0.5, CCW)), 16)
}

func TestApplyEmptySliceIsNoop(t *testing.T) {
	for _, m := range []Move{
		NewMove(AxisX, 5, CCW),
		NewMove(AxisY, 0, CW),    // no middle layer on a 2x2
		NewMove(AxisZ, 0.25, CW), // between layers
	} {
		p := MustPuzzle(2)
		affected := Apply(p, m)
		assert.Empty(t, affected, "move %s", m)
		assert.True(t, p.Equal(MustPuzzle(2)), "move %s", m)
	}
}

func TestFourQuarterTurnsRestore(t *testing.T) {
	for size := MinSize; size <= MaxSize; size++ {
		for _, axis := range Axes {
			for _, slice := range LatticeCoords(size) {
				for _, dir := range []int{CCW, CW} {
					p := MustPuzzle(size)
					m := NewMove(axis, slice, dir)
					for i := 0; i < 4; i++ {
						Apply(p, m)
					}
					assert.True(t, p.Equal(MustPuzzle(size)), "size %d move %s x4", size, m)
				}
			}
		}
	}
}

func TestInverseSequenceRestores(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for size := MinSize; size <= MaxSize; size++ {
		for trial := 0; trial < 10; trial++ {
			moves := randomMoves(r, size, 40)
			p := MustPuzzle(size)
			ApplyAll(p, moves)
			for i := len(moves) - 1; i >= 0; i-- {
				Apply(p, moves[i].Inverse())
			}
			assert.True(t, p.Equal(MustPuzzle(size)), "size %d trial %d", size, trial)
		}
	}
}

func TestPositionsStayOnLattice(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for size := MinSize; size <= MaxSize; size++ {
		p := MustPuzzle(size)
		ApplyAll(p, randomMoves(r, size, 200))

		shell := size - 1
		seen := map[Point]bool{}
		for _, c := range p.Cubies() {
			for _, a := range Axes {
				v := c.Position.Get(a)
				assert.LessOrEqual(t, v, shell)
				assert.GreaterOrEqual(t, v, -shell)
				assert.Zero(t, (v+shell)%2, "off-lattice coordinate %d", v)
			}
			assert.GreaterOrEqual(t, c.Orientation.Index(), 0)
			assert.False(t, seen[c.Position], "two cubies at %s", c.Position)
			seen[c.Position] = true
		}
	}
}

func TestSliceMembers(t *testing.T) {
	p := MustPuzzle(4)
	assert.Len(t, SliceMembers(p, NewMove(AxisY, 1.5, CCW)), 16)
	assert.Empty(t, SliceMembers(p, NewMove(AxisY, 1, CCW)))
}

func TestMoveValidate(t *testing.T) {
	assert.NoError(t, NewMove(AxisX, 0, CCW).Validate())
	assert.ErrorIs(t, NewMove(Axis(4), 0, CCW).Validate(), ErrInvalidMove)
	assert.ErrorIs(t, NewMove(AxisX, 0, 2).Validate(), ErrInvalidMove)
}

func TestMoveString(t *testing.T) {
	assert.Equal(t, "x@1+", NewMove(AxisX, 1, CCW).String())
	assert.Equal(t, "z@-0.5-", NewMove(AxisZ, -0.5, CW).String())
}

func TestOrientationGroup(t *testing.T) {
	g := Group()
	require.Len(t, g, 24)
	assert.Equal(t, Identity, g[0])
	for i, o := range g {
		assert.Equal(t, i, o.Index())
		assert.Equal(t, Identity, o.Then(o.Inverse()))
	}
}

func TestSnapOrientation(t *testing.T) {
	o, ok := SnapOrientation([3][3]float64{
		{1e-9, -1, 0},
		{0.9999999, 0, 1e-7},
		{0, 0, 1},
	})
	require.True(t, ok)
	assert.Equal(t, QuarterTurn(AxisZ, CCW), o)

	_, ok = SnapOrientation([3][3]float64{{1, 1, 0}, {0, 1, 0}, {0, 0, 1}})
	assert.False(t, ok)
}
