package cubetwist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPuzzleIsSolved(t *testing.T) {
	for size := MinSize; size <= MaxSize; size++ {
		p, err := NewPuzzle(size)
		require.NoError(t, err)
		assert.Equal(t, size*size*size, p.Len(), "size %d", size)
		assert.True(t, IsSolved(p), "new %dx%dx%d should be solved", size, size, size)
	}
}

func TestNewPuzzleRejectsSize(t *testing.T) {
	for _, size := range []int{-1, 0, 1, 5, 10} {
		_, err := NewPuzzle(size)
		assert.ErrorIs(t, err, ErrInvalidSize, "size %d", size)
	}
}

func TestMustPuzzlePanics(t *testing.T) {
	assert.Panics(t, func() { MustPuzzle(7) })
}

func TestCoreCubies(t *testing.T) {
	want := map[int]int{2: 0, 3: 1, 4: 8}
	for size, cores := range want {
		p := MustPuzzle(size)
		n := 0
		for _, c := range p.Cubies() {
			if c.IsCore() {
				n++
			}
		}
		assert.Equal(t, cores, n, "size %d", size)
	}
}

func TestStickerCounts(t *testing.T) {
	// Every outer face carries N*N stickers of its own color.
	for size := MinSize; size <= MaxSize; size++ {
		p := MustPuzzle(size)
		counts := map[Color]int{}
		for _, c := range p.Cubies() {
			for _, col := range c.Colors {
				if col != NoColor {
					counts[col]++
				}
			}
		}
		for _, col := range []Color{Red, Orange, White, Yellow, Green, Blue} {
			assert.Equal(t, size*size, counts[col], "size %d color %s", size, col)
		}
	}
}

func TestLatticeCoords(t *testing.T) {
	assert.Equal(t, []float64{-0.5, 0.5}, LatticeCoords(2))
	assert.Equal(t, []float64{-1, 0, 1}, LatticeCoords(3))
	assert.Equal(t, []float64{-1.5, -0.5, 0.5, 1.5}, MustPuzzle(4).LatticeCoords())
}

func TestSnapCoord(t *testing.T) {
	tests := []struct {
		v    float64
		size int
		want float64
	}{
		{0.4, 3, 0},
		{0.6, 3, 1},
		{-0.9, 3, -1},
		{0.4, 4, 0.5},
		{1.2, 4, 1.5},
		{-7, 4, -1.5},
		{3, 2, 0.5},
		{-0.1, 2, -0.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SnapCoord(tt.v, tt.size), "SnapCoord(%v, %d)", tt.v, tt.size)
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0.5, MustPuzzle(2).Offset())
	assert.Equal(t, 1.0, MustPuzzle(3).Offset())
	assert.Equal(t, 1.5, MustPuzzle(4).Offset())
}

func TestCloneIsIndependent(t *testing.T) {
	p := MustPuzzle(3)
	c := p.Clone()
	require.True(t, p.Equal(c))

	Apply(c, NewMove(AxisY, 1, CCW))
	assert.False(t, p.Equal(c))
	assert.True(t, IsSolved(p))
}

func TestReset(t *testing.T) {
	p := MustPuzzle(4)
	Apply(p, NewMove(AxisZ, 0.5, CW))
	require.False(t, IsSolved(p))

	p.Reset()
	assert.True(t, p.Equal(MustPuzzle(4)))
}

func TestCubieAt(t *testing.T) {
	p := MustPuzzle(3)
	i := p.CubieAt(V3(1, 1, 1))
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, Point{2, 2, 2}, p.Cubie(i).Home)

	assert.Equal(t, -1, p.CubieAt(V3(0.5, 0, 0)))
	assert.Equal(t, -1, p.CubieAt(V3(3, 3, 3)))
}

func TestCubieColorToward(t *testing.T) {
	p := MustPuzzle(3)
	c := p.Cubie(p.CubieAt(V3(1, 1, 1)))

	assert.Equal(t, Red, c.ColorToward(SignedAxis{AxisX, 1}))
	assert.Equal(t, White, c.ColorToward(SignedAxis{AxisY, 1}))
	assert.Equal(t, Green, c.ColorToward(SignedAxis{AxisZ, 1}))
	assert.Equal(t, NoColor, c.ColorToward(SignedAxis{AxisX, -1}))
}
