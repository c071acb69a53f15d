package cubetwist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var identityAlign = ResolveAlignment(V3(1, 0, 0), V3(0, 1, 0))

func TestDefaultKeyLayouts(t *testing.T) {
	assert.Equal(t, []string{"q", "e", "a", "d"}, DefaultKeyLayout(2).Keys())
	assert.Equal(t, []string{"q", "w", "e", "a", "s", "d"}, DefaultKeyLayout(3).Keys())
	assert.Equal(t, []string{"q", "w", "e", "r", "a", "s", "d", "f"}, DefaultKeyLayout(4).Keys())

	for size := MinSize; size <= MaxSize; size++ {
		assert.NoError(t, DefaultKeyLayout(size).Validate(size))
	}
}

func TestKeyLayoutValidate(t *testing.T) {
	err := KeyLayout{Columns: []string{"q", "w"}, Rows: []string{"a", "s", "d"}}.Validate(3)
	assert.ErrorIs(t, err, ErrInvalidLayout)

	err = KeyLayout{Columns: []string{"q", "w", "e"}, Rows: []string{"a", "Q", "d"}}.Validate(3)
	assert.ErrorIs(t, err, ErrInvalidLayout)

	err = KeyLayout{Columns: []string{"q", " ", "e"}, Rows: []string{"a", "s", "d"}}.Validate(3)
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestKeyLayoutLookup(t *testing.T) {
	l := DefaultKeyLayout(4)

	c, ok := l.Lookup("R")
	require.True(t, ok)
	assert.Equal(t, Control{Kind: ControlColumn, Index: 3}, c)

	c, ok = l.Lookup("s")
	require.True(t, ok)
	assert.Equal(t, Control{Kind: ControlRow, Index: 1}, c)

	_, ok = l.Lookup("z")
	assert.False(t, ok)
}

func TestTranslateKeyIdentity3x3(t *testing.T) {
	tr := NewTranslator(3)
	tests := []struct {
		key   string
		axis  Axis
		slice float64
		dir   int
	}{
		{"q", AxisX, -1, 1},
		{"w", AxisX, 0, 1},
		{"e", AxisX, 1, 1},
		// Rows count from the top.
		{"a", AxisY, 1, 1},
		{"s", AxisY, 0, 1},
		{"d", AxisY, -1, 1},
	}
	for _, tt := range tests {
		m, ok := tr.TranslateKey(tt.key, identityAlign)
		require.True(t, ok, tt.key)
		assert.Equal(t, tt.axis, m.Axis, tt.key)
		assert.Equal(t, tt.slice, m.Slice, tt.key)
		assert.Equal(t, tt.dir, m.Direction, tt.key)
		assert.Equal(t, DefaultDuration, m.Duration)
	}
}

func TestTranslateKeyFlippedCamera(t *testing.T) {
	tr := NewTranslator(3)

	// Camera right points along -x: the leftmost column is x = +1.
	a := ResolveAlignment(V3(-1, 0, 0), V3(0, 1, 0))
	m, ok := tr.TranslateKey("q", a)
	require.True(t, ok)
	assert.Equal(t, NewMove(AxisX, 1, -1), m)

	// Camera up points along -y: the top row is y = -1.
	a = ResolveAlignment(V3(1, 0, 0), V3(0, -1, 0))
	m, ok = tr.TranslateKey("a", a)
	require.True(t, ok)
	assert.Equal(t, NewMove(AxisY, -1, -1), m)
}

func TestTranslateKeyEvenSizes(t *testing.T) {
	m, ok := NewTranslator(4).TranslateKey("w", identityAlign)
	require.True(t, ok)
	assert.Equal(t, -0.5, m.Slice)

	m, ok = NewTranslator(4).TranslateKey("f", identityAlign)
	require.True(t, ok)
	assert.Equal(t, -1.5, m.Slice)

	m, ok = NewTranslator(2).TranslateKey("e", identityAlign)
	require.True(t, ok)
	assert.Equal(t, 0.5, m.Slice)

	_, ok = NewTranslator(2).TranslateKey("w", identityAlign)
	assert.False(t, ok, "w is not bound on a 2x2")
}

func TestTranslateKeyTurnedCamera(t *testing.T) {
	// Looking at the +x face: screen right is -z.
	a := ResolveAlignment(V3(0, 0, -1), V3(0, 1, 0))
	m, ok := NewTranslator(3).TranslateKey("q", a)
	require.True(t, ok)
	assert.Equal(t, NewMove(AxisZ, 1, -1), m)
}

func TestTranslateControlOutOfRange(t *testing.T) {
	tr := NewTranslator(3)
	_, ok := tr.TranslateControl(Control{Kind: ControlColumn, Index: 3}, identityAlign)
	assert.False(t, ok)
	_, ok = tr.TranslateControl(Control{Kind: ControlRow, Index: -1}, identityAlign)
	assert.False(t, ok)
	_, ok = tr.TranslateControl(Control{Kind: ControlKind(5), Index: 0}, identityAlign)
	assert.False(t, ok)
}

func TestTranslateDrag(t *testing.T) {
	tr := NewTranslator(3)
	pos := V3(1, 1, 1)

	tests := []struct {
		name   string
		dx, dy float64
		want   Move
	}{
		{"right", 30, 5, NewMove(AxisX, 1, 1)},
		{"left", -30, 5, NewMove(AxisX, 1, -1)},
		{"down", 5, 40, NewMove(AxisY, 1, 1)},
		{"up", -3, -40, NewMove(AxisY, 1, -1)},
		{"diagonal goes vertical", 20, -20, NewMove(AxisY, 1, -1)},
		{"at threshold", DragThreshold, 0, NewMove(AxisX, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := tr.TranslateDrag(pos, tt.dx, tt.dy, identityAlign)
			require.True(t, ok)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestTranslateDragBelowThreshold(t *testing.T) {
	_, ok := NewTranslator(3).TranslateDrag(V3(0, 0, 1), 9, -9, identityAlign)
	assert.False(t, ok)
}

func TestTranslateDragSnapsSlice(t *testing.T) {
	tr := NewTranslator(4)
	m, ok := tr.TranslateDrag(V3(1.5, -0.49, 0.5), 0, 25, identityAlign)
	require.True(t, ok)
	assert.Equal(t, NewMove(AxisY, -0.5, 1), m)

	// Flipped camera signs follow the alignment.
	a := ResolveAlignment(V3(-1, 0, 0), V3(0, -1, 0))
	m, ok = tr.TranslateDrag(V3(-1.5, 0.5, 1.5), 25, 0, a)
	require.True(t, ok)
	assert.Equal(t, NewMove(AxisX, -1.5, -1), m)

	// An outer 4x4 layer keeps its half-step coordinate and turns a full face.
	m, ok = tr.TranslateDrag(V3(1.62, 0.5, 1.5), 25, 0, identityAlign)
	require.True(t, ok)
	assert.Equal(t, NewMove(AxisX, 1.5, 1), m)
	assert.Len(t, Apply(MustPuzzle(4), m), 16)
}

func TestNewTranslatorWithLayout(t *testing.T) {
	l := KeyLayout{Columns: []string{"u", "i", "o"}, Rows: []string{"j", "k", "l"}}
	tr, err := NewTranslatorWithLayout(3, l)
	require.NoError(t, err)

	m, ok := tr.TranslateKey("o", identityAlign)
	require.True(t, ok)
	assert.Equal(t, 1.0, m.Slice)

	_, ok = tr.TranslateKey("q", identityAlign)
	assert.False(t, ok)

	_, err = NewTranslatorWithLayout(4, l)
	assert.ErrorIs(t, err, ErrInvalidLayout)
	_, err = NewTranslatorWithLayout(6, l)
	assert.ErrorIs(t, err, ErrInvalidSize)
}
