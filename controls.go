package cubetwist

import (
	"fmt"
	"math"
	"strings"
)

// DragThreshold is the minimum drag distance, in pixels along either screen
// axis, for a gesture to count as a move rather than a click.
const DragThreshold = 10

// ControlKind distinguishes column controls from row controls.
type ControlKind int

const (
	ControlColumn ControlKind = iota
	ControlRow
)

func (k ControlKind) String() string {
	switch k {
	case ControlColumn:
		return "column"
	case ControlRow:
		return "row"
	default:
		return "unknown"
	}
}

// Control is a logical input: the Index-th column or row as seen on screen,
// counted from the left or the top.
type Control struct {
	Kind  ControlKind
	Index int
}

// KeyLayout assigns keys to the column and row controls of one size.
type KeyLayout struct {
	Columns []string `yaml:"columns" json:"columns"`
	Rows    []string `yaml:"rows" json:"rows"`
}

// DefaultKeyLayout returns the built-in layout for a size:
//
//	2: q e   / a d
//	3: q w e / a s d
//	4: q w e r / a s d f
func DefaultKeyLayout(size int) KeyLayout {
	switch size {
	case 2:
		return KeyLayout{Columns: []string{"q", "e"}, Rows: []string{"a", "d"}}
	case 4:
		return KeyLayout{Columns: []string{"q", "w", "e", "r"}, Rows: []string{"a", "s", "d", "f"}}
	default:
		return KeyLayout{Columns: []string{"q", "w", "e"}, Rows: []string{"a", "s", "d"}}
	}
}

// Validate checks that the layout has exactly size columns and rows and
// that no key is bound twice.
func (l KeyLayout) Validate(size int) error {
	if len(l.Columns) != size || len(l.Rows) != size {
		return fmt.Errorf("%w: need %d columns and %d rows, got %d and %d",
			ErrInvalidLayout, size, size, len(l.Columns), len(l.Rows))
	}
	seen := make(map[string]bool, 2*size)
	for _, k := range append(append([]string{}, l.Columns...), l.Rows...) {
		k = normalizeKey(k)
		if k == "" {
			return fmt.Errorf("%w: empty key", ErrInvalidLayout)
		}
		if seen[k] {
			return fmt.Errorf("%w: key %q bound twice", ErrInvalidLayout, k)
		}
		seen[k] = true
	}
	return nil
}

// Lookup returns the control bound to key. Keys are case-insensitive.
func (l KeyLayout) Lookup(key string) (Control, bool) {
	key = normalizeKey(key)
	for i, k := range l.Columns {
		if normalizeKey(k) == key {
			return Control{Kind: ControlColumn, Index: i}, true
		}
	}
	for i, k := range l.Rows {
		if normalizeKey(k) == key {
			return Control{Kind: ControlRow, Index: i}, true
		}
	}
	return Control{}, false
}

// Keys returns every bound key, columns first.
func (l KeyLayout) Keys() []string {
	out := make([]string, 0, len(l.Columns)+len(l.Rows))
	out = append(out, l.Columns...)
	return append(out, l.Rows...)
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

// Translator turns logical controls and drag gestures into moves relative
// to the current camera alignment.
type Translator struct {
	size   int
	layout KeyLayout
}

// NewTranslator creates a translator for a puzzle size using the default
// key layout.
func NewTranslator(size int) *Translator {
	return &Translator{size: size, layout: DefaultKeyLayout(size)}
}

// NewTranslatorWithLayout creates a translator with a custom key layout.
func NewTranslatorWithLayout(size int, layout KeyLayout) (*Translator, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	if err := layout.Validate(size); err != nil {
		return nil, err
	}
	return &Translator{size: size, layout: layout}, nil
}

// Size returns the puzzle size the translator was built for.
func (t *Translator) Size() int {
	return t.size
}

// Layout returns the key layout in use.
func (t *Translator) Layout() KeyLayout {
	return t.layout
}

// TranslateKey maps a key press to a move. Unbound keys return false.
func (t *Translator) TranslateKey(key string, a Alignment) (Move, bool) {
	c, ok := t.layout.Lookup(key)
	if !ok {
		return Move{}, false
	}
	return t.TranslateControl(c, a)
}

// TranslateControl maps a column or row control to a move.
//
// Columns turn about the vertical-control axis, rows about the
// horizontal-control axis. The slice index is flipped when the chosen
// world axis points against the screen direction so that index 0 is
// always the leftmost column or the top row.
func (t *Translator) TranslateControl(c Control, a Alignment) (Move, bool) {
	if c.Index < 0 || c.Index >= t.size {
		return Move{}, false
	}
	raw := float64(c.Index) - float64(t.size-1)/2

	switch c.Kind {
	case ControlColumn:
		if a.VAxis.Unit().Dot(a.Right) < 0 {
			raw = -raw
		}
		return NewMove(a.VAxis, raw, a.VSign), true
	case ControlRow:
		// Rows count top-down, against the up vector.
		raw = -raw
		if a.HAxis.Unit().Dot(a.Up) < 0 {
			raw = -raw
		}
		return NewMove(a.HAxis, raw, a.HSign), true
	default:
		return Move{}, false
	}
}

// TranslateDrag maps a drag that started on the cubie at pos to a move.
// dx and dy are the screen deltas in pixels, y growing downward. Drags
// shorter than DragThreshold along both axes return false.
//
// A mostly horizontal drag turns about the vertical-control axis and a
// mostly vertical drag about the horizontal-control axis. The slice is the
// grabbed cubie's coordinate on that axis.
func (t *Translator) TranslateDrag(pos Vec3, dx, dy float64, a Alignment) (Move, bool) {
	if math.Abs(dx) < DragThreshold && math.Abs(dy) < DragThreshold {
		return Move{}, false
	}

	if math.Abs(dx) > math.Abs(dy) {
		slice := SnapCoord(pos.Get(a.VAxis), t.size)
		return NewMove(a.VAxis, slice, screenSign(dx)*a.VSign), true
	}
	slice := SnapCoord(pos.Get(a.HAxis), t.size)
	return NewMove(a.HAxis, slice, screenSign(dy)*a.HSign), true
}

// screenSign is +1 for positive deltas and -1 otherwise.
func screenSign(d float64) int {
	if d > 0 {
		return 1
	}
	return -1
}
