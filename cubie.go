package cubetwist

// Color represents a sticker color.
type Color byte

const (
	NoColor Color = 0 // Interior face, never visible
	Red     Color = 1 // +x face when solved
	Orange  Color = 2 // -x face when solved
	White   Color = 3 // +y face when solved
	Yellow  Color = 4 // -y face when solved
	Green   Color = 5 // +z face when solved
	Blue    Color = 6 // -z face when solved
)

func (c Color) String() string {
	switch c {
	case Red:
		return "R"
	case Orange:
		return "O"
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case NoColor:
		return "."
	default:
		return "?"
	}
}

// Hex returns the RGB value used by the renderers.
func (c Color) Hex() string {
	switch c {
	case Red:
		return "#b90000"
	case Orange:
		return "#ff5900"
	case White:
		return "#ffffff"
	case Yellow:
		return "#ffff00"
	case Green:
		return "#009b48"
	case Blue:
		return "#0045ad"
	default:
		return "#000000"
	}
}

// LocalFace is one of the six faces of a cubie in its own unrotated frame.
type LocalFace int

const (
	FacePosX LocalFace = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// LocalFaces lists the six faces in index order.
var LocalFaces = [6]LocalFace{FacePosX, FaceNegX, FacePosY, FaceNegY, FacePosZ, FaceNegZ}

// Normal returns the outward direction of the face in the cubie's frame.
func (f LocalFace) Normal() SignedAxis {
	s := 1
	if f%2 == 1 {
		s = -1
	}
	return SignedAxis{Axis: Axis(f / 2), Sign: s}
}

func (f LocalFace) String() string {
	return f.Normal().String()
}

// faceFor returns the local face whose normal is n.
func faceFor(n SignedAxis) LocalFace {
	f := LocalFace(int(n.Axis) * 2)
	if n.Sign < 0 {
		f++
	}
	return f
}

// solvedColor is the color of the outer shell face pointing toward n.
func solvedColor(n SignedAxis) Color {
	return Color(faceFor(n)) + Red
}

// Cubie is a single piece of the puzzle.
type Cubie struct {
	// Home is the lattice position at construction. It identifies the cubie.
	Home Point
	// Position is the current lattice position.
	Position Point
	// Orientation is the rotation relative to the home placement.
	Orientation Orientation
	// Colors maps each local face to its sticker. Set once at construction.
	Colors [6]Color
}

// newCubie creates a cubie at home with stickers on every face lying on
// the outer shell. shell is the doubled coordinate of the outer layer.
func newCubie(home Point, shell int) Cubie {
	c := Cubie{
		Home:        home,
		Position:    home,
		Orientation: Identity,
	}
	for _, f := range LocalFaces {
		n := f.Normal()
		if home.Get(n.Axis) == shell*n.Sign {
			c.Colors[f] = solvedColor(n)
		}
	}
	return c
}

// FacingWorld returns the world direction local face f points toward.
func (c Cubie) FacingWorld(f LocalFace) SignedAxis {
	return c.Orientation.ApplyFace(f)
}

// VisibleFace returns the local face that currently points toward the
// world direction dir. A face matches when the dot product of its world
// normal with dir exceeds the visibility threshold.
func (c Cubie) VisibleFace(dir SignedAxis) (LocalFace, bool) {
	want := dir.Vec()
	for _, f := range LocalFaces {
		n := f.Normal().Vec()
		if c.Orientation.ApplyVec(n).Dot(want) > visibleThreshold {
			return f, true
		}
	}
	return 0, false
}

// ColorToward returns the sticker visible from world direction dir, or
// NoColor if no face points that way or the face has no sticker.
func (c Cubie) ColorToward(dir SignedAxis) Color {
	f, ok := c.VisibleFace(dir)
	if !ok {
		return NoColor
	}
	return c.Colors[f]
}

// IsCore reports whether the cubie has no stickers at all.
func (c Cubie) IsCore() bool {
	for _, col := range c.Colors {
		if col != NoColor {
			return false
		}
	}
	return true
}
