package cubetwist

import (
	"fmt"
	"math"
	"strings"
)

// Axis identifies one of the three world axes.
type Axis int

const (
	AxisX Axis = 0
	AxisY Axis = 1
	AxisZ Axis = 2
)

// Axes lists the world axes in evaluation order. Tie-breaking in the
// alignment resolver depends on this order.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Valid reports whether a is one of X, Y or Z.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

// Unit returns the positive unit vector along the axis.
func (a Axis) Unit() Vec3 {
	var v Vec3
	v.Set(a, 1)
	return v
}

// ParseAxis parses "x", "y" or "z" (case-insensitive).
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
	}
}

// Vec3 is a floating point vector in world space.
type Vec3 struct {
	X, Y, Z float64
}

// V3 creates a new Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Get returns the component along axis a.
func (v Vec3) Get(a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// Set assigns the component along axis a.
func (v *Vec3) Set(a Axis, f float64) {
	switch a {
	case AxisX:
		v.X = f
	case AxisY:
		v.Y = f
	default:
		v.Z = f
	}
}

// Add returns the vector sum a + b.
func (v Vec3) Add(b Vec3) Vec3 {
	return Vec3{v.X + b.X, v.Y + b.Y, v.Z + b.Z}
}

// Scale returns the scalar product v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(b Vec3) float64 {
	return v.X*b.X + v.Y*b.Y + v.Z*b.Z
}

// Cross returns the cross product v × b.
func (v Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		v.Y*b.Z - v.Z*b.Y,
		v.Z*b.X - v.X*b.Z,
		v.X*b.Y - v.Y*b.X,
	}
}

// Len returns the vector length.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector in the direction of v, or v itself if
// it has zero length.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Point is an exact lattice position stored in half steps: each component
// is twice the world coordinate. A 4x4x4 puzzle spans -3..3 (world -1.5
// to 1.5), a 3x3x3 spans -2..2.
type Point struct {
	X, Y, Z int
}

// PointOf converts a world coordinate to the nearest half-step point.
func PointOf(v Vec3) Point {
	return Point{
		X: int(math.Round(v.X * 2)),
		Y: int(math.Round(v.Y * 2)),
		Z: int(math.Round(v.Z * 2)),
	}
}

// Get returns the doubled component along axis a.
func (p Point) Get(a Axis) int {
	switch a {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// Set assigns the doubled component along axis a.
func (p *Point) Set(a Axis, v int) {
	switch a {
	case AxisX:
		p.X = v
	case AxisY:
		p.Y = v
	default:
		p.Z = v
	}
}

// Coord returns the world coordinate along axis a.
func (p Point) Coord(a Axis) float64 {
	return float64(p.Get(a)) / 2
}

// Vec returns the point in world coordinates.
func (p Point) Vec() Vec3 {
	return Vec3{float64(p.X) / 2, float64(p.Y) / 2, float64(p.Z) / 2}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.Coord(AxisX), p.Coord(AxisY), p.Coord(AxisZ))
}

// SignedAxis is a world axis with a direction, e.g. -y.
type SignedAxis struct {
	Axis Axis
	Sign int // +1 or -1
}

// Neg returns the opposite direction.
func (s SignedAxis) Neg() SignedAxis {
	return SignedAxis{Axis: s.Axis, Sign: -s.Sign}
}

// Vec returns the unit vector of the signed axis.
func (s SignedAxis) Vec() Vec3 {
	return s.Axis.Unit().Scale(float64(s.Sign))
}

// Cross returns the signed axis of s × t. s and t must be different axes.
func (s SignedAxis) Cross(t SignedAxis) SignedAxis {
	c := s.Vec().Cross(t.Vec())
	for _, a := range Axes {
		if v := c.Get(a); v != 0 {
			return SignedAxis{Axis: a, Sign: sign(v)}
		}
	}
	return SignedAxis{Axis: s.Axis, Sign: s.Sign}
}

func (s SignedAxis) String() string {
	if s.Sign < 0 {
		return "-" + s.Axis.String()
	}
	return "+" + s.Axis.String()
}

// sign returns -1 for negative values and +1 otherwise.
func sign(f float64) int {
	if f < 0 {
		return -1
	}
	return 1
}
