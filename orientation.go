package cubetwist

import "math"

// Orientation is a rotation of a cubie relative to its starting placement.
// It is kept as an exact integer matrix so it is always one of the 24
// rotations of the cube; quarter turns never accumulate drift.
type Orientation [3][3]int

// Identity is the orientation of every cubie at construction.
var Identity = Orientation{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

// QuarterTurn returns the rotation by 90° × dir about axis, following the
// right-hand rule. dir is normalized to +1 or -1.
func QuarterTurn(axis Axis, dir int) Orientation {
	s := 1
	if dir < 0 {
		s = -1
	}
	switch axis {
	case AxisX:
		return Orientation{
			{1, 0, 0},
			{0, 0, -s},
			{0, s, 0},
		}
	case AxisY:
		return Orientation{
			{0, 0, s},
			{0, 1, 0},
			{-s, 0, 0},
		}
	default:
		return Orientation{
			{0, -s, 0},
			{s, 0, 0},
			{0, 0, 1},
		}
	}
}

// Then returns the orientation obtained by applying o first and r second
// (the matrix product r·o).
func (o Orientation) Then(r Orientation) Orientation {
	var out Orientation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := 0
			for k := 0; k < 3; k++ {
				sum += r[i][k] * o[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Inverse returns the inverse rotation (the transpose).
func (o Orientation) Inverse() Orientation {
	var out Orientation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = o[j][i]
		}
	}
	return out
}

// Apply rotates a lattice point.
func (o Orientation) Apply(p Point) Point {
	in := [3]int{p.X, p.Y, p.Z}
	var out [3]int
	for i := 0; i < 3; i++ {
		out[i] = o[i][0]*in[0] + o[i][1]*in[1] + o[i][2]*in[2]
	}
	return Point{out[0], out[1], out[2]}
}

// ApplyVec rotates a world vector.
func (o Orientation) ApplyVec(v Vec3) Vec3 {
	in := [3]float64{v.X, v.Y, v.Z}
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = float64(o[i][0])*in[0] + float64(o[i][1])*in[1] + float64(o[i][2])*in[2]
	}
	return Vec3{out[0], out[1], out[2]}
}

// ApplyFace returns the world direction that a local face currently
// points toward.
func (o Orientation) ApplyFace(f LocalFace) SignedAxis {
	n := f.Normal()
	for i, a := range Axes {
		if v := o[i][n.Axis] * n.Sign; v != 0 {
			return SignedAxis{Axis: a, Sign: v}
		}
	}
	return n
}

// Index returns the position of o in the enumerated rotation group
// (0..23), or -1 if o is not a cube rotation.
func (o Orientation) Index() int {
	if i, ok := groupIndex[o]; ok {
		return i
	}
	return -1
}

// Group returns all 24 cube rotations; element 0 is Identity.
func Group() []Orientation {
	out := make([]Orientation, len(group))
	copy(out, group)
	return out
}

// SnapOrientation rounds a floating rotation matrix to the nearest cube
// rotation. ok is false when the rounded matrix is not in the group, in
// which case Identity is returned.
func SnapOrientation(m [3][3]float64) (o Orientation, ok bool) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o[i][j] = int(math.Round(m[i][j]))
		}
	}
	if o.Index() < 0 {
		return Identity, false
	}
	return o, true
}

var (
	group      []Orientation
	groupIndex map[Orientation]int
)

// The group is generated breadth-first from quarter turns so that the
// enumeration order is stable.
func init() {
	groupIndex = map[Orientation]int{Identity: 0}
	group = []Orientation{Identity}
	for i := 0; i < len(group); i++ {
		for _, a := range Axes {
			next := group[i].Then(QuarterTurn(a, 1))
			if _, seen := groupIndex[next]; !seen {
				groupIndex[next] = len(group)
				group = append(group, next)
			}
		}
	}
}
