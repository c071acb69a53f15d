package cubetwist

import "math"

// visibleThreshold is cos 25°. A local face is the one showing toward a
// world direction when its rotated normal is within 25° of it.
var visibleThreshold = math.Cos(25 * math.Pi / 180)

// FaceReport describes the check of one world face.
type FaceReport struct {
	Face      SignedAxis // World direction of the face
	Inspected int        // Cubies found on the face
	Color     Color      // Color of the first cubie, NoColor if unreadable
	OK        bool       // All inspected cubies show Color
}

// worldFaces is the order faces are checked in: +x, -x, +y, -y, +z, -z.
var worldFaces = [6]SignedAxis{
	{AxisX, 1}, {AxisX, -1},
	{AxisY, 1}, {AxisY, -1},
	{AxisZ, 1}, {AxisZ, -1},
}

// IsSolved reports whether every outer face of p shows a single color.
// The puzzle may be rotated as a whole: which color is on which side does
// not matter.
func IsSolved(p *Puzzle) bool {
	for _, f := range worldFaces {
		if !checkFace(p, f).OK {
			return false
		}
	}
	return true
}

// InspectFaces checks all six world faces and reports each result.
// Unlike IsSolved it does not stop at the first failing face.
func InspectFaces(p *Puzzle) []FaceReport {
	out := make([]FaceReport, 0, len(worldFaces))
	for _, f := range worldFaces {
		out = append(out, checkFace(p, f))
	}
	return out
}

func checkFace(p *Puzzle, face SignedAxis) FaceReport {
	r := FaceReport{Face: face}
	members := faceMembers(p, face)
	r.Inspected = len(members)

	// An empty face means the state is inconsistent.
	if len(members) == 0 {
		return r
	}

	r.Color = p.cubies[members[0]].ColorToward(face)
	if r.Color == NoColor {
		return r
	}
	for _, i := range members[1:] {
		if p.cubies[i].ColorToward(face) != r.Color {
			return r
		}
	}
	r.OK = true
	return r
}

// faceMembers returns the cubies lying on the outer layer facing face.
func faceMembers(p *Puzzle, face SignedAxis) []int {
	want := float64(p.shell()*face.Sign) / 2
	var out []int
	for i, c := range p.cubies {
		if math.Abs(c.Position.Coord(face.Axis)-want) < sliceTolerance {
			out = append(out, i)
		}
	}
	return out
}
