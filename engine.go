package cubetwist

import "math"

// sliceTolerance is how close (in world units) a cubie coordinate must be
// to a move's slice value to be selected.
const sliceTolerance = 0.1

// Apply turns one slice of p by a quarter turn and returns the indices of
// the cubies that moved. A slice that selects no cubies is a legal no-op
// and returns an empty result.
//
// Each selected cubie is rotated about the world axis through the puzzle
// center: its position and its orientation are both multiplied by the
// same quarter-turn matrix. Positions stay on the half-step lattice and
// orientations stay in the rotation group, so no snapping residue exists.
func Apply(p *Puzzle, m Move) []int {
	affected := selectSlice(p, m.Axis, m.Slice)
	if len(affected) == 0 {
		return nil
	}

	r := QuarterTurn(m.Axis, m.Direction)
	for _, i := range affected {
		c := &p.cubies[i]
		c.Position = r.Apply(c.Position)
		c.Orientation = c.Orientation.Then(r)
	}
	return affected
}

// ApplyAll applies moves in order.
func ApplyAll(p *Puzzle, moves []Move) {
	for _, m := range moves {
		Apply(p, m)
	}
}

// selectSlice returns the indices of cubies whose coordinate along axis
// matches slice within tolerance.
func selectSlice(p *Puzzle, axis Axis, slice float64) []int {
	var out []int
	for i, c := range p.cubies {
		if math.Abs(c.Position.Coord(axis)-slice) < sliceTolerance {
			out = append(out, i)
		}
	}
	return out
}

// SliceMembers returns the indices of the cubies a move would turn.
func SliceMembers(p *Puzzle, m Move) []int {
	return selectSlice(p, m.Axis, m.Slice)
}
