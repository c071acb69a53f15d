package cubetwist

import (
	"math"

	"github.com/westphae/quaternion"
)

// Camera exposes the current world-space screen directions of a view.
type Camera interface {
	Right() Vec3
	Up() Vec3
}

// Alignment maps the camera's screen directions onto world axes.
//
// HAxis is the world axis that looks most vertical on screen (closest to
// the camera's up vector); turning around it moves stickers horizontally,
// so it drives row controls. VAxis is the world axis that looks most
// horizontal (closest to camera right); turning around it moves stickers
// vertically and drives column controls.
type Alignment struct {
	HAxis Axis
	HSign int
	VAxis Axis
	VSign int

	// The camera vectors the alignment was resolved from.
	Right Vec3
	Up    Vec3
}

// Resolve computes the alignment for a camera.
func Resolve(cam Camera) Alignment {
	return ResolveAlignment(cam.Right(), cam.Up())
}

// ResolveAlignment picks, for each of the camera's up and right vectors,
// the world axis with the largest absolute dot product. Ties go to the
// first axis in x, y, z order. A zero dot product yields sign +1.
func ResolveAlignment(right, up Vec3) Alignment {
	a := Alignment{
		HAxis: AxisY, HSign: 1,
		VAxis: AxisY, VSign: 1,
		Right: right,
		Up:    up,
	}

	maxUp, maxRight := -1.0, -1.0
	for _, axis := range Axes {
		dotUp := axis.Unit().Dot(up)
		if math.Abs(dotUp) > maxUp {
			maxUp = math.Abs(dotUp)
			a.HAxis = axis
			a.HSign = sign(dotUp)
		}

		dotRight := axis.Unit().Dot(right)
		if math.Abs(dotRight) > maxRight {
			maxRight = math.Abs(dotRight)
			a.VAxis = axis
			a.VSign = sign(dotRight)
		}
	}
	return a
}

// OrbitCamera is a camera circling the puzzle center. Its orientation is
// yaw about world y, then pitch about the camera's x axis, then roll about
// its viewing axis. Angles are in radians.
type OrbitCamera struct {
	Yaw   float64
	Pitch float64
	Roll  float64
}

// DefaultCamera looks at the puzzle from above-right-front, matching a
// camera placed at (8, 8, 12).
func DefaultCamera() *OrbitCamera {
	return &OrbitCamera{
		Yaw:   math.Atan2(8, 12),
		Pitch: -math.Asin(8 / math.Sqrt(8*8+8*8+12*12)),
	}
}

// Orbit turns the camera around the world vertical axis.
func (c *OrbitCamera) Orbit(delta float64) {
	c.Yaw = wrapAngle(c.Yaw + delta)
}

// Tilt turns the camera over the top of the puzzle.
func (c *OrbitCamera) Tilt(delta float64) {
	c.Pitch = wrapAngle(c.Pitch + delta)
}

// Spin rolls the camera around its viewing axis.
func (c *OrbitCamera) Spin(delta float64) {
	c.Roll = wrapAngle(c.Roll + delta)
}

// Right returns the camera's screen-right direction in world space.
func (c *OrbitCamera) Right() Vec3 {
	return c.rotate(Vec3{X: 1})
}

// Up returns the camera's screen-up direction in world space.
func (c *OrbitCamera) Up() Vec3 {
	return c.rotate(Vec3{Y: 1})
}

// Forward returns the direction the camera looks in.
func (c *OrbitCamera) Forward() Vec3 {
	return c.rotate(Vec3{Z: -1})
}

// Rotation returns the camera orientation: yaw about y, then pitch about
// the turned x axis, then roll about the turned viewing axis.
func (c *OrbitCamera) Rotation() quaternion.Quaternion {
	yaw := quaternion.FromEuler(0, c.Yaw, 0)
	pitch := quaternion.FromEuler(c.Pitch, 0, 0)
	roll := quaternion.FromEuler(0, 0, c.Roll)
	return quaternion.Prod(yaw, pitch, roll)
}

func (c *OrbitCamera) rotate(v Vec3) Vec3 {
	r := c.Rotation().RotateVec3(quaternion.Vec3{X: v.X, Y: v.Y, Z: v.Z})
	return Vec3{r.X, r.Y, r.Z}
}

// FixedCamera is a camera with explicit vectors, mostly for tests and
// for renderers that track their own view.
type FixedCamera struct {
	R, U Vec3
}

// Right returns R.
func (c FixedCamera) Right() Vec3 { return c.R }

// Up returns U.
func (c FixedCamera) Up() Vec3 { return c.U }

func wrapAngle(t float64) float64 {
	t = math.Mod(t, 2*math.Pi)
	if t > math.Pi {
		t -= 2 * math.Pi
	} else if t < -math.Pi {
		t += 2 * math.Pi
	}
	return t
}
