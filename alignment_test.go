package cubetwist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/westphae/quaternion"
)

func assertVec(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-9, "z")
}

func TestResolveIdentityCamera(t *testing.T) {
	a := Resolve(FixedCamera{R: V3(1, 0, 0), U: V3(0, 1, 0)})

	assert.Equal(t, AxisX, a.VAxis)
	assert.Equal(t, 1, a.VSign)
	assert.Equal(t, AxisY, a.HAxis)
	assert.Equal(t, 1, a.HSign)
}

func TestResolveTurnedCamera(t *testing.T) {
	tests := []struct {
		name         string
		right, up    Vec3
		vAxis, hAxis Axis
		vSign, hSign int
	}{
		{"looking from +x", V3(0, 0, -1), V3(0, 1, 0), AxisZ, AxisY, -1, 1},
		{"upside down", V3(-1, 0, 0), V3(0, -1, 0), AxisX, AxisY, -1, -1},
		{"from above", V3(1, 0, 0), V3(0, 0, -1), AxisX, AxisZ, 1, -1},
		{"oblique", V3(0.8, 0.1, -0.59), V3(-0.3, 0.9, -0.3), AxisX, AxisY, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ResolveAlignment(tt.right, tt.up)
			assert.Equal(t, tt.vAxis, a.VAxis)
			assert.Equal(t, tt.vSign, a.VSign)
			assert.Equal(t, tt.hAxis, a.HAxis)
			assert.Equal(t, tt.hSign, a.HSign)
		})
	}
}

func TestResolveTiesGoToFirstAxis(t *testing.T) {
	h := math.Sqrt2 / 2
	a := ResolveAlignment(V3(h, -h, 0), V3(0, h, h))

	assert.Equal(t, AxisX, a.VAxis)
	assert.Equal(t, 1, a.VSign)
	assert.Equal(t, AxisY, a.HAxis)
	assert.Equal(t, 1, a.HSign)
}

func TestResolveZeroVectorDefaultsPositive(t *testing.T) {
	a := ResolveAlignment(Vec3{}, Vec3{})
	assert.Equal(t, AxisX, a.VAxis)
	assert.Equal(t, 1, a.VSign)
	assert.Equal(t, AxisX, a.HAxis)
	assert.Equal(t, 1, a.HSign)
}

func TestDefaultCamera(t *testing.T) {
	c := DefaultCamera()
	assertVec(t, V3(-8, -8, -12).Normalize(), c.Forward())

	a := Resolve(c)
	assert.Equal(t, AxisX, a.VAxis)
	assert.Equal(t, 1, a.VSign)
	assert.Equal(t, AxisY, a.HAxis)
	assert.Equal(t, 1, a.HSign)
}

func TestOrbitCameraBasis(t *testing.T) {
	c := &OrbitCamera{}
	assertVec(t, V3(1, 0, 0), c.Right())
	assertVec(t, V3(0, 1, 0), c.Up())
	assertVec(t, V3(0, 0, -1), c.Forward())

	c.Orbit(math.Pi / 2)
	assertVec(t, V3(0, 0, -1), c.Right())
	a := Resolve(c)
	assert.Equal(t, AxisZ, a.VAxis)
	assert.Equal(t, -1, a.VSign)

	c = &OrbitCamera{}
	c.Spin(math.Pi / 2)
	assertVec(t, V3(0, 1, 0), c.Right())
	assertVec(t, V3(-1, 0, 0), c.Up())
	a = Resolve(c)
	assert.Equal(t, AxisY, a.VAxis)
	assert.Equal(t, AxisX, a.HAxis)
	assert.Equal(t, -1, a.HSign)

	c = &OrbitCamera{}
	c.Tilt(-math.Pi / 2)
	assertVec(t, V3(0, -1, 0), c.Forward())
	assertVec(t, V3(0, 0, -1), c.Up())
}

func TestOrbitCameraComposesYawThenPitch(t *testing.T) {
	c := &OrbitCamera{Yaw: math.Pi / 2, Pitch: -math.Pi / 4}
	h := math.Sqrt2 / 2
	assertVec(t, V3(-h, -h, 0), c.Forward())
	assertVec(t, V3(0, 0, -1), c.Right())
	assertVec(t, V3(-h, h, 0), c.Up())

	up := c.Rotation().RotateVec3(quaternion.Vec3{Y: 1})
	assertVec(t, c.Up(), V3(up.X, up.Y, up.Z))
}

func TestWrapAngle(t *testing.T) {
	c := &OrbitCamera{}
	for i := 0; i < 9; i++ {
		c.Orbit(math.Pi / 2)
	}
	assert.InDelta(t, math.Pi/2, c.Yaw, 1e-9)
}
