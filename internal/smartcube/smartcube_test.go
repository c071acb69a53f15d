package smartcube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubetwist"
)

func TestParseFrame(t *testing.T) {
	raw := EncodeFrame(TypeRotation, []byte{0x04, 0x00})
	assert.Equal(t, byte(0x2A), raw[0])
	assert.Equal(t, byte(len(raw)-2), raw[1])

	f, err := ParseFrame(raw)
	require.NoError(t, err)
	assert.Equal(t, TypeRotation, f.Type)
	assert.Equal(t, []byte{0x04, 0x00}, f.Payload)
}

func TestParseFrameErrors(t *testing.T) {
	good := EncodeFrame(TypeBattery, []byte{80})

	_, err := ParseFrame(good[:3])
	assert.ErrorIs(t, err, ErrShortFrame)

	bad := append([]byte(nil), good...)
	bad[0] = 0x00
	_, err = ParseFrame(bad)
	assert.ErrorIs(t, err, ErrBadPrefix)

	bad = append([]byte(nil), good...)
	bad[len(bad)-3]++
	_, err = ParseFrame(bad)
	assert.ErrorIs(t, err, ErrChecksum)

	bad = append([]byte(nil), good...)
	bad[len(bad)-1] = 0x00
	_, err = ParseFrame(bad)
	assert.ErrorIs(t, err, ErrBadSuffix)

	bad = append([]byte(nil), good...)
	bad[1] = 0x40
	_, err = ParseFrame(bad)
	assert.ErrorIs(t, err, ErrBadLength)
}

func TestCommand(t *testing.T) {
	assert.Equal(t, []byte{0x2A, 0x01, 0x32, 0x5D, 0x0D, 0x0A}, Command(CmdRequestBattery))
}

func TestDecodeRotations(t *testing.T) {
	rots, err := DecodeRotations([]byte{0x00, 0x03, 0x09, 0x00})
	require.NoError(t, err)
	require.Len(t, rots, 2)

	assert.Equal(t, ColorBlue, rots[0].Color)
	assert.True(t, rots[0].Clockwise)
	assert.Equal(t, byte(0x03), rots[0].Center)
	assert.Equal(t, "B", rots[0].Notation())

	assert.Equal(t, ColorRed, rots[1].Color)
	assert.False(t, rots[1].Clockwise)
	assert.Equal(t, "R'", rots[1].Notation())

	_, err = DecodeRotations([]byte{0x01})
	assert.Error(t, err)

	_, err = DecodeRotations([]byte{0x0C, 0x00})
	assert.Error(t, err)
}

func TestRotationMove(t *testing.T) {
	tests := []struct {
		name string
		rot  Rotation
		size int
		want cubetwist.Move
	}{
		{"R", Rotation{Color: ColorRed, Clockwise: true}, 3, cubetwist.NewMove(cubetwist.AxisX, 1, cubetwist.CW)},
		{"L", Rotation{Color: ColorOrange, Clockwise: true}, 3, cubetwist.NewMove(cubetwist.AxisX, -1, cubetwist.CCW)},
		{"U'", Rotation{Color: ColorWhite}, 3, cubetwist.NewMove(cubetwist.AxisY, 1, cubetwist.CCW)},
		{"D", Rotation{Color: ColorYellow, Clockwise: true}, 3, cubetwist.NewMove(cubetwist.AxisY, -1, cubetwist.CCW)},
		{"F on 2x2", Rotation{Color: ColorGreen, Clockwise: true}, 2, cubetwist.NewMove(cubetwist.AxisZ, 0.5, cubetwist.CW)},
		{"B' on 4x4", Rotation{Color: ColorBlue}, 4, cubetwist.NewMove(cubetwist.AxisZ, -1.5, cubetwist.CW)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rot.Move(tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Rotation{Color: ColorRed}.Move(7)
	assert.ErrorIs(t, err, cubetwist.ErrInvalidSize)
}

func TestFourTurnsRestore(t *testing.T) {
	p := cubetwist.MustPuzzle(3)
	m, err := Rotation{Color: ColorGreen, Clockwise: true}.Move(3)
	require.NoError(t, err)

	cubetwist.Apply(p, m)
	assert.False(t, cubetwist.IsSolved(p))
	for i := 0; i < 3; i++ {
		cubetwist.Apply(p, m)
	}
	assert.True(t, cubetwist.IsSolved(p))
}

func TestHandler(t *testing.T) {
	h := NewHandler(3, nil)
	assert.Equal(t, -1, h.Battery())

	var moves []cubetwist.Move
	h.OnMove(func(m cubetwist.Move, _ Rotation) { moves = append(moves, m) })

	var level int
	h.OnBattery(func(l int) { level = l })

	var orient Orientation
	h.OnOrientation(func(o Orientation) { orient = o })

	require.NoError(t, h.HandleNotification(EncodeFrame(TypeRotation, []byte{0x08, 0x00, 0x09, 0x00})))
	require.Len(t, moves, 2)
	assert.Equal(t, moves[0].Inverse(), moves[1])

	require.NoError(t, h.HandleNotification(EncodeFrame(TypeBattery, []byte{77})))
	assert.Equal(t, 77, level)
	assert.Equal(t, 77, h.Battery())

	require.NoError(t, h.HandleNotification(EncodeFrame(TypeOrientation, []byte("1#-2#3.5#4"))))
	assert.Equal(t, Orientation{X: 1, Y: -2, Z: 3.5, W: 4}, orient)

	require.NoError(t, h.HandleNotification(EncodeFrame(TypeCubeType, []byte{0})))
	assert.Error(t, h.HandleNotification([]byte{0x2A}))
}

func TestOrientationBasis(t *testing.T) {
	up, front := Orientation{W: 1}.Basis()
	assert.InDeltaSlice(t, []float64{0, 1, 0}, up[:], 1e-9)
	assert.InDeltaSlice(t, []float64{0, 0, 1}, front[:], 1e-9)
}
