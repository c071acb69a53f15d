// Package smartcube feeds moves from a GoCube Bluetooth smart cube into a
// cubetwist game.
//
// Frames on the wire look like:
//
//	[0x2A] [length] [type] [payload...] [checksum] [0x0D 0x0A]
//
// where length counts everything after the length byte and the checksum is
// the byte sum of everything before it.
package smartcube

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GoCube service and characteristic UUIDs.
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // Notify
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // Write
)

// Frame types sent by the cube.
const (
	TypeRotation    byte = 0x01
	TypeState       byte = 0x02
	TypeOrientation byte = 0x03
	TypeBattery     byte = 0x05
	TypeCubeType    byte = 0x08
)

// Commands written to the cube.
const (
	CmdRequestBattery       byte = 0x32
	CmdRequestState         byte = 0x33
	CmdResetSolved          byte = 0x35
	CmdDisableOrientation   byte = 0x37
	CmdEnableOrientation    byte = 0x38
	CmdFlashBacklight       byte = 0x41
	CmdCalibrateOrientation byte = 0x57
)

const (
	framePrefix byte = 0x2A
	frameCR     byte = 0x0D
	frameLF     byte = 0x0A
)

var (
	ErrShortFrame = errors.New("smartcube: frame too short")
	ErrBadPrefix  = errors.New("smartcube: bad frame prefix")
	ErrBadSuffix  = errors.New("smartcube: bad frame suffix")
	ErrBadLength  = errors.New("smartcube: bad frame length")
	ErrChecksum   = errors.New("smartcube: checksum mismatch")
)

// Frame is one parsed notification.
type Frame struct {
	Type    byte
	Payload []byte
}

// ParseFrame validates and splits a raw notification.
func ParseFrame(data []byte) (Frame, error) {
	if len(data) < 5 {
		return Frame{}, ErrShortFrame
	}
	if data[0] != framePrefix {
		return Frame{}, ErrBadPrefix
	}

	length := int(data[1])
	if len(data) < 2+length {
		return Frame{}, fmt.Errorf("%w: want %d bytes, got %d", ErrBadLength, 2+length, len(data))
	}

	sumAt := length - 1
	if sumAt < 3 {
		return Frame{}, ErrShortFrame
	}
	if data[sumAt+1] != frameCR || data[sumAt+2] != frameLF {
		return Frame{}, ErrBadSuffix
	}

	if got := checksum(data[:sumAt]); got != data[sumAt] {
		return Frame{}, fmt.Errorf("%w: frame says 0x%02X, computed 0x%02X", ErrChecksum, data[sumAt], got)
	}

	return Frame{Type: data[2], Payload: data[3:sumAt]}, nil
}

func checksum(b []byte) byte {
	var s byte
	for _, c := range b {
		s += c
	}
	return s
}

// EncodeFrame builds a frame carrying typ and payload.
func EncodeFrame(typ byte, payload []byte) []byte {
	// type + payload + checksum + CRLF
	length := 1 + len(payload) + 1 + 2
	out := make([]byte, 0, 2+length)
	out = append(out, framePrefix, byte(length), typ)
	out = append(out, payload...)
	out = append(out, checksum(out), frameCR, frameLF)
	return out
}

// Command builds a payload-less command frame.
func Command(cmd byte) []byte {
	sum := framePrefix + 0x01 + cmd
	return []byte{framePrefix, 0x01, cmd, sum, frameCR, frameLF}
}

// TypeName returns a readable name for a frame type.
func TypeName(typ byte) string {
	switch typ {
	case TypeRotation:
		return "rotation"
	case TypeState:
		return "state"
	case TypeOrientation:
		return "orientation"
	case TypeBattery:
		return "battery"
	case TypeCubeType:
		return "cube_type"
	default:
		return fmt.Sprintf("unknown_0x%02X", typ)
	}
}

// Rotation is one face turn reported by the cube.
type Rotation struct {
	Code      byte // face and direction, 0x00-0x0B
	Center    byte // center cap orientation
	Color     FaceColor
	Clockwise bool
}

// DecodeRotations splits a rotation payload into its [code, center] pairs.
// Even codes are clockwise.
func DecodeRotations(payload []byte) ([]Rotation, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("rotation payload must have even length, got %d", len(payload))
	}

	rots := make([]Rotation, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		color := FaceColor(code / 2)
		if !color.Valid() {
			return nil, fmt.Errorf("unknown face color %d in code 0x%02X", color, code)
		}
		rots = append(rots, Rotation{
			Code:      code,
			Center:    payload[i+1],
			Color:     color,
			Clockwise: code%2 == 0,
		})
	}
	return rots, nil
}

// DecodeBattery returns the battery percentage.
func DecodeBattery(payload []byte) (int, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("battery payload too short")
	}
	return int(payload[0]), nil
}

// Orientation is the cube's attitude quaternion.
type Orientation struct {
	X, Y, Z, W float64
}

// DecodeOrientation parses the ASCII "x#y#z#w" payload.
func DecodeOrientation(payload []byte) (Orientation, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 4 {
		return Orientation{}, fmt.Errorf("orientation payload must have 4 parts, got %d", len(parts))
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(leadingNumber(p), 64)
		if err != nil {
			return Orientation{}, fmt.Errorf("invalid orientation component %d: %w", i, err)
		}
		v[i] = f
	}
	return Orientation{X: v[0], Y: v[1], Z: v[2], W: v[3]}, nil
}

func leadingNumber(s string) string {
	var b strings.Builder
	for i, r := range s {
		if (r == '-' && i == 0) || r == '.' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		break
	}
	return b.String()
}

// Basis returns the world directions of the cube's local up and front
// vectors after rotation by the quaternion.
func (o Orientation) Basis() (up, front [3]float64) {
	x, y, z, w := o.X, o.Y, o.Z, o.W
	if mag := math.Sqrt(x*x + y*y + z*z + w*w); mag > 0 {
		x, y, z, w = x/mag, y/mag, z/mag, w/mag
	}

	up = [3]float64{2 * (x*y - w*z), 1 - 2*(x*x+z*z), 2 * (y*z + w*x)}
	front = [3]float64{2 * (x*z + w*y), 2 * (y*z - w*x), 1 - 2*(x*x+y*y)}
	return up, front
}
