// Package snapshot serializes the assembled state of a tangram, its colors and
// one quantized transform per tan, into a short checksummed string.
//
// Layout, version 1:
//
//	[0]     version
//	[1]     dissection id
//	[2..4]  background r, g, b
//	[5..]   foreground r, g, b per tan
//	[..]    x, y, angle per tan (uint16, little endian)
//	[last]  XOR of every preceding byte
//
// Positions are stored relative to the tangram's bounding box in units of
// 1/10000, rotations in [0, 360) in units of 1/100 degree.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/irfansharif/tangram/internal/geom"
	"github.com/irfansharif/tangram/internal/palette"
	"github.com/irfansharif/tangram/internal/tangram"
	"github.com/irfansharif/tangram/internal/urlsafe"
)

// Version is the newest layout this package reads and the one it writes.
const Version = 1

const (
	positionScale = 10000
	rotationScale = 100

	transformSize = 6
	colorSize     = 3
)

var (
	ErrChecksumNotFound     = errors.New("checksum not found")
	ErrChecksum             = errors.New("failed checksum check")
	ErrVersionNotFound      = errors.New("snapshot version not found")
	ErrUnsupportedVersion   = errors.New("unsupported snapshot version")
	ErrDissectionIDNotFound = errors.New("dissection id not found")
	ErrDissectionMismatch   = errors.New("dissection id does not match supplied dissection")
	ErrColorsNotFound       = errors.New("colors not found")
	ErrTransformsNotFound   = errors.New("transforms not found")
	ErrTrailingBytes        = errors.New("bytes remain undecoded")
	ErrColorCount           = errors.New("foreground color count should be equal to tan count")
)

// Snapshot is the decoded form of one shared shape.
type Snapshot struct {
	Dissection *tangram.Dissection
	Transforms []tangram.Transform
	Background palette.Color
	Foreground []palette.Color
}

// Shape places a fresh tangram according to the snapshot's transforms.
func (s *Snapshot) Shape() (*tangram.Tangram, error) {
	return tangram.CreateShape(s.Dissection, s.Transforms)
}

// Encode places the dissection's tans by transforms and encodes the result.
func Encode(d *tangram.Dissection, transforms []tangram.Transform, background palette.Color, foreground []palette.Color) (string, error) {
	tg, err := tangram.CreateShape(d, transforms)
	if err != nil {
		return "", err
	}
	return EncodeTangram(tg, background, foreground)
}

// EncodeTangram encodes the current placement of every tan in tg.
func EncodeTangram(tg *tangram.Tangram, background palette.Color, foreground []palette.Color) (string, error) {
	data, err := Marshal(tg, background, foreground)
	if err != nil {
		return "", err
	}
	return urlsafe.Encode(data), nil
}

// Decode reverses EncodeTangram against the dissection the snapshot was
// taken from.
func Decode(text string, d *tangram.Dissection) (*Snapshot, error) {
	data, err := urlsafe.Decode(text)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data, d)
}

func quantize(v, scale float64) uint16 {
	return uint16(math.Max(0, math.Min(0xffff, geom.RoundHalfUp(v*scale))))
}

// Marshal returns the binary layout, checksum included.
func Marshal(tg *tangram.Tangram, background palette.Color, foreground []palette.Color) ([]byte, error) {
	tans := tg.Tans()
	if len(foreground) != len(tans) {
		return nil, fmt.Errorf("%w: %d colors, %d tans", ErrColorCount, len(foreground), len(tans))
	}
	aabb := tg.ComputeAABB()

	buf := make([]byte, 0, 2+colorSize*(1+len(tans))+transformSize*len(tans)+1)
	buf = append(buf, Version, byte(tg.Dissection().ID))
	buf = append(buf, background.R, background.G, background.B)
	for _, c := range foreground {
		buf = append(buf, c.R, c.G, c.B)
	}
	for _, tan := range tans {
		rel := tan.Position().Sub(aabb.Min)
		rotation := math.Mod(math.Mod(tan.Rotation(), 360)+360, 360)
		buf = binary.LittleEndian.AppendUint16(buf, quantize(rel.X, positionScale))
		buf = binary.LittleEndian.AppendUint16(buf, quantize(rel.Y, positionScale))
		buf = binary.LittleEndian.AppendUint16(buf, quantize(rotation, rotationScale))
	}
	return append(buf, checksum(buf)), nil
}

func checksum(data []byte) byte {
	var crc byte
	for _, b := range data {
		crc ^= b
	}
	return crc
}

// Unmarshal validates data strictly by length at every field boundary before
// reading it.
func Unmarshal(data []byte, d *tangram.Dissection) (*Snapshot, error) {
	if len(data) < 1 {
		return nil, ErrChecksumNotFound
	}
	if checksum(data) != 0 {
		return nil, ErrChecksum
	}
	payload := data[:len(data)-1]

	if len(payload) < 1 {
		return nil, ErrVersionNotFound
	}
	if version := payload[0]; version > Version {
		return nil, fmt.Errorf("%w (%d)", ErrUnsupportedVersion, version)
	}
	payload = payload[1:]

	if len(payload) < 1 {
		return nil, ErrDissectionIDNotFound
	}
	if id := int(payload[0]); id != d.ID {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDissectionMismatch, id, d.ID)
	}
	payload = payload[1:]

	n := d.TanCount()
	if len(payload) < colorSize*(1+n) {
		return nil, fmt.Errorf("%w: %d bytes left, need %d", ErrColorsNotFound, len(payload), colorSize*(1+n))
	}
	s := &Snapshot{
		Dissection: d,
		Background: palette.Color{R: payload[0], G: payload[1], B: payload[2]},
		Foreground: make([]palette.Color, n),
		Transforms: make([]tangram.Transform, n),
	}
	payload = payload[colorSize:]
	for i := range s.Foreground {
		s.Foreground[i] = palette.Color{R: payload[0], G: payload[1], B: payload[2]}
		payload = payload[colorSize:]
	}

	if len(payload) < transformSize*n {
		return nil, fmt.Errorf("%w: %d bytes left, need %d", ErrTransformsNotFound, len(payload), transformSize*n)
	}
	for i := range s.Transforms {
		x := binary.LittleEndian.Uint16(payload[0:])
		y := binary.LittleEndian.Uint16(payload[2:])
		a := binary.LittleEndian.Uint16(payload[4:])
		s.Transforms[i] = tangram.Transform{
			Position: geom.MakePoint(float64(x)/positionScale, float64(y)/positionScale),
			Rotation: float64(a) / rotationScale,
		}
		payload = payload[transformSize:]
	}

	if len(payload) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrTrailingBytes, len(payload))
	}
	return s, nil
}
