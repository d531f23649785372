package frontend

import (
	"errors"
	"fmt"

	"github.com/sigurn/crc8"
)

// Wire format for serial front ends: a marker byte, the sensor id, the
// sample as a big-endian 16 bit value, and a CRC-8 over id and sample.
const (
	frameMarker = 0xAA
	// FrameSize is the length of one sample frame on the wire.
	FrameSize = 5
)

var errBadCRC = errors.New("bad crc")

var crcTable = crc8.MakeTable(crc8.Params{
	Poly:   0x31, // Polynomial 1 + x^4 + x^5 + x^8
	Init:   0xFF,
	RefIn:  false,
	RefOut: false,
	XorOut: 0x00,
})

// EncodeFrame builds one wire frame for a sample from the given sensor.
// It is used by tests and front-end emulators.
func EncodeFrame(sensor, sample int) []byte {
	b := []byte{frameMarker, byte(sensor), byte(sample >> 8), byte(sample)}
	return append(b, crc8.Checksum(b[1:], crcTable))
}

func decodeFrame(b []byte) (sensor, sample int, err error) {
	if len(b) != FrameSize {
		return 0, 0, fmt.Errorf("frame length %d, expected %d", len(b), FrameSize)
	}
	if b[0] != frameMarker {
		return 0, 0, fmt.Errorf("bad frame marker: 0x%X", b[0])
	}
	if crc8.Checksum(b[1:4], crcTable) != b[4] {
		return 0, 0, errBadCRC
	}
	return int(b[1]), int(b[2])<<8 | int(b[3]), nil
}
