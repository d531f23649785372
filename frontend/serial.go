package frontend

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// SerialSource reads framed samples for one sensor from a microcontroller
// front end streaming over a serial port.
type SerialSource struct {
	port   io.ReadCloser
	sensor int
	buf    [FrameSize]byte
}

// NewSerialSource opens the serial device and returns a source for the
// given sensor id.
func NewSerialSource(device string, baud, sensor int) (*SerialSource, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        device,
		Baud:        baud,
		ReadTimeout: time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", device, err)
	}
	return &SerialSource{port: port, sensor: sensor}, nil
}

// ReadSample scans the stream for the next well-formed frame carrying
// this source's sensor id. Garbage between frames and frames failing the
// CRC are skipped; resynchronisation happens on the marker byte.
func (s *SerialSource) ReadSample() (int, error) {
	for {
		if _, err := io.ReadFull(s.port, s.buf[:1]); err != nil {
			return 0, err
		}
		if s.buf[0] != frameMarker {
			continue
		}
		if _, err := io.ReadFull(s.port, s.buf[1:]); err != nil {
			return 0, err
		}
		sensor, sample, err := decodeFrame(s.buf[:])
		if err != nil || sensor != s.sensor {
			continue
		}
		return sample, nil
	}
}

func (s *SerialSource) Close() error {
	return s.port.Close()
}
