package recording

import (
	"fmt"
	"os"

	"github.com/OpenPSG/edf"
)

// Replayer streams a recorded session back one tick at a time, yielding
// one raw sample per sensor per call.
type Replayer struct {
	file    *os.File
	readers []*edf.SignalReader
	row     []int
}

// OpenReplay opens an EDF capture for replay. The reader does not expose
// the signal count directly, so channels are probed until the index is
// rejected.
func OpenReplay(path string) (*Replayer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := edf.Open(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("opening EDF file: %w", err)
	}

	var readers []*edf.SignalReader
	for i := 0; ; i++ {
		sr, err := r.Signal(i)
		if err != nil {
			break
		}
		readers = append(readers, sr)
	}
	if len(readers) == 0 {
		file.Close()
		return nil, fmt.Errorf("no signals in %s", path)
	}

	return &Replayer{
		file:    file,
		readers: readers,
		row:     make([]int, len(readers)),
	}, nil
}

// Sensors returns the number of recorded sensor channels.
func (rp *Replayer) Sensors() int {
	return len(rp.readers)
}

// Next returns the raw samples for one tick, one per sensor. It returns
// io.EOF once the session is exhausted. The returned slice is reused
// between calls.
func (rp *Replayer) Next() ([]int, error) {
	var buf [1]float64
	for i, sr := range rp.readers {
		if _, err := sr.Read(buf[:]); err != nil {
			return nil, err
		}
		rp.row[i] = int(buf[0])
	}
	return rp.row, nil
}

func (rp *Replayer) Close() error {
	return rp.file.Close()
}
