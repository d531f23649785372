// Package recording captures raw PPG sessions to EDF files and plays
// them back for offline analysis. One EDF signal is written per sensor
// channel, with one data record per second of capture.
package recording

import (
	"fmt"
	"os"
	"time"

	"github.com/OpenPSG/edf"
)

// Recorder buffers one second of raw samples per sensor and flushes them
// as EDF data records.
type Recorder struct {
	file             *os.File
	w                *edf.Writer
	samplesPerRecord int
	buffered         int
	pending          [][]float64
}

// NewRecorder creates the EDF file and writes its header. sampleRate is
// the per-sensor sampling rate in Hz.
func NewRecorder(path string, sensors, sampleRate int, start time.Time) (*Recorder, error) {
	if sensors < 1 {
		return nil, fmt.Errorf("recording needs at least one sensor, got %d", sensors)
	}

	signals := make([]edf.SignalHeader, sensors)
	for i := range signals {
		signals[i] = edf.SignalHeader{
			Label:             fmt.Sprintf("PPG %d", i),
			TransducerType:    "analog pulse sensor",
			PhysicalDimension: "adu",
			PhysicalMin:       0,
			PhysicalMax:       4095,
			DigitalMin:        0,
			DigitalMax:        4095,
			SamplesPerRecord:  sampleRate,
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := edf.Create(file, edf.Header{
		Version:            edf.Version0,
		PatientID:          "X X X X",
		RecordingID:        "Startdate " + start.Format("02-Jan-2006") + " pulse-hat capture",
		StartTime:          start,
		DataRecordDuration: time.Second,
		SignalCount:        sensors,
		Signals:            signals,
	})
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("writing EDF header: %w", err)
	}

	r := &Recorder{
		file:             file,
		w:                w,
		samplesPerRecord: sampleRate,
		pending:          make([][]float64, sensors),
	}
	for i := range r.pending {
		r.pending[i] = make([]float64, 0, sampleRate)
	}
	return r, nil
}

// Add appends one tick's worth of raw samples, one per sensor, flushing
// a data record whenever a full second has accumulated.
func (r *Recorder) Add(samples []int) error {
	if len(samples) != len(r.pending) {
		return fmt.Errorf("got %d samples for %d sensors", len(samples), len(r.pending))
	}
	for i, v := range samples {
		r.pending[i] = append(r.pending[i], float64(v))
	}
	r.buffered++
	if r.buffered < r.samplesPerRecord {
		return nil
	}

	if err := r.w.WriteRecord(r.pending); err != nil {
		return err
	}
	for i := range r.pending {
		r.pending[i] = r.pending[i][:0]
	}
	r.buffered = 0
	return nil
}

// Close finalizes the EDF header and closes the file. A trailing partial
// second is dropped rather than padded, since EDF records have a fixed
// sample count.
func (r *Recorder) Close() error {
	err := r.w.Close()
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	return err
}
