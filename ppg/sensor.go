package ppg

import "time"

// Sensor is the detection pipeline state for one sensor channel. It is
// created once per channel and mutated in place on every sample tick; it
// must only be touched by a single goroutine.
type Sensor struct {
	cfg       Config
	flatLimit int

	// Moving average filter.
	rawSamples  []int
	sampleIndex int
	smoothed    int

	// Baseline envelope.
	minValue          int
	maxValue          int
	samplesSinceDecay int

	// Beat detection.
	aboveThreshold    bool
	lastBeatTime      time.Time
	lastIBI           time.Duration
	firstBeatDetected bool

	// Disconnection detection.
	connected       bool
	lastRawValue    int
	flatSampleCount int
}

// NewSensor returns a Sensor seeded from the first real reading. The
// filter buffer is prefilled with it so the smoothed value is valid from
// the very first Process call, and the envelope starts collapsed onto it.
func NewSensor(cfg Config, initial int) *Sensor {
	s := &Sensor{
		cfg:          cfg,
		flatLimit:    cfg.flatSampleLimit(),
		rawSamples:   make([]int, cfg.MovingAvgSamples),
		smoothed:     initial,
		minValue:     initial,
		maxValue:     initial,
		connected:    true,
		lastRawValue: initial,
	}
	for i := range s.rawSamples {
		s.rawSamples[i] = initial
	}
	return s
}

// Process runs one raw sample through the pipeline stages in their fixed
// order and reports a Beat if one was accepted on this tick. It never
// blocks and performs no allocation.
func (s *Sensor) Process(raw int, now time.Time) (Beat, bool) {
	s.addSample(raw)
	s.updateBaseline()
	s.updateConnection(raw)
	return s.detectBeat(now)
}

// Connected reports the current connectivity inference. A flat signal or
// a collapsed envelope reads as a disconnected sensor, never as an error.
func (s *Sensor) Connected() bool {
	return s.connected
}

// Smoothed returns the current output of the moving average filter.
func (s *Sensor) Smoothed() int {
	return s.smoothed
}

// Envelope returns the current baseline envelope bounds.
func (s *Sensor) Envelope() (min, max int) {
	return s.minValue, s.maxValue
}

// LastIBI returns the interval between the two most recent accepted
// beats, or zero if fewer than two beats have been seen.
func (s *Sensor) LastIBI() time.Duration {
	return s.lastIBI
}

// BPM returns the heart rate implied by the last inter-beat interval, or
// zero if none has been measured yet.
func (s *Sensor) BPM() float64 {
	if s.lastIBI <= 0 {
		return 0
	}
	return 60 / s.lastIBI.Seconds()
}
