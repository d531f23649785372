// Package ppg turns the noisy analog waveform of a photoplethysmographic
// (PPG) pulse sensor into discrete heartbeat events.
//
// Each sensor channel is processed by a fixed sequence of stages run once
// per 20 ms sample: a moving-average smoother, an adaptive baseline
// envelope, a disconnection detector and a debounced threshold-crossing
// beat detector. All state lives in a single Sensor value that is owned by
// one goroutine and never allocates after construction.
package ppg

import "time"

// Config holds the signal processing parameters for one sensor channel.
type Config struct {
	// SampleInterval is the time between raw ADC samples.
	SampleInterval time.Duration

	// MovingAvgSamples is the window size of the smoothing filter.
	MovingAvgSamples int

	// BaselineDecayRate is the fraction by which each envelope bound
	// contracts toward the midpoint on every decay.
	BaselineDecayRate float64

	// BaselineDecayInterval is the number of samples between decays.
	BaselineDecayInterval int

	// ThresholdFraction positions the beat threshold between the envelope
	// bounds, 0 at the trough and 1 at the peak.
	ThresholdFraction float64

	// MinSignalRange is the narrowest envelope width, in ADC units, that
	// still counts as a connected sensor.
	MinSignalRange int

	// RefractoryPeriod is the minimum time between accepted beats.
	RefractoryPeriod time.Duration

	// FlatSignalThreshold is the largest sample-to-sample delta, in ADC
	// units, that counts as a flat reading.
	FlatSignalThreshold int

	// DisconnectTimeout is how long the signal must stay flat before the
	// sensor is considered disconnected.
	DisconnectTimeout time.Duration
}

// DefaultConfig returns the reference parameters for a 12 bit sensor
// sampled at 50 Hz.
func DefaultConfig() Config {
	return Config{
		SampleInterval:        20 * time.Millisecond,
		MovingAvgSamples:      5,
		BaselineDecayRate:     0.1,
		BaselineDecayInterval: 150,
		ThresholdFraction:     0.6,
		MinSignalRange:        50,
		RefractoryPeriod:      300 * time.Millisecond,
		FlatSignalThreshold:   5,
		DisconnectTimeout:     time.Second,
	}
}

// flatSampleLimit is the number of consecutive flat samples that amounts
// to DisconnectTimeout.
func (c Config) flatSampleLimit() int {
	n := int(c.DisconnectTimeout / c.SampleInterval)
	if n < 1 {
		n = 1
	}
	return n
}

// Beat is a single detected heartbeat. IBI is the interval since the
// previous beat on the same channel. The first crossing after startup
// only arms the detector and produces no Beat, so IBI is always
// meaningful.
type Beat struct {
	Time time.Time
	IBI  time.Duration
}
