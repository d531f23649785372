package ppg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// widen pushes the envelope wide open and leaves the raw signal varying
// enough to keep the flat counter at zero.
func widen(s *Sensor) {
	feed(s, 1000, 3000, 1000, 3000, 1000, 3000)
}

func TestDisconnectOnFlatSignal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MovingAvgSamples = 1
	s := NewSensor(cfg, 2000)
	widen(s)
	require.True(t, s.Connected())

	// The step down to 2000 still counts as variation; only the flat
	// samples after it accumulate. One short of the limit is not yet a
	// verdict.
	feed(s, 2000)
	for i := 0; i < cfg.flatSampleLimit()-1; i++ {
		feed(s, 2000)
	}
	assert.True(t, s.Connected())

	feed(s, 2000)
	assert.False(t, s.Connected())
}

func TestVariationResetsFlatCounter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MovingAvgSamples = 1
	s := NewSensor(cfg, 2000)
	widen(s)

	feed(s, 2000)
	for i := 0; i < cfg.flatSampleLimit()-1; i++ {
		feed(s, 2000)
	}
	// One lively sample part-way through restarts the count.
	feed(s, 2020)
	for i := 0; i < cfg.flatSampleLimit()-1; i++ {
		feed(s, 2020)
	}
	assert.True(t, s.Connected())
}

func TestDisconnectOnNarrowEnvelope(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MovingAvgSamples = 1
	s := NewSensor(cfg, 2000)

	// Vary the raw signal above the flat threshold but keep the envelope
	// narrower than MinSignalRange: only the range evidence fires.
	feed(s, 2010)
	assert.False(t, s.Connected())
	assert.Equal(t, 0, s.flatSampleCount)
}

func TestReconnectionResetsEnvelope(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MovingAvgSamples = 1
	s := NewSensor(cfg, 2000)
	widen(s)
	require.True(t, s.Connected())

	// Flatline until disconnected.
	feed(s, 2000)
	for i := 0; i < cfg.flatSampleLimit(); i++ {
		feed(s, 2000)
	}
	require.False(t, s.Connected())

	// Renewed variation reconnects the moment both disconnection signals
	// clear, and the envelope restarts from the current smoothed value.
	feed(s, 2700)
	assert.True(t, s.Connected())
	min, max := s.Envelope()
	assert.Equal(t, s.Smoothed(), min)
	assert.Equal(t, s.Smoothed(), max)
}

func TestSaturatedSignalReadsAsDisconnected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MovingAvgSamples = 1
	s := NewSensor(cfg, 4095)
	widen(s)
	require.True(t, s.Connected())

	// Pinned at the ADC rail: flat, not an error.
	feed(s, 4095)
	for i := 0; i < cfg.flatSampleLimit(); i++ {
		feed(s, 4095)
	}
	assert.False(t, s.Connected())
}
