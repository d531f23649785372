package ppg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEndToEndSyntheticWaveform runs the whole pipeline against a square
// wave at 75 BPM and then a flat segment, checking that detected IBIs
// cluster around the true period and that the flat segment yields no
// events and a disconnected sensor.
func TestEndToEndSyntheticWaveform(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSensor(cfg, 1500)

	start := time.Unix(1700000000, 0)
	now := start
	var beats []Beat
	sample := func(raw int) {
		now = now.Add(cfg.SampleInterval)
		if b, ok := s.Process(raw, now); ok {
			beats = append(beats, b)
		}
	}

	// 800 ms period at 50 Hz: 20 samples low, 20 samples high.
	for i := 0; i < 1250; i++ {
		if i%40 < 20 {
			sample(1500)
		} else {
			sample(2500)
		}
	}

	// Skip the warm-up transient and judge the settled beats.
	var settled []Beat
	for _, b := range beats {
		if b.Time.Sub(start) > 3*time.Second {
			settled = append(settled, b)
		}
	}
	require.GreaterOrEqual(t, len(settled), 20)
	for _, b := range settled {
		assert.InDelta(t, float64(800*time.Millisecond), float64(b.IBI),
			float64(80*time.Millisecond), "IBI should cluster around the 800 ms period")
	}
	assert.InDelta(t, 75, s.BPM(), 8)

	// Two seconds flat at mid-range: zero events, and the flatness is
	// inferred as a disconnected sensor well before the segment ends.
	already := len(beats)
	for i := 0; i < 100; i++ {
		sample(2000)
	}
	assert.Equal(t, already, len(beats))
	assert.False(t, s.Connected())
}
