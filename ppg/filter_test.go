package ppg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func feed(s *Sensor, raws ...int) {
	now := time.Now()
	for _, raw := range raws {
		now = now.Add(20 * time.Millisecond)
		s.Process(raw, now)
	}
}

func TestMovingAverageTracksLastNSamples(t *testing.T) {
	s := NewSensor(DefaultConfig(), 2000)

	feed(s, 2000, 2000, 2000, 2000, 2000)
	assert.Equal(t, 2000, s.Smoothed())

	// One new sample replaces one slot of the prefilled buffer.
	feed(s, 2500)
	assert.Equal(t, (2000*4+2500)/5, s.Smoothed())

	// After a full window only the new samples remain.
	feed(s, 2500, 2500, 2500, 2500)
	assert.Equal(t, 2500, s.Smoothed())
}

func TestMovingAverageTruncatesMean(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MovingAvgSamples = 2
	s := NewSensor(cfg, 0)

	feed(s, 100, 101)
	assert.Equal(t, 100, s.Smoothed())
}

func TestMovingAverageWindowOfOne(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MovingAvgSamples = 1
	s := NewSensor(cfg, 1000)

	feed(s, 3000)
	assert.Equal(t, 3000, s.Smoothed())
	feed(s, 10)
	assert.Equal(t, 10, s.Smoothed())
}

func TestBufferPrefilledAtInit(t *testing.T) {
	s := NewSensor(DefaultConfig(), 1234)

	// Valid from the very first tick, no warm-up period.
	assert.Equal(t, 1234, s.Smoothed())
	feed(s, 1234)
	assert.Equal(t, 1234, s.Smoothed())
}
