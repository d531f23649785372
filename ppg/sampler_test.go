package ppg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSamplerCadence(t *testing.T) {
	start := time.Unix(1700000000, 0)
	s := NewSampler(20*time.Millisecond, start)

	assert.False(t, s.Due(start))
	assert.False(t, s.Due(start.Add(19*time.Millisecond)))
	assert.True(t, s.Due(start.Add(20*time.Millisecond)))
	// The tick was consumed; the next one is due a full interval later.
	assert.False(t, s.Due(start.Add(21*time.Millisecond)))
	assert.True(t, s.Due(start.Add(40*time.Millisecond)))
}

func TestSamplerDoesNotAccumulateDrift(t *testing.T) {
	start := time.Unix(1700000000, 0)
	s := NewSampler(20*time.Millisecond, start)

	// Poll with a jittery 7 ms late offset every time. If the deadline
	// advanced to "now" instead of by one interval, 1000 ticks would
	// drift by 7 seconds.
	ticks := 0
	for i := 1; ticks < 1000; i++ {
		now := start.Add(time.Duration(i)*20*time.Millisecond + 7*time.Millisecond)
		if s.Due(now) {
			ticks++
		}
	}
	assert.Equal(t, start.Add(1001*20*time.Millisecond), s.next)
}

func TestSamplerCatchesUpAfterStall(t *testing.T) {
	start := time.Unix(1700000000, 0)
	s := NewSampler(20*time.Millisecond, start)

	// A 100 ms stall owes five ticks; they drain one call at a time.
	late := start.Add(100 * time.Millisecond)
	for i := 0; i < 5; i++ {
		assert.True(t, s.Due(late))
	}
	assert.False(t, s.Due(late))
}
