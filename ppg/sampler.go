package ppg

import "time"

// Sampler schedules sample ticks on a fixed cadence. Each accepted tick
// advances the deadline by exactly one interval rather than to the
// current time, so scheduling jitter in the control loop never
// accumulates into drift.
type Sampler struct {
	interval time.Duration
	next     time.Time
}

// NewSampler returns a Sampler whose first tick is due one interval
// after now.
func NewSampler(interval time.Duration, now time.Time) *Sampler {
	return &Sampler{interval: interval, next: now.Add(interval)}
}

// Due reports whether a sample tick is due and, if so, consumes it. It
// never blocks; when no tick is due control returns immediately to the
// caller. If the loop has fallen behind, Due returns true on consecutive
// calls until the schedule has caught up.
func (s *Sampler) Due(now time.Time) bool {
	if now.Before(s.next) {
		return false
	}
	s.next = s.next.Add(s.interval)
	return true
}
