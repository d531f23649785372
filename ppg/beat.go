package ppg

import "time"

// Threshold returns the current beat detection threshold, derived from
// the baseline envelope on demand rather than stored.
func (s *Sensor) Threshold() int {
	return s.minValue + int(float64(s.maxValue-s.minValue)*s.cfg.ThresholdFraction)
}

// detectBeat is a two-state debounced threshold crossing detector. A
// rising edge through the threshold is a candidate beat; it is accepted
// only if the refractory period since the last accepted beat has passed.
// The refractory check runs before the state latch so a suppressed
// crossing does not consume the rearm, and the detector stays responsive
// to the next genuine crossing.
func (s *Sensor) detectBeat(now time.Time) (Beat, bool) {
	// A disconnected sensor produces no beat events.
	if !s.connected {
		return Beat{}, false
	}

	threshold := s.Threshold()
	var beat Beat
	var detected bool

	if s.smoothed >= threshold && !s.aboveThreshold {
		sinceLast := now.Sub(s.lastBeatTime)
		if !s.firstBeatDetected || sinceLast >= s.cfg.RefractoryPeriod {
			s.aboveThreshold = true
			if s.firstBeatDetected {
				// There is nothing to measure the first beat against,
				// so only subsequent beats carry an interval.
				s.lastIBI = sinceLast
				beat = Beat{Time: now, IBI: sinceLast}
				detected = true
			} else {
				s.firstBeatDetected = true
			}
			s.lastBeatTime = now
		}
	}

	// Falling edge rearms the detector whether or not the upward
	// crossing was accepted.
	if s.smoothed < threshold {
		s.aboveThreshold = false
	}

	return beat, detected
}
