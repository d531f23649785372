package ppg

// updateBaseline keeps the [min, max] envelope around the smoothed
// signal. Expansion is instant so pulse peaks and troughs are never
// clipped by a lagging bound; contraction runs on a slow periodic decay
// so an envelope widened by a one-off artifact recovers within a few
// seconds instead of leaving the detector de-sensitized.
func (s *Sensor) updateBaseline() {
	if s.smoothed < s.minValue {
		s.minValue = s.smoothed
	}
	if s.smoothed > s.maxValue {
		s.maxValue = s.smoothed
	}

	s.samplesSinceDecay++
	if s.samplesSinceDecay < s.cfg.BaselineDecayInterval {
		return
	}
	s.samplesSinceDecay = 0

	// Contract both bounds toward the envelope midpoint, keeping the
	// current smoothed value inside the envelope.
	mid := (s.minValue + s.maxValue) / 2
	s.minValue += int(float64(mid-s.minValue) * s.cfg.BaselineDecayRate)
	s.maxValue -= int(float64(s.maxValue-mid) * s.cfg.BaselineDecayRate)
	if s.minValue > s.smoothed {
		s.minValue = s.smoothed
	}
	if s.maxValue < s.smoothed {
		s.maxValue = s.smoothed
	}
}
