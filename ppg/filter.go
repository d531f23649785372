package ppg

// addSample writes the raw reading into the circular buffer and
// recomputes the truncated integer mean over the whole window.
func (s *Sensor) addSample(raw int) {
	s.rawSamples[s.sampleIndex] = raw
	s.sampleIndex = (s.sampleIndex + 1) % len(s.rawSamples)

	sum := 0
	for _, v := range s.rawSamples {
		sum += v
	}
	s.smoothed = sum / len(s.rawSamples)
}
