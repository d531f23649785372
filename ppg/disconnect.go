package ppg

// updateConnection infers sensor presence from two independent signals:
// sustained sample-to-sample flatness and a collapsed baseline envelope.
// Either alone is enough to declare the sensor disconnected. On
// reconnection the envelope is reset onto the current smoothed value so
// stale pre-disconnection bounds cannot bias the next beat threshold.
func (s *Sensor) updateConnection(raw int) {
	delta := raw - s.lastRawValue
	if delta < 0 {
		delta = -delta
	}
	if delta < s.cfg.FlatSignalThreshold {
		s.flatSampleCount++
	} else {
		s.flatSampleCount = 0
	}

	flat := s.flatSampleCount >= s.flatLimit
	narrow := s.maxValue-s.minValue < s.cfg.MinSignalRange

	if s.connected {
		if flat || narrow {
			s.connected = false
		}
	} else if !flat && !narrow {
		s.connected = true
		s.minValue = s.smoothed
		s.maxValue = s.smoothed
	}

	s.lastRawValue = raw
}
