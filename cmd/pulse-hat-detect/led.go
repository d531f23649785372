package main

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

const blinkInterval = 500 * time.Millisecond

// statusLED mirrors the pipeline state: solid on while every sensor is
// connected, a 1 Hz blink while any is not, and a short off-flash marking
// each beat.
type statusLED struct {
	pin       gpio.PinIO
	blinkOn   bool
	lastBlink time.Time
}

func newStatusLED(name string) (*statusLED, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("failed to init %s pin", name)
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, err
	}
	return &statusLED{pin: pin}, nil
}

func (l *statusLED) update(now time.Time, allConnected bool, lastBeat time.Time) {
	if !allConnected {
		if now.Sub(l.lastBlink) >= blinkInterval {
			l.lastBlink = now
			l.blinkOn = !l.blinkOn
			l.pin.Out(gpio.Level(l.blinkOn))
		}
		return
	}

	level := gpio.High
	if now.Sub(lastBeat) < beatFlashDuration {
		level = gpio.Low
	}
	l.pin.Out(level)
}
