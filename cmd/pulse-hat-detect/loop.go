package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/godbus/dbus"

	"github.com/heartbeat-install/pulse-hat-controller/frontend"
	"github.com/heartbeat-install/pulse-hat-controller/ppg"
	"github.com/heartbeat-install/pulse-hat-controller/recording"
)

const (
	maxSensors        = 4
	beatFlashDuration = 50 * time.Millisecond
)

// pipeline owns the per-sensor detection state and everything hanging off
// it. The control loop goroutine is the only writer; the DBus service
// reads under mu.
type pipeline struct {
	cfg     ppg.Config
	sources []frontend.Source
	raw     []int

	mu       sync.Mutex
	sensors  []*ppg.Sensor
	lastBeat time.Time // short-lived pulse marker for the status LED

	sampler  *ppg.Sampler
	led      *statusLED
	osc      *oscSender
	recorder *recording.Recorder
	conn     *dbus.Conn
}

// newPipeline seeds one detection channel per source from a single real
// reading, per the sensor lifecycle.
func newPipeline(cfg ppg.Config, sources []frontend.Source) (*pipeline, error) {
	p := &pipeline{
		cfg:     cfg,
		sources: sources,
		raw:     make([]int, len(sources)),
		sensors: make([]*ppg.Sensor, len(sources)),
	}
	for i, src := range sources {
		initial, err := src.ReadSample()
		if err != nil {
			return nil, fmt.Errorf("seeding sensor %d: %w", i, err)
		}
		p.raw[i] = initial
		p.sensors[i] = ppg.NewSensor(cfg, initial)
	}
	return p, nil
}

// run is the outer control loop: take a sample tick when one is due, then
// do the non-blocking housekeeping (status LED refresh). Nothing in the
// loop body blocks, so a slow pass only delays, never drops, a tick.
func (p *pipeline) run() error {
	now := time.Now()
	p.sampler = ppg.NewSampler(p.cfg.SampleInterval, now)

	for {
		now = time.Now()
		if p.sampler.Due(now) {
			if err := p.tick(now); err != nil {
				return err
			}
		}
		if p.led != nil {
			p.led.update(now, p.allConnected(), p.beatMarker())
		}
		time.Sleep(time.Millisecond)
	}
}

func (p *pipeline) tick(now time.Time) error {
	for i, src := range p.sources {
		raw, err := src.ReadSample()
		if err != nil {
			// A failed read behaves like a stuck sensor: repeat the last
			// value and let the disconnection detector reach its own
			// verdict.
			log.Debugf("sensor %d read failed: %v", i, err)
			raw = p.raw[i]
		}
		p.raw[i] = raw
	}

	var beats [maxSensors]ppg.Beat
	var got [maxSensors]bool
	p.mu.Lock()
	for i, s := range p.sensors {
		beats[i], got[i] = s.Process(p.raw[i], now)
		if got[i] {
			p.lastBeat = now
		}
	}
	p.mu.Unlock()

	for i := range p.sensors {
		if !got[i] {
			continue
		}
		log.Infof("sensor %d beat, IBI %s (%.1f BPM)", i, beats[i].IBI, 60/beats[i].IBI.Seconds())
		if p.osc != nil {
			if err := p.osc.sendBeat(i, beats[i].IBI); err != nil {
				log.Warnf("OSC send failed: %v", err)
			}
		}
		p.emitBeat(i, beats[i])
	}

	if p.recorder != nil {
		if err := p.recorder.Add(p.raw); err != nil {
			return fmt.Errorf("recording: %w", err)
		}
	}
	return nil
}

func (p *pipeline) emitBeat(sensor int, beat ppg.Beat) {
	if p.conn == nil {
		return
	}
	err := p.conn.Emit(dbusPath, dbusName+".Beat", int32(sensor), beat.IBI.Milliseconds())
	if err != nil {
		log.Warnf("emitting beat signal: %v", err)
	}
}

func (p *pipeline) allConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range p.sensors {
		if !s.Connected() {
			return false
		}
	}
	return true
}

func (p *pipeline) beatMarker() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastBeat
}

func (p *pipeline) sensorCount() int {
	return len(p.sensors)
}

func (p *pipeline) sensor(i int) (*ppg.Sensor, error) {
	if i < 0 || i >= len(p.sensors) {
		return nil, fmt.Errorf("no such sensor: %d", i)
	}
	return p.sensors[i], nil
}

func (p *pipeline) connected(i int) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, err := p.sensor(i)
	if err != nil {
		return false, err
	}
	return s.Connected(), nil
}

func (p *pipeline) lastIBI(i int) (time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, err := p.sensor(i)
	if err != nil {
		return 0, err
	}
	return s.LastIBI(), nil
}

func (p *pipeline) bpm(i int) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, err := p.sensor(i)
	if err != nil {
		return 0, err
	}
	return s.BPM(), nil
}
