// Package beatclient talks to the pulse-hat-detect daemon over DBus. It
// is the read side that external collaborators (status tooling, lighting
// or audio controllers) use to gate their behavior on sensor presence.
package beatclient

import (
	"time"

	"github.com/godbus/dbus"
)

const (
	dbusName = "org.heartbeat.PulseHat"
	dbusPath = "/org/heartbeat/PulseHat"
)

func call(method string, args ...interface{}) (*dbus.Call, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, err
	}
	obj := conn.Object(dbusName, dbusPath)
	c := obj.Call(dbusName+"."+method, 0, args...)
	return c, c.Err
}

// SensorCount returns the number of sensor channels the daemon runs.
func SensorCount() (int, error) {
	c, err := call("SensorCount")
	if err != nil {
		return 0, err
	}
	var n int32
	if err := c.Store(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

// Connected reports the daemon's connectivity inference for one sensor.
func Connected(sensor int) (bool, error) {
	c, err := call("Connected", int32(sensor))
	if err != nil {
		return false, err
	}
	var connected bool
	if err := c.Store(&connected); err != nil {
		return false, err
	}
	return connected, nil
}

// LastIBI returns the most recent inter-beat interval for one sensor, or
// zero if the daemon has not measured one yet.
func LastIBI(sensor int) (time.Duration, error) {
	c, err := call("LastIBI", int32(sensor))
	if err != nil {
		return 0, err
	}
	var ms int64
	if err := c.Store(&ms); err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// BPM returns the heart rate implied by the last inter-beat interval for
// one sensor, or zero if none has been measured.
func BPM(sensor int) (float64, error) {
	c, err := call("BPM", int32(sensor))
	if err != nil {
		return 0, err
	}
	var bpm float64
	if err := c.Store(&bpm); err != nil {
		return 0, err
	}
	return bpm, nil
}
