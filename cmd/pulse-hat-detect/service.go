/*
pulse-hat-controller - Heartbeat detection for analog pulse sensors
Copyright (C) 2025, The Heartbeat Install Project

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"errors"

	"github.com/godbus/dbus"
	"github.com/godbus/dbus/introspect"
)

const (
	dbusName = "org.heartbeat.PulseHat"
	dbusPath = "/org/heartbeat/PulseHat"
)

type service struct {
	p *pipeline
}

func startService(p *pipeline) error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return err
	}
	reply, err := conn.RequestName(dbusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return err
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return errors.New("name already taken")
	}

	s := &service{p: p}
	conn.Export(s, dbusPath, dbusName)
	conn.Export(genIntrospectable(s), dbusPath, "org.freedesktop.DBus.Introspectable")
	p.conn = conn
	return nil
}

func genIntrospectable(v interface{}) introspect.Introspectable {
	node := &introspect.Node{
		Interfaces: []introspect.Interface{{
			Name:    dbusName,
			Methods: introspect.Methods(v),
		}},
	}
	return introspect.NewIntrospectable(node)
}

// SensorCount returns the number of sensor channels.
func (s service) SensorCount() (int32, *dbus.Error) {
	return int32(s.p.sensorCount()), nil
}

// Connected reports the connectivity inference for one sensor.
func (s service) Connected(sensor int32) (bool, *dbus.Error) {
	connected, err := s.p.connected(int(sensor))
	if err != nil {
		return false, makeDbusError(".Connected", err)
	}
	return connected, nil
}

// LastIBI returns the most recent inter-beat interval in milliseconds,
// or zero if none has been measured yet.
func (s service) LastIBI(sensor int32) (int64, *dbus.Error) {
	ibi, err := s.p.lastIBI(int(sensor))
	if err != nil {
		return 0, makeDbusError(".LastIBI", err)
	}
	return ibi.Milliseconds(), nil
}

// BPM returns the heart rate implied by the last inter-beat interval.
func (s service) BPM(sensor int32) (float64, *dbus.Error) {
	bpm, err := s.p.bpm(int(sensor))
	if err != nil {
		return 0, makeDbusError(".BPM", err)
	}
	return bpm, nil
}

func makeDbusError(name string, err error) *dbus.Error {
	return &dbus.Error{
		Name: dbusName + name,
		Body: []interface{}{err.Error()},
	}
}
