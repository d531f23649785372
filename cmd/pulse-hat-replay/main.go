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

// pulse-hat-replay feeds a recorded EDF capture back through the
// detection pipeline, logging every beat it would have produced live.
// Useful for tuning detection parameters against a known session.
package main

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	arg "github.com/alexflint/go-arg"
	"github.com/hypebeast/go-osc/osc"
	"github.com/sirupsen/logrus"

	"github.com/heartbeat-install/pulse-hat-controller/ppg"
	"github.com/heartbeat-install/pulse-hat-controller/recording"
)

var version = "<not set>"

var log = logrus.New()

type Args struct {
	File     string `arg:"positional,required" help:"EDF capture to replay"`
	Rate     int    `arg:"--rate" help:"sample rate of the capture in Hz"`
	OSC      string `arg:"--osc" help:"host:port to re-send beat events to, empty to disable"`
	LogLevel string `arg:"-l,--log-level" default:"info" help:"Set the logging level (debug, info, warn, error)"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	args := Args{
		Rate: 50,
	}
	arg.MustParse(&args)
	return args
}

func main() {
	err := runMain()
	if err != nil {
		log.Fatal(err.Error())
	}
}

func runMain() error {
	args := procArgs()
	switch args.LogLevel {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	if args.Rate < 1 {
		return fmt.Errorf("sample rate must be positive, got %d", args.Rate)
	}

	var client *osc.Client
	if args.OSC != "" {
		host, portStr, err := net.SplitHostPort(args.OSC)
		if err != nil {
			return fmt.Errorf("bad OSC address %q: %w", args.OSC, err)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("bad OSC port %q: %w", portStr, err)
		}
		client = osc.NewClient(host, port)
	}

	rp, err := recording.OpenReplay(args.File)
	if err != nil {
		return err
	}
	defer rp.Close()

	cfg := ppg.DefaultConfig()
	cfg.SampleInterval = time.Second / time.Duration(args.Rate)

	// The first row seeds each channel, exactly as the live daemon seeds
	// from its first real reading.
	row, err := rp.Next()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%s holds no samples", args.File)
	}
	if err != nil {
		return err
	}
	sensors := make([]*ppg.Sensor, rp.Sensors())
	for i := range sensors {
		sensors[i] = ppg.NewSensor(cfg, row[i])
	}

	beats := make([]int, len(sensors))
	totalIBI := make([]time.Duration, len(sensors))

	start := time.Unix(0, 0)
	for n := 1; ; n++ {
		row, err = rp.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		now := start.Add(time.Duration(n) * cfg.SampleInterval)
		for i, s := range sensors {
			beat, ok := s.Process(row[i], now)
			if !ok {
				continue
			}
			log.Infof("%8s sensor %d beat, IBI %s", now.Sub(start).Round(time.Millisecond), i, beat.IBI)
			beats[i]++
			totalIBI[i] += beat.IBI
			if client != nil {
				msg := osc.NewMessage("/heartbeat")
				msg.Append(int32(i))
				msg.Append(int32(beat.IBI.Milliseconds()))
				if err := client.Send(msg); err != nil {
					log.Warnf("OSC send failed: %v", err)
				}
			}
		}
	}

	for i := range sensors {
		if beats[i] == 0 {
			log.Infof("sensor %d: no beats", i)
			continue
		}
		mean := totalIBI[i] / time.Duration(beats[i])
		log.Infof("sensor %d: %d beats, mean IBI %s (%.1f BPM)",
			i, beats[i], mean.Round(time.Millisecond), 60/mean.Seconds())
	}
	return nil
}
