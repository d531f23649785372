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
	"fmt"
	"strings"
	"time"

	arg "github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/heartbeat-install/pulse-hat-controller/frontend"
	"github.com/heartbeat-install/pulse-hat-controller/ppg"
	"github.com/heartbeat-install/pulse-hat-controller/recording"
)

var version = "<not set>"

var log = logrus.New()

type Args struct {
	Source     string `arg:"--source" help:"sample source: ads1015 or serial"`
	I2CBus     string `arg:"--i2c-bus" help:"I2C bus name, the first available if empty"`
	SerialPort string `arg:"--serial-port" help:"serial device for the serial source"`
	Baud       int    `arg:"--baud" help:"baud rate for the serial source"`
	Sensors    int    `arg:"--sensors" help:"number of sensor channels (1-4)"`
	LEDPin     string `arg:"--led-pin" help:"status LED GPIO pin, empty to disable"`
	OSC        string `arg:"--osc" help:"host:port of the OSC beat consumer, empty to disable"`
	Record     string `arg:"--record" help:"capture raw samples to this EDF file"`
	LogLevel   string `arg:"-l,--log-level" default:"info" help:"Set the logging level (debug, info, warn, error)"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	args := Args{
		Source:     "ads1015",
		SerialPort: "/dev/serial0",
		Baud:       115200,
		Sensors:    1,
		LEDPin:     "GPIO17",
	}
	arg.MustParse(&args)
	return args
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
		log.Warn("Unknown log level, defaulting to info")
	}
}

type customFormatter struct{}

func (f *customFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return []byte(fmt.Sprintf("[%s] %s\n", strings.ToUpper(entry.Level.String()), entry.Message)), nil
}

func main() {
	err := runMain()
	if err != nil {
		log.Fatal(err.Error())
	}
}

func runMain() error {
	log.SetFormatter(new(customFormatter))
	args := procArgs()
	setLogLevel(args.LogLevel)

	log.Info("Running version: ", version)

	if args.Sensors < 1 || args.Sensors > maxSensors {
		return fmt.Errorf("sensor count must be 1-%d, got %d", maxSensors, args.Sensors)
	}

	if _, err := host.Init(); err != nil {
		return err
	}

	sources, err := openSources(args)
	if err != nil {
		return err
	}
	defer func() {
		for _, src := range sources {
			src.Close()
		}
	}()

	cfg := ppg.DefaultConfig()
	p, err := newPipeline(cfg, sources)
	if err != nil {
		return err
	}

	if args.Record != "" {
		sampleRate := int(time.Second / cfg.SampleInterval)
		rec, err := recording.NewRecorder(args.Record, len(sources), sampleRate, time.Now())
		if err != nil {
			return err
		}
		defer rec.Close()
		log.Info("Capturing raw samples to ", args.Record)
		p.recorder = rec
	}

	if args.OSC != "" {
		sender, err := newOSCSender(args.OSC)
		if err != nil {
			return err
		}
		log.Info("Forwarding beat events to ", args.OSC)
		p.osc = sender
	}

	if args.LEDPin != "" {
		led, err := newStatusLED(args.LEDPin)
		if err != nil {
			return err
		}
		p.led = led
	}

	if err := startService(p); err != nil {
		return err
	}

	return p.run()
}

func openSources(args Args) ([]frontend.Source, error) {
	switch args.Source {
	case "ads1015":
		bus, err := i2creg.Open(args.I2CBus)
		if err != nil {
			return nil, err
		}
		sources := make([]frontend.Source, args.Sensors)
		for i := range sources {
			src, err := frontend.NewADS1015(bus, i)
			if err != nil {
				return nil, err
			}
			sources[i] = src
		}
		return sources, nil
	case "serial":
		if args.Sensors != 1 {
			return nil, errors.New("the serial source supports a single sensor channel")
		}
		src, err := frontend.NewSerialSource(args.SerialPort, args.Baud, 0)
		if err != nil {
			return nil, err
		}
		return []frontend.Source{src}, nil
	}
	return nil, fmt.Errorf("unknown source %q, want ads1015 or serial", args.Source)
}
