package main

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/hypebeast/go-osc/osc"
)

// oscSender forwards accepted beats to the downstream audio host as
// /heartbeat messages carrying the sensor id and the IBI in milliseconds.
type oscSender struct {
	client *osc.Client
}

func newOSCSender(addr string) (*oscSender, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("bad OSC address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("bad OSC port %q: %w", portStr, err)
	}
	return &oscSender{client: osc.NewClient(host, port)}, nil
}

func (o *oscSender) sendBeat(sensor int, ibi time.Duration) error {
	msg := osc.NewMessage("/heartbeat")
	msg.Append(int32(sensor))
	msg.Append(int32(ibi.Milliseconds()))
	return o.client.Send(msg)
}
