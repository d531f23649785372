// pulse-hat-status prints the live state of every sensor channel the
// pulse-hat-detect daemon is running, queried over DBus.
package main

import (
	"fmt"
	"log"

	arg "github.com/alexflint/go-arg"

	"github.com/heartbeat-install/pulse-hat-controller/beatclient"
)

var version = "<not set>"

type Args struct {
}

func (Args) Version() string {
	return version
}

func main() {
	err := runMain()
	if err != nil {
		log.Fatal(err)
	}
}

func runMain() error {
	log.SetFlags(0)
	arg.MustParse(&Args{})

	count, err := beatclient.SensorCount()
	if err != nil {
		return fmt.Errorf("querying daemon (is pulse-hat-detect running?): %w", err)
	}

	for i := 0; i < count; i++ {
		connected, err := beatclient.Connected(i)
		if err != nil {
			return err
		}
		if !connected {
			fmt.Printf("sensor %d: disconnected\n", i)
			continue
		}
		ibi, err := beatclient.LastIBI(i)
		if err != nil {
			return err
		}
		if ibi == 0 {
			fmt.Printf("sensor %d: connected, no beats yet\n", i)
			continue
		}
		bpm, err := beatclient.BPM(i)
		if err != nil {
			return err
		}
		fmt.Printf("sensor %d: connected, last IBI %s, %.1f BPM\n", i, ibi, bpm)
	}
	return nil
}
