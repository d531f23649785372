package frontend

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

// ADS1015 samples a pulse sensor wired to one single-ended channel of a
// TI ADS1015 ADC.
type ADS1015 struct {
	pin ads1x15.PinADC
}

// NewADS1015 opens the given channel (0-3) on an ADS1015 at its default
// address on the bus. The channel is configured for the sensor's 3.3 V
// supply and a conversion rate comfortably above the 50 Hz sampling
// cadence.
func NewADS1015(bus i2c.Bus, channel int) (*ADS1015, error) {
	adc, err := ads1x15.NewADS1015(bus, &ads1x15.DefaultOpts)
	if err != nil {
		return nil, fmt.Errorf("opening ADS1015: %w", err)
	}
	ch, err := singleEndedChannel(channel)
	if err != nil {
		return nil, err
	}
	pin, err := adc.PinForChannel(ch, 3300*physic.MilliVolt, 128*physic.Hertz, ads1x15.SaveEnergy)
	if err != nil {
		return nil, fmt.Errorf("configuring ADC channel %d: %w", channel, err)
	}
	return &ADS1015{pin: pin}, nil
}

func singleEndedChannel(n int) (ads1x15.Channel, error) {
	switch n {
	case 0:
		return ads1x15.Channel0, nil
	case 1:
		return ads1x15.Channel1, nil
	case 2:
		return ads1x15.Channel2, nil
	case 3:
		return ads1x15.Channel3, nil
	}
	return ads1x15.Channel0, fmt.Errorf("no such ADC channel: %d", n)
}

// ReadSample performs one conversion and maps it onto the 12 bit range.
func (a *ADS1015) ReadSample() (int, error) {
	sample, err := a.pin.Read()
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", a.pin.Name(), err)
	}
	// The driver returns the sign-extended 16 bit conversion register;
	// scale down to 12 bits and clamp, the sensor only swings positive.
	raw := int(sample.Raw) >> 3
	if raw < 0 {
		raw = 0
	}
	if raw > 4095 {
		raw = 4095
	}
	return raw, nil
}

func (a *ADS1015) Close() error {
	return a.pin.Halt()
}
