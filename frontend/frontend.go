// Package frontend provides the analog sample sources for the detection
// pipeline: an ADS1015 ADC on the I2C bus, or a microcontroller front end
// streaming framed samples over a serial port.
package frontend

// Source produces one raw sensor reading per call, as an integer in the
// 12 bit ADC range 0-4095. A stuck or unplugged sensor produces flat
// readings, not errors; errors are reserved for the transport itself.
type Source interface {
	ReadSample() (int, error)
	Close() error
}
