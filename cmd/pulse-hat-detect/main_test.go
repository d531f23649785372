package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenSourcesRejectsUnknownSource(t *testing.T) {
	_, err := openSources(Args{Source: "adc0832", Sensors: 1})
	assert.Error(t, err)
}

func TestSerialSourceIsSingleChannel(t *testing.T) {
	_, err := openSources(Args{Source: "serial", Sensors: 2})
	assert.Error(t, err)
}

func TestOSCSenderAddressParsing(t *testing.T) {
	_, err := newOSCSender("192.168.1.100:8000")
	assert.NoError(t, err)

	_, err = newOSCSender("192.168.1.100")
	assert.Error(t, err)

	_, err = newOSCSender("host:notaport")
	assert.Error(t, err)
}
