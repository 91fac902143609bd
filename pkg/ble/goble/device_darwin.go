package goble

import (
	goble "github.com/go-ble/ble"
	"github.com/go-ble/ble/darwin"

	"github.com/nathikazad/lura-bletest/internal/log"
)

func newDevice(id string) (goble.Device, error) {
	if id != "" {
		log.Warning("goble: Darwin does not support selecting a Bluetooth adapter")
		return nil, ErrInvalidAdapterID
	}
	return darwin.NewDevice()
}

func IsAdapterError(_ error) bool {
	// TODO: Add check for Darwin
	return false
}

func AdapterErrorHelpMessage(err error) string {
	return err.Error()
}
