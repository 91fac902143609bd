package goble

import (
	"errors"

	goble "github.com/go-ble/ble"
)

func newDevice(_ string) (goble.Device, error) {
	return nil, errors.New("not supported on Windows")
}

func IsAdapterError(_ error) bool {
	return false
}

func AdapterErrorHelpMessage(err error) string {
	return err.Error()
}
