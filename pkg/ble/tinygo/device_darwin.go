package tinygo

import (
	"fmt"

	"tinygo.org/x/bluetooth"
)

func newAdapter(id string) (*bluetooth.Adapter, error) {
	if id != "" {
		return nil, ErrInvalidAdapterID
	}
	return bluetooth.DefaultAdapter, nil
}

func IsAdapterError(_ error) bool {
	// TODO: Add check for Darwin
	return false
}

func AdapterErrorHelpMessage(err error) string {
	return err.Error()
}

// Darwin identifies peripherals by opaque UUIDs rather than MAC addresses.
func parseAddress(address string) (bluetooth.Address, error) {
	uuid, err := bluetooth.ParseUUID(address)
	if err != nil {
		return bluetooth.Address{}, fmt.Errorf("tinygo: failed to parse peer UUID: %s", err)
	}

	return bluetooth.Address{
		UUID: uuid,
	}, nil
}
