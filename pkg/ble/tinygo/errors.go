package tinygo

import (
	"fmt"
	"strings"

	"github.com/nathikazad/lura-bletest/pkg/ble"
)

// classify maps BlueZ and CoreBluetooth failures onto the contract's error
// taxonomy. The library surfaces both only through error text.
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "org.bluez.error.notauthorized"),
		strings.Contains(msg, "insufficient authentication"),
		strings.Contains(msg, "insufficient authorization"):
		return fmt.Errorf("%w: %s", ble.ErrAuthorizationPending, err)
	case strings.Contains(msg, "org.bluez.error.authenticationfailed"),
		strings.Contains(msg, "authentication canceled"),
		strings.Contains(msg, "not paired"):
		// The peer cleared its bond table. Reads stay rejected until the
		// hosts pair from scratch.
		return fmt.Errorf("%w: %s", ble.ErrPairingMismatch, err)
	case strings.Contains(msg, "not connected"),
		strings.Contains(msg, "connection timed out"):
		return fmt.Errorf("%w: %s", ble.ErrLinkLost, err)
	}
	if IsAdapterError(err) {
		return fmt.Errorf("%w: %s", ble.ErrRadioUnready, err)
	}
	return err
}
