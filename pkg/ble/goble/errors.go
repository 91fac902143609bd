package goble

import (
	"fmt"
	"strings"

	"github.com/nathikazad/lura-bletest/pkg/ble"
)

// classify maps go-ble failures onto the contract's error taxonomy. go-ble
// surfaces ATT and HCI status codes only through error text, so the matching
// is on substrings.
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "insufficient authentication"),
		strings.Contains(msg, "insufficient authorization"):
		return fmt.Errorf("%w: %s", ble.ErrAuthorizationPending, err)
	case strings.Contains(msg, "insufficient encryption"),
		strings.Contains(msg, "authentication failure"),
		strings.Contains(msg, "pin or key missing"):
		// The peer cleared its bond table. Reads stay rejected until the
		// hosts pair from scratch.
		return fmt.Errorf("%w: %s", ble.ErrPairingMismatch, err)
	case strings.Contains(msg, "connection timed out"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "disconnected"):
		return fmt.Errorf("%w: %s", ble.ErrLinkLost, err)
	}
	if IsAdapterError(err) {
		return fmt.Errorf("%w: %s", ble.ErrRadioUnready, err)
	}
	return err
}
