package goble

import (
	"errors"
	"testing"

	"github.com/nathikazad/lura-bletest/pkg/ble"
)

func TestClassifyMapsATTErrors(t *testing.T) {
	cases := []struct {
		message string
		want    error
	}{
		{"ATT request failed: insufficient authentication", ble.ErrAuthorizationPending},
		{"ATT request failed: insufficient authorization", ble.ErrAuthorizationPending},
		{"ATT request failed: insufficient encryption", ble.ErrPairingMismatch},
		{"authentication failure", ble.ErrPairingMismatch},
		{"pin or key missing", ble.ErrPairingMismatch},
		{"connection timed out", ble.ErrLinkLost},
		{"read: connection reset by peer", ble.ErrLinkLost},
		{"client disconnected", ble.ErrLinkLost},
	}
	for _, test := range cases {
		err := classify(errors.New(test.message))
		if !errors.Is(err, test.want) {
			t.Errorf("Expected %q to classify as %v but got %v", test.message, test.want, err)
		}
	}
}

func TestClassifyPreservesUnknownErrors(t *testing.T) {
	if err := classify(nil); err != nil {
		t.Errorf("Expected nil to stay nil but got %v", err)
	}
	unknown := errors.New("attribute handle out of range")
	if err := classify(unknown); err != unknown {
		t.Errorf("Expected unknown errors to pass through but got %v", err)
	}
}
