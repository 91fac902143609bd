package goble

import (
	"errors"
	"testing"

	"github.com/nathikazad/lura-bletest/pkg/ble"
)

func TestAdapterErrorDetection(t *testing.T) {
	dead := []string{
		"can't init hci: no such device",
		"hci0: network is down",
		"device is down",
		"operation blocked by rf-kill",
	}
	for _, message := range dead {
		if !IsAdapterError(errors.New(message)) {
			t.Errorf("Expected %q to count as an adapter error", message)
		}
	}
	if IsAdapterError(nil) {
		t.Errorf("Expected nil to not count as an adapter error")
	}
	if IsAdapterError(errors.New("connection timed out")) {
		t.Errorf("Expected a link failure to not count as an adapter error")
	}
}

func TestClassifyFlagsDeadAdapter(t *testing.T) {
	err := classify(errors.New("hci0: no such device"))
	if !errors.Is(err, ble.ErrRadioUnready) {
		t.Errorf("Expected a dead adapter to classify as ErrRadioUnready but got %v", err)
	}
}

func TestDeviceIDParsing(t *testing.T) {
	if _, err := newDevice("hciX"); !errors.Is(err, ErrInvalidAdapterID) {
		t.Errorf("Expected a malformed adapter ID to be rejected but got %v", err)
	}
}
