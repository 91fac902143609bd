package ble

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		err         error
		shouldRetry bool
		benign      bool
	}{
		{ErrRadioUnready, false, false},
		{ErrAuthorizationPending, true, false},
		{ErrPairingMismatch, false, false},
		{ErrCancelled, false, true},
		{ErrLinkLost, true, false},
		{ErrNotConnectable, false, false},
		{ErrPeerNotFound, false, false},
	}
	for _, test := range tests {
		if got := ShouldRetry(test.err); got != test.shouldRetry {
			t.Errorf("ShouldRetry(%q) = %v, want %v", test.err, got, test.shouldRetry)
		}
		if got := IsBenign(test.err); got != test.benign {
			t.Errorf("IsBenign(%q) = %v, want %v", test.err, got, test.benign)
		}
	}
}

func TestWrappedErrorClassification(t *testing.T) {
	wrapped := fmt.Errorf("reading pair status: %w", ErrAuthorizationPending)
	if !ShouldRetry(wrapped) {
		t.Error("wrapping should preserve retry classification")
	}
	if !errors.Is(wrapped, ErrAuthorizationPending) {
		t.Error("wrapping should preserve sentinel identity")
	}
	if !Temporary(wrapped) {
		t.Error("wrapping should preserve Temporary classification")
	}
}

func TestUnclassifiedErrors(t *testing.T) {
	if ShouldRetry(nil) {
		t.Error("nil error should not be retried")
	}
	if ShouldRetry(errors.New("spontaneous failure")) {
		t.Error("errors without classification should not be retried")
	}
	if IsBenign(errors.New("spontaneous failure")) {
		t.Error("errors without classification are not benign")
	}
}
