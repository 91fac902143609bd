package main

import (
	"errors"
	"testing"
	"time"

	"github.com/nathikazad/lura-bletest/pkg/ble"
)

func TestParseSeconds(t *testing.T) {
	type params struct {
		str  string
		wait time.Duration
		err  error
	}
	testCases := []params{
		{str: "5", wait: 5 * time.Second},
		{str: "1", wait: time.Second},
		{str: "90", wait: 90 * time.Second},
		{str: "0", err: ErrCommandLineArgs},
		{str: "-3", err: ErrCommandLineArgs},
		{str: "", err: ErrCommandLineArgs},
		{str: "5s", err: ErrCommandLineArgs},
		{str: "five", err: ErrCommandLineArgs},
	}
	for _, test := range testCases {
		wait, err := parseSeconds(test.str)
		if !errors.Is(err, test.err) {
			t.Errorf("expected '%s' to result in error %s, but got %s", test.str, test.err, err)
		} else if wait != test.wait {
			t.Errorf("expected parseSeconds('%s') = %s, but got %s", test.str, test.wait, wait)
		}
	}
}

func TestMatchesPeer(t *testing.T) {
	peer := ble.Peer{ID: "AA:BB:CC:DD:EE:01", LocalName: "lura"}
	type params struct {
		address string
		name    string
		match   bool
	}
	testCases := []params{
		{address: "aa:bb:cc:dd:ee:01", match: true},
		{address: "AA:BB:CC:DD:EE:01", name: "other", match: true},
		{address: "aa:bb:cc:dd:ee:02", name: "lura", match: false},
		{name: "LURA", match: true},
		{name: "pendant", match: false},
		{match: false},
	}
	for _, test := range testCases {
		if match := matchesPeer(peer, test.address, test.name); match != test.match {
			t.Errorf("matchesPeer(address='%s', name='%s') = %v, expected %v", test.address, test.name, match, test.match)
		}
	}
}
