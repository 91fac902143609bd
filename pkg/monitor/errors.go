package monitor

import "errors"

var (
	ErrAlreadyStarted = errors.New("monitor: already started")
	ErrNotStarted     = errors.New("monitor: not started")
	// ErrUnknownPeer indicates SelectPeer was called with an ID the open scan
	// has not reported.
	ErrUnknownPeer = errors.New("monitor: peer has not been discovered")
	// ErrAlreadyTracking indicates SelectPeer was called while a peer is
	// tracked. Call Forget first.
	ErrAlreadyTracking = errors.New("monitor: already tracking a peer")
	// ErrNotTracking indicates Disconnect was called with no tracked peer.
	ErrNotTracking = errors.New("monitor: no peer selected")
)
