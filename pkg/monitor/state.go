package monitor

import (
	"github.com/nathikazad/lura-bletest/pkg/ble"
)

// State identifies a phase of the session lifecycle.
type State int

const (
	// StateDiscovering means no peer is being tracked. The monitor runs an
	// open scan and collects candidates for SelectPeer.
	StateDiscovering State = iota
	// StateReconnecting means a peer is being tracked but the link is down.
	// The monitor watches for the peer to advertise and connects when it
	// does.
	StateReconnecting
	// StateActive means the link is up and the measurement characteristic is
	// subscribed.
	StateActive
)

func (s State) String() string {
	switch s {
	case StateReconnecting:
		return "reconnecting"
	case StateActive:
		return "active"
	default:
		return "discovering"
	}
}

// Update describes a change in the monitor's view of the session. State is
// always set; at most one other field is.
type Update struct {
	// State is the session state at the time the update was recorded.
	State State
	// Peer is set when an open scan discovers a new peer.
	Peer *ble.Peer
	// Token is set when a subscribed characteristic delivers a decodable
	// value.
	Token string
	// Err is set when the session records a failure.
	Err error
}

// Snapshot is a point-in-time copy of the monitor's session state.
type Snapshot struct {
	Running bool
	State   State
	Radio   ble.RadioState

	// Peers lists the candidates collected by the open scan, in discovery
	// order.
	Peers []ble.Peer

	// PeerID and PeerName identify the tracked peer, if any.
	PeerID   string
	PeerName string

	Connected bool
	MTU       int

	// Err is the most recent failure the session recorded, cleared when a
	// link is established.
	Err error
}
