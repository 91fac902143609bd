// Package ble defines the transport contract between the session monitor and
// a Bluetooth Low Energy backend.
//
// Backends live in the goble, tinygo, and simulated subpackages. The monitor
// only sees the interfaces below, which keeps platform quirks out of the
// session logic and lets tests script the link.
package ble

import "context"

// RadioState reports whether the platform Bluetooth radio can serve requests.
type RadioState int

const (
	RadioUnknown RadioState = iota // The platform has not reported a state yet.
	RadioUnready                   // The radio is off, unauthorized, or absent.
	RadioReady                     // The radio is powered on and usable.
)

func (s RadioState) String() string {
	switch s {
	case RadioUnready:
		return "unready"
	case RadioReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Peer describes an advertising peripheral.
type Peer struct {
	// ID identifies the peripheral to the platform. On Linux this is the
	// peripheral's MAC address; on Darwin it is an opaque UUID.
	ID          string
	LocalName   string
	RSSI        int16
	Connectable bool
}

// ScanFilter controls which advertisements a Scan reports.
type ScanFilter struct {
	// TargetID restricts results to a single peer. Empty matches all peers.
	TargetID string

	// AllowDuplicates reports every advertisement rather than one per peer.
	// Reconnection scans set this: the interesting event is a known peer
	// advertising again, not its first appearance.
	AllowDuplicates bool
}

// Adapter is a handle on the platform Bluetooth radio.
type Adapter interface {
	// WatchRadio registers onChange to receive radio availability updates.
	// The callback fires once with the current state before WatchRadio
	// returns, and again on every change. The returned function cancels
	// delivery; it is safe to call more than once.
	WatchRadio(onChange func(RadioState)) (stop func())

	// Scan streams advertisements matching filter to found until ctx is
	// done, then returns ctx.Err(). It fails fast with ErrRadioUnready if
	// the radio cannot scan. The found callback runs on the adapter's
	// goroutine and must not block.
	Scan(ctx context.Context, filter ScanFilter, found func(Peer)) error

	// Connect establishes a link to the peer with the given ID. The peer
	// must be advertising; Connect does not wait for it to appear. ctx only
	// bounds establishment, not the life of the returned Conn.
	Connect(ctx context.Context, peerID string) (Conn, error)

	// Close releases the radio. Whether established links survive is
	// platform-specific; callers should close their Conns first.
	Close() error
}

// Conn is an established link to a peripheral.
type Conn interface {
	PeerID() string

	// Characteristic discovers the given service and returns a handle on one
	// of its characteristics.
	Characteristic(ctx context.Context, serviceUUID, characteristicUUID string) (Characteristic, error)

	// Disconnected delivers exactly one error when the link ends: ErrCancelled
	// after a local Close, or a cause such as ErrLinkLost otherwise.
	Disconnected() <-chan error

	Close() error
}

// Characteristic is a handle on a single GATT characteristic.
type Characteristic interface {
	// Read fetches the current value. Reading a protected characteristic
	// before the platform finishes bonding returns ErrAuthorizationPending;
	// reading with credentials the peer no longer recognizes returns
	// ErrPairingMismatch.
	Read(ctx context.Context) ([]byte, error)

	// Subscribe registers notify to receive value updates. The returned
	// function cancels the subscription and is safe to call more than once.
	// The notify callback must not block.
	Subscribe(notify func(value []byte)) (cancel func(), err error)

	// MTU reports the negotiated ATT payload size for the link.
	MTU() (int, error)
}
