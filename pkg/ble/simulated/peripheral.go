package simulated

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nathikazad/lura-bletest/pkg/ble"
)

// Default measurement service advertised by simulated peripherals. The UUIDs
// match the pendant's production firmware so a simulated session and a real
// one are interchangeable from the client's point of view.
const (
	DefaultServiceUUID        = "0000fff0-0000-1000-8000-00805f9b34fb"
	DefaultCharacteristicUUID = "0000fff1-0000-1000-8000-00805f9b34fb"
)

// Peripheral is a scripted measurement device. The zero value plus
// fillDefaults (applied by Adapter.AddPeripheral) yields a working pendant
// that ticks its counter once per second.
type Peripheral struct {
	// ID is the peer address. Defaults to a random UUID, mirroring how
	// Darwin hands out opaque peripheral identifiers.
	ID string
	// LocalName is the advertised name.
	LocalName string
	// RSSI is the advertised signal strength.
	RSSI int16
	// ServiceUUID and CharacteristicUUID locate the measurement value.
	ServiceUUID        string
	CharacteristicUUID string
	// MTU reported to clients.
	MTU int
	// NotifyEvery is the interval between notifications once a client
	// subscribes.
	NotifyEvery time.Duration
	// Text switches notifications from a raw byte to an ASCII decimal
	// line, matching firmware builds that stream over a UART bridge.
	Text bool
	// AuthPendingReads makes the first N reads fail with
	// ErrAuthorizationPending, simulating a peripheral that is still
	// waiting for its owner to confirm the pairing prompt.
	AuthPendingReads int
	// RejectPairings makes the first N reads fail with
	// ErrPairingMismatch, simulating a peripheral that dropped its bond.
	// A fresh pairing attempt succeeds once the scripted rejections are
	// spent.
	RejectPairings int

	lock    sync.Mutex
	counter uint64
}

func (p *Peripheral) fillDefaults() {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.LocalName == "" {
		p.LocalName = "lura"
	}
	if p.RSSI == 0 {
		p.RSSI = -42
	}
	if p.ServiceUUID == "" {
		p.ServiceUUID = DefaultServiceUUID
	}
	if p.CharacteristicUUID == "" {
		p.CharacteristicUUID = DefaultCharacteristicUUID
	}
	if p.MTU == 0 {
		p.MTU = 185
	}
	if p.NotifyEvery == 0 {
		p.NotifyEvery = time.Second
	}
}

func (p *Peripheral) peer() ble.Peer {
	return ble.Peer{
		ID:          p.ID,
		LocalName:   p.LocalName,
		RSSI:        p.RSSI,
		Connectable: true,
	}
}

// read runs the pairing script before returning the current value.
func (p *Peripheral) read() ([]byte, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.RejectPairings > 0 {
		p.RejectPairings--
		return nil, ble.ErrPairingMismatch
	}
	if p.AuthPendingReads > 0 {
		p.AuthPendingReads--
		return nil, ble.ErrAuthorizationPending
	}
	return p.encodeLocked(), nil
}

// stream emits the counter until stop closes.
func (p *Peripheral) stream(stop <-chan struct{}, notify func([]byte)) {
	ticker := time.NewTicker(p.NotifyEvery)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			notify(p.next())
		}
	}
}

func (p *Peripheral) next() []byte {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.counter++
	return p.encodeLocked()
}

func (p *Peripheral) encodeLocked() []byte {
	if p.Text {
		return []byte(strconv.FormatUint(p.counter, 10) + "\r\n")
	}
	return []byte{byte(p.counter)}
}
