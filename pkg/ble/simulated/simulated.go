// Package simulated backs the ble contract with an in-process radio. It is
// used by the -simulate flag and by tests that need a full session without
// hardware: peripherals are scripted, the radio can be powered on and off,
// and links can be severed on demand.
package simulated

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/nathikazad/lura-bletest/pkg/ble"
)

// DefaultAdvertiseInterval is how often the simulated radio reports each
// registered peripheral to an active scan.
const DefaultAdvertiseInterval = 100 * time.Millisecond

// Adapter is a simulated radio.
type Adapter struct {
	// AdvertiseInterval overrides DefaultAdvertiseInterval. Set it before
	// the first Scan.
	AdvertiseInterval time.Duration

	lock        sync.Mutex
	ready       bool
	peripherals []*Peripheral
	conns       []*Conn
	watchers    map[int]func(ble.RadioState)
	nextID      int
}

// New creates a simulated adapter with the radio powered on.
func New() *Adapter {
	return &Adapter{
		ready:    true,
		watchers: make(map[int]func(ble.RadioState)),
	}
}

// AddPeripheral registers a peripheral and starts advertising it.
func (a *Adapter) AddPeripheral(p *Peripheral) {
	p.fillDefaults()
	a.lock.Lock()
	a.peripherals = append(a.peripherals, p)
	a.lock.Unlock()
}

// SetRadio powers the radio on or off. Powering off severs every link, the
// same way a real platform would.
func (a *Adapter) SetRadio(ready bool) {
	a.lock.Lock()
	if a.ready == ready {
		a.lock.Unlock()
		return
	}
	a.ready = ready
	watchers := make([]func(ble.RadioState), 0, len(a.watchers))
	for _, w := range a.watchers {
		watchers = append(watchers, w)
	}
	var severed []*Conn
	if !ready {
		severed = a.conns
		a.conns = nil
	}
	a.lock.Unlock()

	for _, conn := range severed {
		conn.sever(ble.ErrLinkLost)
	}
	state := ble.RadioUnready
	if ready {
		state = ble.RadioReady
	}
	for _, w := range watchers {
		w(state)
	}
}

// DropLink severs any link to the given peer, as if it moved out of range.
func (a *Adapter) DropLink(peerID string) {
	a.lock.Lock()
	var severed []*Conn
	kept := a.conns[:0]
	for _, conn := range a.conns {
		if conn.PeerID() == peerID {
			severed = append(severed, conn)
		} else {
			kept = append(kept, conn)
		}
	}
	a.conns = kept
	a.lock.Unlock()

	for _, conn := range severed {
		conn.sever(ble.ErrLinkLost)
	}
}

func (a *Adapter) WatchRadio(onChange func(ble.RadioState)) func() {
	a.lock.Lock()
	id := a.nextID
	a.nextID++
	a.watchers[id] = onChange
	state := ble.RadioUnready
	if a.ready {
		state = ble.RadioReady
	}
	a.lock.Unlock()
	onChange(state)
	return func() {
		a.lock.Lock()
		delete(a.watchers, id)
		a.lock.Unlock()
	}
}

func (a *Adapter) Scan(ctx context.Context, filter ble.ScanFilter, found func(ble.Peer)) error {
	if !a.radioReady() {
		return ble.ErrRadioUnready
	}
	interval := a.AdvertiseInterval
	if interval <= 0 {
		interval = DefaultAdvertiseInterval
	}
	seen := make(map[string]bool)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if !a.radioReady() {
			return ble.ErrRadioUnready
		}
		for _, p := range a.snapshotPeripherals() {
			peer := p.peer()
			if filter.TargetID != "" && !strings.EqualFold(peer.ID, filter.TargetID) {
				continue
			}
			if !filter.AllowDuplicates {
				if seen[peer.ID] {
					continue
				}
				seen[peer.ID] = true
			}
			found(peer)
		}
	}
}

func (a *Adapter) Connect(ctx context.Context, peerID string) (ble.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !a.radioReady() {
		return nil, ble.ErrRadioUnready
	}
	p := a.lookup(peerID)
	if p == nil {
		return nil, ble.ErrPeerNotFound
	}
	conn := &Conn{
		adapter: a,
		p:       p,
		done:    make(chan error, 1),
	}
	a.lock.Lock()
	a.conns = append(a.conns, conn)
	a.lock.Unlock()
	return conn, nil
}

func (a *Adapter) Close() error {
	a.SetRadio(false)
	return nil
}

func (a *Adapter) radioReady() bool {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.ready
}

func (a *Adapter) snapshotPeripherals() []*Peripheral {
	a.lock.Lock()
	defer a.lock.Unlock()
	out := make([]*Peripheral, len(a.peripherals))
	copy(out, a.peripherals)
	return out
}

func (a *Adapter) lookup(peerID string) *Peripheral {
	a.lock.Lock()
	defer a.lock.Unlock()
	for _, p := range a.peripherals {
		if strings.EqualFold(p.ID, peerID) {
			return p
		}
	}
	return nil
}

func (a *Adapter) untrack(conn *Conn) {
	a.lock.Lock()
	defer a.lock.Unlock()
	for i, candidate := range a.conns {
		if candidate == conn {
			a.conns = append(a.conns[:i], a.conns[i+1:]...)
			return
		}
	}
}

// Conn is a simulated link to a peripheral.
type Conn struct {
	adapter *Adapter
	p       *Peripheral
	done    chan error

	lock       sync.Mutex
	closed     bool
	ended      bool
	stopNotify chan struct{}
}

func (c *Conn) PeerID() string {
	return c.p.ID
}

func (c *Conn) Disconnected() <-chan error {
	return c.done
}

func (c *Conn) Close() error {
	c.lock.Lock()
	c.closed = true
	c.lock.Unlock()
	c.sever(ble.ErrCancelled)
	c.adapter.untrack(c)
	return nil
}

func (c *Conn) Characteristic(_ context.Context, serviceUUID, characteristicUUID string) (ble.Characteristic, error) {
	if !strings.EqualFold(serviceUUID, c.p.ServiceUUID) {
		return nil, ble.NewError("simulated: service not found", false, false)
	}
	if !strings.EqualFold(characteristicUUID, c.p.CharacteristicUUID) {
		return nil, ble.NewError("simulated: characteristic not found", false, false)
	}
	return &Characteristic{conn: c}, nil
}

// sever ends the link exactly once. A locally closed link reports
// ErrCancelled regardless of cause.
func (c *Conn) sever(cause error) {
	c.lock.Lock()
	if c.ended {
		c.lock.Unlock()
		return
	}
	c.ended = true
	if c.closed {
		cause = ble.ErrCancelled
	}
	stop := c.stopNotify
	c.stopNotify = nil
	c.lock.Unlock()

	if stop != nil {
		close(stop)
	}
	c.done <- cause
}

func (c *Conn) alive() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return !c.ended
}

// Characteristic is a handle on a simulated peripheral's measurement value.
type Characteristic struct {
	conn *Conn
}

func (c *Characteristic) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !c.conn.alive() {
		return nil, ble.ErrLinkLost
	}
	return c.conn.p.read()
}

func (c *Characteristic) Subscribe(notify func(value []byte)) (func(), error) {
	c.conn.lock.Lock()
	if c.conn.ended {
		c.conn.lock.Unlock()
		return nil, ble.ErrLinkLost
	}
	if c.conn.stopNotify != nil {
		close(c.conn.stopNotify)
	}
	stop := make(chan struct{})
	c.conn.stopNotify = stop
	c.conn.lock.Unlock()

	go c.conn.p.stream(stop, notify)

	// Only the party that removes stop from the field closes it, so a
	// severed link and a late cancel cannot both close the channel.
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.conn.lock.Lock()
			owned := c.conn.stopNotify == stop
			if owned {
				c.conn.stopNotify = nil
			}
			c.conn.lock.Unlock()
			if owned {
				close(stop)
			}
		})
	}
	return cancel, nil
}

func (c *Characteristic) MTU() (int, error) {
	return c.conn.p.MTU, nil
}
