// Package goble backs the ble contract with the go-ble stack, which talks to
// the kernel HCI socket directly on Linux and to CoreBluetooth on Darwin.
package goble

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	goble "github.com/go-ble/ble"

	"github.com/nathikazad/lura-bletest/internal/log"
	"github.com/nathikazad/lura-bletest/pkg/ble"
)

// probeInterval spaces attempts to reopen a dead HCI device.
const probeInterval = 3 * time.Second

var ErrInvalidAdapterID = ble.NewError("the bluetooth adapter ID is invalid", false, false)

// Adapter wraps a go-ble Device. HCI has no availability events, so the
// radio state is inferred: failures that look like a dead adapter flip the
// state to unready, and a prober re-creates the device until the radio
// comes back.
type Adapter struct {
	id string

	lock     sync.Mutex
	device   goble.Device
	state    ble.RadioState
	watchers map[int]func(ble.RadioState)
	nextID   int
	probing  bool
	closed   bool
}

// NewAdapter opens the platform Bluetooth device. id selects the interface
// on Linux ("hci0" or "0"); leave it empty elsewhere. A powered-off radio
// does not fail NewAdapter: the returned adapter reports unready and
// recovers on its own.
func NewAdapter(id string) (*Adapter, error) {
	a := &Adapter{
		id:       id,
		watchers: make(map[int]func(ble.RadioState)),
	}
	device, err := newDevice(id)
	if err != nil {
		if !IsAdapterError(err) {
			return nil, fmt.Errorf("goble: failed to open device: %s", err)
		}
		log.Warning("goble: radio unavailable, will keep probing: %s", err)
		a.state = ble.RadioUnready
		a.probing = true
		go a.probe()
		return a, nil
	}
	a.device = device
	a.state = ble.RadioReady
	return a, nil
}

func (a *Adapter) WatchRadio(onChange func(ble.RadioState)) func() {
	a.lock.Lock()
	id := a.nextID
	a.nextID++
	a.watchers[id] = onChange
	state := a.state
	a.lock.Unlock()
	onChange(state)
	return func() {
		a.lock.Lock()
		delete(a.watchers, id)
		a.lock.Unlock()
	}
}

// Scan streams advertisements until ctx is done. go-ble filters duplicates
// itself when AllowDuplicates is unset.
func (a *Adapter) Scan(ctx context.Context, filter ble.ScanFilter, found func(ble.Peer)) error {
	device, err := a.currentDevice()
	if err != nil {
		return err
	}
	err = device.Scan(ctx, filter.AllowDuplicates, func(adv goble.Advertisement) {
		peer := advertisementToPeer(adv)
		if filter.TargetID != "" && !strings.EqualFold(peer.ID, filter.TargetID) {
			return
		}
		found(peer)
	})
	if ctx.Err() != nil {
		// Darwin reports an error on every canceled scan rather than
		// returning ctx.Err().
		return ctx.Err()
	}
	if err != nil && IsAdapterError(err) {
		a.markUnready(err)
		return fmt.Errorf("%w: %s", ble.ErrRadioUnready, err)
	}
	return err
}

func (a *Adapter) Connect(ctx context.Context, peerID string) (ble.Conn, error) {
	device, err := a.currentDevice()
	if err != nil {
		return nil, err
	}
	log.Debug("goble: dialing %s", peerID)
	client, err := device.Dial(ctx, goble.NewAddr(peerID))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if IsAdapterError(err) {
			a.markUnready(err)
			return nil, fmt.Errorf("%w: %s", ble.ErrRadioUnready, err)
		}
		return nil, &ble.LinkError{
			Err:               fmt.Errorf("goble: failed to dial %s: %s", peerID, err),
			PossibleTemporary: true,
		}
	}
	return newConn(client), nil
}

// Close stops the device. Links opened through it do not outlive the
// HCI socket, so close any Conns first.
func (a *Adapter) Close() error {
	a.lock.Lock()
	device := a.device
	a.device = nil
	a.closed = true
	a.lock.Unlock()
	if device == nil {
		return nil
	}
	if err := device.Stop(); err != nil {
		return fmt.Errorf("goble: failed to stop device: %s", err)
	}
	return nil
}

func (a *Adapter) currentDevice() (goble.Device, error) {
	a.lock.Lock()
	defer a.lock.Unlock()
	if a.closed {
		return nil, ble.NewError("goble: adapter is closed", false, false)
	}
	if a.device == nil || a.state != ble.RadioReady {
		return nil, ble.ErrRadioUnready
	}
	return a.device, nil
}

func (a *Adapter) setState(state ble.RadioState) {
	a.lock.Lock()
	if a.state == state {
		a.lock.Unlock()
		return
	}
	a.state = state
	watchers := make([]func(ble.RadioState), 0, len(a.watchers))
	for _, w := range a.watchers {
		watchers = append(watchers, w)
	}
	a.lock.Unlock()
	for _, w := range watchers {
		w(state)
	}
}

// markUnready tears down the device after an adapter-level failure and arms
// the prober.
func (a *Adapter) markUnready(err error) {
	a.lock.Lock()
	device := a.device
	a.device = nil
	startProber := !a.probing && !a.closed
	if startProber {
		a.probing = true
	}
	a.lock.Unlock()

	log.Warning("goble: adapter failed: %s", err)
	if device != nil {
		_ = device.Stop()
	}
	a.setState(ble.RadioUnready)
	if startProber {
		go a.probe()
	}
}

func (a *Adapter) probe() {
	for {
		time.Sleep(probeInterval)
		a.lock.Lock()
		if a.closed {
			a.probing = false
			a.lock.Unlock()
			return
		}
		a.lock.Unlock()

		device, err := newDevice(a.id)
		if err != nil {
			log.Debug("goble: radio still unavailable: %s", err)
			continue
		}

		a.lock.Lock()
		if a.closed {
			a.lock.Unlock()
			_ = device.Stop()
			return
		}
		a.device = device
		a.probing = false
		a.lock.Unlock()
		log.Info("goble: radio is back")
		a.setState(ble.RadioReady)
		return
	}
}

func advertisementToPeer(a goble.Advertisement) ble.Peer {
	return ble.Peer{
		ID:          a.Addr().String(),
		LocalName:   a.LocalName(),
		RSSI:        int16(a.RSSI()),
		Connectable: a.Connectable(),
	}
}
