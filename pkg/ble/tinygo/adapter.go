// Package tinygo backs the ble contract with tinygo.org/x/bluetooth, which
// rides BlueZ over D-Bus on Linux and CoreBluetooth on Darwin. The library
// has no context support, so blocking calls run in goroutines herded from
// the exported methods.
package tinygo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/nathikazad/lura-bletest/internal/log"
	"github.com/nathikazad/lura-bletest/pkg/ble"
)

// probeInterval spaces attempts to re-enable a dead adapter.
const probeInterval = 3 * time.Second

var ErrInvalidAdapterID = ble.NewError("the bluetooth adapter ID is invalid", false, false)

// Adapter wraps a tinygo bluetooth adapter. Disconnect events arrive through
// the library's single connect handler, so the adapter keeps a registry of
// live connections to dispatch them to.
type Adapter struct {
	id string

	lock     sync.Mutex
	device   *bluetooth.Adapter
	state    ble.RadioState
	watchers map[int]func(ble.RadioState)
	nextID   int
	conns    map[string]*Conn
	probing  bool
	closed   bool
}

// NewAdapter enables the platform adapter. id selects the BlueZ adapter on
// Linux ("hci0"); leave it empty elsewhere. A powered-off radio does not
// fail NewAdapter: the returned adapter reports unready and recovers on
// its own.
func NewAdapter(id string) (*Adapter, error) {
	device, err := newAdapter(id)
	if err != nil {
		return nil, fmt.Errorf("tinygo: failed to create adapter: %s", err)
	}
	a := &Adapter{
		id:       id,
		device:   device,
		watchers: make(map[int]func(ble.RadioState)),
		conns:    make(map[string]*Conn),
	}
	device.SetConnectHandler(func(d bluetooth.Device, connected bool) {
		if connected {
			return
		}
		a.dispatchDisconnect(d.Address.String())
	})
	if err := device.Enable(); err != nil {
		if !IsAdapterError(err) {
			return nil, fmt.Errorf("tinygo: failed to enable adapter: %s", err)
		}
		log.Warning("tinygo: radio unavailable, will keep probing: %s", err)
		a.state = ble.RadioUnready
		a.probing = true
		go a.probe()
		return a, nil
	}
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

// Scan streams advertisements until ctx is done. The library reports every
// advertisement, so deduplication for open discovery happens here.
func (a *Adapter) Scan(ctx context.Context, filter ble.ScanFilter, found func(ble.Peer)) error {
	device, err := a.currentDevice()
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	stopScan := func() {
		if err := device.StopScan(); err != nil {
			if strings.Contains(err.Error(), "no scan in progress") {
				return
			}
			log.Warning("tinygo: failed to stop scan: %s", err)
		}
	}

	// Scan blocks until StopScan, so it runs in a goroutine. Waiting for it
	// to finish before returning keeps a canceled scan from outliving us.
	errorCh := make(chan error, 1)
	scanFinished := make(chan struct{})
	seen := make(map[string]bool)
	go func() {
		defer close(scanFinished)
		err := device.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			if ctx.Err() != nil {
				stopScan()
				return
			}
			peer := scanResultToPeer(result)
			if filter.TargetID != "" && !strings.EqualFold(peer.ID, filter.TargetID) {
				return
			}
			if !filter.AllowDuplicates {
				if seen[peer.ID] {
					return
				}
				seen[peer.ID] = true
			}
			found(peer)
		})
		if err != nil {
			errorCh <- err
		}
	}()

	select {
	case err := <-errorCh:
		stopScan()
		<-scanFinished
		if IsAdapterError(err) {
			a.markUnready(err)
			return fmt.Errorf("%w: %s", ble.ErrRadioUnready, err)
		}
		return fmt.Errorf("tinygo: scan failed: %s", err)
	case <-ctx.Done():
		stopScan()
		<-scanFinished
		return ctx.Err()
	}
}

func (a *Adapter) Connect(ctx context.Context, peerID string) (ble.Conn, error) {
	device, err := a.currentDevice()
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	addr, err := parseAddress(peerID)
	if err != nil {
		return nil, err
	}

	params := bluetooth.ConnectionParams{}
	if deadline, ok := ctx.Deadline(); ok {
		params.ConnectionTimeout = bluetooth.NewDuration(time.Until(deadline))
	}

	log.Debug("tinygo: connecting to %s", peerID)
	clientCh := make(chan bluetooth.Device, 1)
	errorCh := make(chan error, 1)
	go func() {
		client, err := device.Connect(addr, params)
		if err != nil {
			errorCh <- err
			return
		}
		if ctx.Err() == nil {
			clientCh <- client
			return
		}
		if err := client.Disconnect(); err != nil {
			log.Warning("tinygo: failed to disconnect: %s", err)
		}
	}()

	select {
	case client := <-clientCh:
		return a.adoptConn(client), nil
	case err := <-errorCh:
		if IsAdapterError(err) {
			a.markUnready(err)
			return nil, fmt.Errorf("%w: %s", ble.ErrRadioUnready, err)
		}
		return nil, &ble.LinkError{
			Err:               fmt.Errorf("tinygo: failed to connect to %s: %s", peerID, err),
			PossibleTemporary: true,
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close detaches from the adapter. The library offers no disable call, so
// established connections and the BlueZ session are left as they are.
func (a *Adapter) Close() error {
	a.lock.Lock()
	a.closed = true
	a.lock.Unlock()
	return nil
}

func (a *Adapter) currentDevice() (*bluetooth.Adapter, error) {
	a.lock.Lock()
	defer a.lock.Unlock()
	if a.closed {
		return nil, ble.NewError("tinygo: adapter is closed", false, false)
	}
	if a.state != ble.RadioReady {
		return nil, ble.ErrRadioUnready
	}
	return a.device, nil
}

func (a *Adapter) adoptConn(client bluetooth.Device) *Conn {
	c := &Conn{
		adapter: a,
		client:  client,
		id:      client.Address.String(),
		done:    make(chan error, 1),
	}
	a.lock.Lock()
	a.conns[c.id] = c
	a.lock.Unlock()
	return c
}

func (a *Adapter) dispatchDisconnect(id string) {
	a.lock.Lock()
	conn := a.conns[id]
	delete(a.conns, id)
	a.lock.Unlock()
	if conn == nil {
		return
	}
	conn.deliver(ble.ErrLinkLost)
}

func (a *Adapter) forgetConn(id string) {
	a.lock.Lock()
	delete(a.conns, id)
	a.lock.Unlock()
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

func (a *Adapter) markUnready(err error) {
	a.lock.Lock()
	startProber := !a.probing && !a.closed
	if startProber {
		a.probing = true
	}
	a.lock.Unlock()

	log.Warning("tinygo: adapter failed: %s", err)
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
		device := a.device
		a.lock.Unlock()

		if err := device.Enable(); err != nil {
			log.Debug("tinygo: radio still unavailable: %s", err)
			continue
		}

		a.lock.Lock()
		a.probing = false
		closed := a.closed
		a.lock.Unlock()
		if closed {
			return
		}
		log.Info("tinygo: radio is back")
		a.setState(ble.RadioReady)
		return
	}
}

func scanResultToPeer(result bluetooth.ScanResult) ble.Peer {
	return ble.Peer{
		ID:          result.Address.String(),
		LocalName:   result.LocalName(),
		RSSI:        result.RSSI,
		Connectable: true,
	}
}
