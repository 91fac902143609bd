package tinygo

import (
	"context"
	"fmt"
	"sync"

	"tinygo.org/x/bluetooth"

	"github.com/nathikazad/lura-bletest/internal/log"
	"github.com/nathikazad/lura-bletest/pkg/ble"
)

// Conn is an established tinygo bluetooth link.
type Conn struct {
	adapter *Adapter
	client  bluetooth.Device
	id      string
	done    chan error

	lock   sync.Mutex
	closed bool
	ended  bool
}

func (c *Conn) PeerID() string {
	return c.id
}

func (c *Conn) Disconnected() <-chan error {
	return c.done
}

func (c *Conn) Close() error {
	c.lock.Lock()
	c.closed = true
	c.lock.Unlock()

	err := c.client.Disconnect()
	c.deliver(ble.ErrCancelled)
	c.adapter.forgetConn(c.id)
	return err
}

// deliver reports the end of the link exactly once. A link closed locally
// always reports ErrCancelled, whichever event lands first.
func (c *Conn) deliver(cause error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.ended {
		return
	}
	c.ended = true
	if c.closed {
		cause = ble.ErrCancelled
	}
	c.done <- cause
}

func (c *Conn) Characteristic(_ context.Context, serviceUUID, characteristicUUID string) (ble.Characteristic, error) {
	svcUUID, err := bluetooth.ParseUUID(serviceUUID)
	if err != nil {
		return nil, fmt.Errorf("tinygo: bad service UUID: %s", err)
	}
	charUUID, err := bluetooth.ParseUUID(characteristicUUID)
	if err != nil {
		return nil, fmt.Errorf("tinygo: bad characteristic UUID: %s", err)
	}

	services, err := c.client.DiscoverServices([]bluetooth.UUID{svcUUID})
	if err != nil {
		return nil, classify(fmt.Errorf("tinygo: failed to enumerate services: %s", err))
	}
	if len(services) != 1 {
		return nil, ble.NewError("tinygo: service not found", false, false)
	}

	characteristics, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{charUUID})
	if err != nil {
		return nil, classify(fmt.Errorf("tinygo: failed to discover characteristics: %s", err))
	}
	if len(characteristics) != 1 {
		return nil, ble.NewError("tinygo: characteristic not found", false, false)
	}
	return &Characteristic{char: characteristics[0]}, nil
}

// Characteristic is a handle on a discovered GATT characteristic.
type Characteristic struct {
	char bluetooth.DeviceCharacteristic
}

func (c *Characteristic) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buf := make([]byte, 512)
	n, err := c.char.Read(buf)
	if err != nil {
		return nil, classify(err)
	}
	return buf[:n], nil
}

func (c *Characteristic) Subscribe(notify func(value []byte)) (func(), error) {
	if err := c.char.EnableNotifications(notify); err != nil {
		return nil, classify(fmt.Errorf("tinygo: failed to subscribe: %s", err))
	}
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			if err := c.char.EnableNotifications(nil); err != nil {
				log.Debug("tinygo: disabling notifications: %s", err)
			}
		})
	}
	return cancel, nil
}

func (c *Characteristic) MTU() (int, error) {
	mtu, err := c.char.GetMTU()
	return int(mtu), err
}
