package goble

import (
	"context"
	"errors"
	"fmt"
	"sync"

	goble "github.com/go-ble/ble"

	"github.com/nathikazad/lura-bletest/internal/log"
	"github.com/nathikazad/lura-bletest/pkg/ble"
)

// requestedMTU is a 512-byte payload plus the 3-byte ATT header.
const requestedMTU = 515

// Conn is an established go-ble link.
type Conn struct {
	client goble.Client
	done   chan error

	lock   sync.Mutex
	closed bool
	ended  bool
}

func newConn(client goble.Client) *Conn {
	c := &Conn{
		client: client,
		done:   make(chan error, 1),
	}
	go func() {
		<-client.Disconnected()
		c.deliver(ble.ErrLinkLost)
	}()
	return c
}

func (c *Conn) PeerID() string {
	return c.client.Addr().String()
}

func (c *Conn) Disconnected() <-chan error {
	return c.done
}

func (c *Conn) Close() error {
	c.lock.Lock()
	c.closed = true
	c.lock.Unlock()

	err1 := c.client.ClearSubscriptions()
	err2 := c.client.CancelConnection()
	c.deliver(ble.ErrCancelled)
	return errors.Join(err1, err2)
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

// Characteristic discovers the service and returns a handle on the requested
// characteristic. Descriptors are fetched up front so the CCCD is known by
// the time Subscribe needs it.
func (c *Conn) Characteristic(_ context.Context, serviceUUID, characteristicUUID string) (ble.Characteristic, error) {
	svcUUID, err := goble.Parse(serviceUUID)
	if err != nil {
		return nil, fmt.Errorf("goble: bad service UUID: %s", err)
	}
	charUUID, err := goble.Parse(characteristicUUID)
	if err != nil {
		return nil, fmt.Errorf("goble: bad characteristic UUID: %s", err)
	}

	services, err := c.client.DiscoverServices([]goble.UUID{svcUUID})
	if err != nil {
		return nil, classify(fmt.Errorf("goble: failed to enumerate services: %s", err))
	}
	if len(services) == 0 {
		return nil, ble.NewError("goble: service not found", false, false)
	}

	characteristics, err := c.client.DiscoverCharacteristics([]goble.UUID{charUUID}, services[0])
	if err != nil {
		return nil, classify(fmt.Errorf("goble: failed to discover characteristics: %s", err))
	}
	var char *goble.Characteristic
	for _, candidate := range characteristics {
		if candidate.UUID.Equal(charUUID) {
			char = candidate
			break
		}
	}
	if char == nil {
		return nil, ble.NewError("goble: characteristic not found", false, false)
	}
	if _, err := c.client.DiscoverDescriptors(nil, char); err != nil {
		return nil, classify(fmt.Errorf("goble: couldn't fetch descriptors: %s", err))
	}
	return &Characteristic{conn: c, char: char}, nil
}

// Characteristic is a handle on a discovered GATT characteristic.
type Characteristic struct {
	conn *Conn
	char *goble.Characteristic
}

func (c *Characteristic) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	value, err := c.conn.client.ReadCharacteristic(c.char)
	if err != nil {
		return nil, classify(err)
	}
	return value, nil
}

func (c *Characteristic) Subscribe(notify func(value []byte)) (func(), error) {
	if err := c.conn.client.Subscribe(c.char, false, notify); err != nil {
		return nil, classify(fmt.Errorf("goble: failed to subscribe: %s", err))
	}
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			if err := c.conn.client.Unsubscribe(c.char, false); err != nil {
				log.Debug("goble: unsubscribe: %s", err)
			}
		})
	}
	return cancel, nil
}

func (c *Characteristic) MTU() (int, error) {
	return c.conn.client.ExchangeMTU(requestedMTU)
}
