package simulated

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nathikazad/lura-bletest/pkg/ble"
)

const waitTimeout = 5 * time.Second

func testAdapter() *Adapter {
	a := New()
	a.AdvertiseInterval = 2 * time.Millisecond
	return a
}

func testPeripheral() *Peripheral {
	return &Peripheral{
		ID:          "aa:bb:cc:dd:ee:01",
		NotifyEvery: 2 * time.Millisecond,
	}
}

func waitFor(t *testing.T, desc string, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(waitTimeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %s", desc)
}

type sightings struct {
	lock  sync.Mutex
	peers []ble.Peer
}

func (s *sightings) add(peer ble.Peer) {
	s.lock.Lock()
	s.peers = append(s.peers, peer)
	s.lock.Unlock()
}

func (s *sightings) count(id string) int {
	s.lock.Lock()
	defer s.lock.Unlock()
	n := 0
	for _, peer := range s.peers {
		if peer.ID == id {
			n++
		}
	}
	return n
}

func scanInBackground(t *testing.T, a *Adapter, filter ble.ScanFilter, found *sightings) (cancel func(), done chan error) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	done = make(chan error, 1)
	go func() {
		done <- a.Scan(ctx, filter, found.add)
	}()
	t.Cleanup(stop)
	return stop, done
}

func TestScanDeduplicatesPeers(t *testing.T) {
	a := testAdapter()
	a.AddPeripheral(testPeripheral())
	a.AddPeripheral(&Peripheral{ID: "aa:bb:cc:dd:ee:02"})

	found := &sightings{}
	cancel, done := scanInBackground(t, a, ble.ScanFilter{}, found)
	waitFor(t, "both peripherals to surface", func() bool {
		return found.count("aa:bb:cc:dd:ee:01") > 0 && found.count("aa:bb:cc:dd:ee:02") > 0
	})
	time.Sleep(20 * time.Millisecond)
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected scan to end with context.Canceled but got %v", err)
	}

	if n := found.count("aa:bb:cc:dd:ee:01"); n != 1 {
		t.Errorf("Expected a single sighting of the first peripheral but got %d", n)
	}
	if n := found.count("aa:bb:cc:dd:ee:02"); n != 1 {
		t.Errorf("Expected a single sighting of the second peripheral but got %d", n)
	}
}

func TestTargetedScanRepeatsSightings(t *testing.T) {
	a := testAdapter()
	a.AddPeripheral(testPeripheral())
	a.AddPeripheral(&Peripheral{ID: "aa:bb:cc:dd:ee:02"})

	found := &sightings{}
	filter := ble.ScanFilter{TargetID: "AA:BB:CC:DD:EE:01", AllowDuplicates: true}
	cancel, _ := scanInBackground(t, a, filter, found)
	waitFor(t, "repeated sightings of the target", func() bool {
		return found.count("aa:bb:cc:dd:ee:01") >= 3
	})
	cancel()

	if n := found.count("aa:bb:cc:dd:ee:02"); n != 0 {
		t.Errorf("Expected the filter to drop the other peripheral but saw it %d times", n)
	}
}

func TestScanRequiresRadio(t *testing.T) {
	a := testAdapter()
	a.SetRadio(false)
	err := a.Scan(context.Background(), ble.ScanFilter{}, func(ble.Peer) {})
	if !errors.Is(err, ble.ErrRadioUnready) {
		t.Errorf("Expected ErrRadioUnready but got %v", err)
	}
}

func TestRadioLossEndsScan(t *testing.T) {
	a := testAdapter()
	a.AddPeripheral(testPeripheral())

	found := &sightings{}
	_, done := scanInBackground(t, a, ble.ScanFilter{}, found)
	waitFor(t, "the scan to start reporting", func() bool {
		return found.count("aa:bb:cc:dd:ee:01") > 0
	})
	a.SetRadio(false)
	select {
	case err := <-done:
		if !errors.Is(err, ble.ErrRadioUnready) {
			t.Errorf("Expected ErrRadioUnready but got %v", err)
		}
	case <-time.After(waitTimeout):
		t.Fatalf("Timed out waiting for the scan to end")
	}
}

func TestWatchRadioReportsTransitions(t *testing.T) {
	a := testAdapter()
	var lock sync.Mutex
	var states []ble.RadioState
	stop := a.WatchRadio(func(state ble.RadioState) {
		lock.Lock()
		states = append(states, state)
		lock.Unlock()
	})

	a.SetRadio(false)
	a.SetRadio(true)
	stop()
	a.SetRadio(false)

	lock.Lock()
	defer lock.Unlock()
	want := []ble.RadioState{ble.RadioReady, ble.RadioUnready, ble.RadioReady}
	if len(states) != len(want) {
		t.Fatalf("Expected %d radio updates but got %v", len(want), states)
	}
	for i, state := range want {
		if states[i] != state {
			t.Errorf("Expected update %d to be %s but got %s", i, state, states[i])
		}
	}
}

func TestConnectChecksPeerAndRadio(t *testing.T) {
	a := testAdapter()
	a.AddPeripheral(testPeripheral())

	if _, err := a.Connect(context.Background(), "aa:bb:cc:dd:ee:99"); !errors.Is(err, ble.ErrPeerNotFound) {
		t.Errorf("Expected ErrPeerNotFound but got %v", err)
	}

	a.SetRadio(false)
	if _, err := a.Connect(context.Background(), "aa:bb:cc:dd:ee:01"); !errors.Is(err, ble.ErrRadioUnready) {
		t.Errorf("Expected ErrRadioUnready but got %v", err)
	}
}

func TestStreamCountsUpward(t *testing.T) {
	a := testAdapter()
	a.AddPeripheral(testPeripheral())

	conn, err := a.Connect(context.Background(), "aa:bb:cc:dd:ee:01")
	if err != nil {
		t.Fatalf("Couldn't connect: %s", err)
	}
	defer conn.Close()

	char, err := conn.Characteristic(context.Background(), DefaultServiceUUID, DefaultCharacteristicUUID)
	if err != nil {
		t.Fatalf("Couldn't fetch characteristic: %s", err)
	}
	if mtu, err := char.MTU(); err != nil || mtu != 185 {
		t.Errorf("Expected MTU 185 but got %d (%v)", mtu, err)
	}

	value, err := char.Read(context.Background())
	if err != nil || len(value) != 1 || value[0] != 0 {
		t.Errorf("Expected initial read of 0 but got %v (%v)", value, err)
	}

	var lock sync.Mutex
	var values []byte
	cancel, err := char.Subscribe(func(value []byte) {
		lock.Lock()
		values = append(values, value...)
		lock.Unlock()
	})
	if err != nil {
		t.Fatalf("Couldn't subscribe: %s", err)
	}
	waitFor(t, "three notifications", func() bool {
		lock.Lock()
		defer lock.Unlock()
		return len(values) >= 3
	})
	cancel()

	lock.Lock()
	head := append([]byte(nil), values[:3]...)
	lock.Unlock()
	for i, v := range head {
		if v != byte(i+1) {
			t.Errorf("Expected notification %d to carry %d but got %d", i, i+1, v)
		}
	}
}

func TestTextModeStreamsDecimalLines(t *testing.T) {
	a := testAdapter()
	a.AddPeripheral(&Peripheral{ID: "aa:bb:cc:dd:ee:01", NotifyEvery: 2 * time.Millisecond, Text: true})

	conn, err := a.Connect(context.Background(), "aa:bb:cc:dd:ee:01")
	if err != nil {
		t.Fatalf("Couldn't connect: %s", err)
	}
	defer conn.Close()
	char, err := conn.Characteristic(context.Background(), DefaultServiceUUID, DefaultCharacteristicUUID)
	if err != nil {
		t.Fatalf("Couldn't fetch characteristic: %s", err)
	}

	var lock sync.Mutex
	var first string
	cancel, err := char.Subscribe(func(value []byte) {
		lock.Lock()
		if first == "" {
			first = string(value)
		}
		lock.Unlock()
	})
	if err != nil {
		t.Fatalf("Couldn't subscribe: %s", err)
	}
	defer cancel()
	waitFor(t, "the first notification", func() bool {
		lock.Lock()
		defer lock.Unlock()
		return first != ""
	})

	lock.Lock()
	defer lock.Unlock()
	if first != "1\r\n" {
		t.Errorf("Expected the first line to be %q but got %q", "1\r\n", first)
	}
}

func TestAuthorizationScriptClearsAfterReads(t *testing.T) {
	a := testAdapter()
	a.AddPeripheral(&Peripheral{ID: "aa:bb:cc:dd:ee:01", AuthPendingReads: 2})

	conn, err := a.Connect(context.Background(), "aa:bb:cc:dd:ee:01")
	if err != nil {
		t.Fatalf("Couldn't connect: %s", err)
	}
	defer conn.Close()
	char, err := conn.Characteristic(context.Background(), DefaultServiceUUID, DefaultCharacteristicUUID)
	if err != nil {
		t.Fatalf("Couldn't fetch characteristic: %s", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := char.Read(context.Background()); !errors.Is(err, ble.ErrAuthorizationPending) {
			t.Errorf("Expected read %d to report ErrAuthorizationPending but got %v", i, err)
		}
	}
	if _, err := char.Read(context.Background()); err != nil {
		t.Errorf("Expected the third read to succeed but got %v", err)
	}
}

func TestPairingScriptClearsAfterRetry(t *testing.T) {
	a := testAdapter()
	a.AddPeripheral(&Peripheral{ID: "aa:bb:cc:dd:ee:01", RejectPairings: 1})

	conn, err := a.Connect(context.Background(), "aa:bb:cc:dd:ee:01")
	if err != nil {
		t.Fatalf("Couldn't connect: %s", err)
	}
	defer conn.Close()
	char, err := conn.Characteristic(context.Background(), DefaultServiceUUID, DefaultCharacteristicUUID)
	if err != nil {
		t.Fatalf("Couldn't fetch characteristic: %s", err)
	}

	if _, err := char.Read(context.Background()); !errors.Is(err, ble.ErrPairingMismatch) {
		t.Errorf("Expected the first read to report ErrPairingMismatch but got %v", err)
	}
	if _, err := char.Read(context.Background()); err != nil {
		t.Errorf("Expected the retry to succeed but got %v", err)
	}
}

func TestDropLinkDeliversLinkLost(t *testing.T) {
	a := testAdapter()
	a.AddPeripheral(testPeripheral())

	conn, err := a.Connect(context.Background(), "aa:bb:cc:dd:ee:01")
	if err != nil {
		t.Fatalf("Couldn't connect: %s", err)
	}
	a.DropLink("aa:bb:cc:dd:ee:01")

	select {
	case cause := <-conn.Disconnected():
		if !errors.Is(cause, ble.ErrLinkLost) {
			t.Errorf("Expected ErrLinkLost but got %v", cause)
		}
	case <-time.After(waitTimeout):
		t.Fatalf("Timed out waiting for the disconnect")
	}

	char, err := conn.Characteristic(context.Background(), DefaultServiceUUID, DefaultCharacteristicUUID)
	if err != nil {
		t.Fatalf("Couldn't fetch characteristic: %s", err)
	}
	if _, err := char.Read(context.Background()); !errors.Is(err, ble.ErrLinkLost) {
		t.Errorf("Expected reads on a severed link to fail but got %v", err)
	}
}

func TestCloseDeliversCancelled(t *testing.T) {
	a := testAdapter()
	a.AddPeripheral(testPeripheral())

	conn, err := a.Connect(context.Background(), "aa:bb:cc:dd:ee:01")
	if err != nil {
		t.Fatalf("Couldn't connect: %s", err)
	}
	if err := conn.Close(); err != nil {
		t.Errorf("Couldn't close connection: %s", err)
	}

	select {
	case cause := <-conn.Disconnected():
		if !errors.Is(cause, ble.ErrCancelled) {
			t.Errorf("Expected ErrCancelled but got %v", cause)
		}
	case <-time.After(waitTimeout):
		t.Fatalf("Timed out waiting for the disconnect")
	}
}

func TestRadioOffSeversLinks(t *testing.T) {
	a := testAdapter()
	a.AddPeripheral(testPeripheral())

	conn, err := a.Connect(context.Background(), "aa:bb:cc:dd:ee:01")
	if err != nil {
		t.Fatalf("Couldn't connect: %s", err)
	}
	a.SetRadio(false)

	select {
	case cause := <-conn.Disconnected():
		if !errors.Is(cause, ble.ErrLinkLost) {
			t.Errorf("Expected ErrLinkLost but got %v", cause)
		}
	case <-time.After(waitTimeout):
		t.Fatalf("Timed out waiting for the disconnect")
	}
}

func TestCharacteristicLookupValidatesUUIDs(t *testing.T) {
	a := testAdapter()
	a.AddPeripheral(testPeripheral())

	conn, err := a.Connect(context.Background(), "aa:bb:cc:dd:ee:01")
	if err != nil {
		t.Fatalf("Couldn't connect: %s", err)
	}
	defer conn.Close()

	if _, err := conn.Characteristic(context.Background(), "0000dead-0000-1000-8000-00805f9b34fb", DefaultCharacteristicUUID); err == nil {
		t.Errorf("Expected an unknown service to be rejected")
	}
	if _, err := conn.Characteristic(context.Background(), DefaultServiceUUID, "0000dead-0000-1000-8000-00805f9b34fb"); err == nil {
		t.Errorf("Expected an unknown characteristic to be rejected")
	}
}

func TestDefaultsAssignRandomID(t *testing.T) {
	a := testAdapter()
	p := &Peripheral{}
	a.AddPeripheral(p)
	if p.ID == "" {
		t.Errorf("Expected AddPeripheral to assign an ID")
	}
	if p.LocalName != "lura" || p.MTU != 185 {
		t.Errorf("Expected defaults to be filled but got %q / %d", p.LocalName, p.MTU)
	}
}
