// Package monitor maintains a session with a single intermittently available
// BLE peripheral.
//
// A Monitor starts out discovering: it scans for nearby peers and collects
// candidates. Once a peer is selected the monitor owns the relationship: it
// connects, verifies pairing, subscribes to the peer's measurement
// characteristic, and forwards decoded readings. When the peer drops the
// link, the monitor watches for it to advertise again and reconnects on its
// own. Only Forget or Stop end the relationship.
package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nathikazad/lura-bletest/internal/log"
	"github.com/nathikazad/lura-bletest/pkg/ble"
	"github.com/nathikazad/lura-bletest/pkg/readings"
	"github.com/nathikazad/lura-bletest/pkg/relay"
)

const (
	// DefaultPairVerifyRetries bounds the verification reads issued while the
	// peer reports that authorization is still pending.
	DefaultPairVerifyRetries = 10
	// DefaultPairVerifyInterval spaces those verification reads.
	DefaultPairVerifyInterval = 500 * time.Millisecond
	// DefaultSettleDelay is how long the monitor lets the platform settle
	// after a pairing rejection before its one automatic follow-up attempt.
	DefaultSettleDelay = time.Second

	scanRetryInterval = time.Second
	updateBacklog     = 16
)

// Config carries the peripheral contract and orchestration tuning.
type Config struct {
	// ServiceUUID and CharacteristicUUID locate the measurement
	// characteristic on the peripheral. Both are required.
	ServiceUUID        string
	CharacteristicUUID string

	// Decode selects how characteristic values become tokens.
	Decode relay.Mode

	// PairVerifyRetries is the number of verification reads repeated after
	// the first reports authorization-pending. Zero selects
	// DefaultPairVerifyRetries; negative disables retries.
	PairVerifyRetries int
	// PairVerifyInterval spaces verification reads. Non-positive selects
	// DefaultPairVerifyInterval.
	PairVerifyInterval time.Duration
	// SettleDelay spaces the automatic reconnect after a pairing rejection.
	// Non-positive selects DefaultSettleDelay.
	SettleDelay time.Duration
}

// Monitor runs the session. Its methods are safe for concurrent use.
type Monitor struct {
	adapter   ble.Adapter
	config    Config
	buffer    *readings.Log
	forwarder *relay.Forwarder

	updates chan Update

	lock       sync.Mutex
	running    bool
	ctx        context.Context
	cancel     context.CancelFunc
	stopRadio  func()
	radioState ble.RadioState

	state      State
	peers      []ble.Peer
	peerIndex  map[string]int
	remembered ble.Peer

	// generation invalidates scan callbacks and connection attempts that
	// outlive the session configuration that spawned them.
	generation uint64

	conn          ble.Conn
	unsubscribe   func()
	mtu           int
	connecting    bool
	connectCancel context.CancelFunc
	scanCancel    context.CancelFunc
	lastErr       error

	wg sync.WaitGroup
}

// New creates a Monitor. A nil buffer lets the monitor create its own; a nil
// forwarder disables forwarding, which is useful for survey tools.
func New(adapter ble.Adapter, config Config, buffer *readings.Log, forwarder *relay.Forwarder) (*Monitor, error) {
	if adapter == nil {
		return nil, errors.New("monitor: an adapter is required")
	}
	if config.ServiceUUID == "" || config.CharacteristicUUID == "" {
		return nil, errors.New("monitor: service and characteristic UUIDs are required")
	}
	if config.PairVerifyRetries == 0 {
		config.PairVerifyRetries = DefaultPairVerifyRetries
	} else if config.PairVerifyRetries < 0 {
		config.PairVerifyRetries = 0
	}
	if config.PairVerifyInterval <= 0 {
		config.PairVerifyInterval = DefaultPairVerifyInterval
	}
	if config.SettleDelay <= 0 {
		config.SettleDelay = DefaultSettleDelay
	}
	if buffer == nil {
		buffer = readings.New(0)
	}
	return &Monitor{
		adapter:   adapter,
		config:    config,
		buffer:    buffer,
		forwarder: forwarder,
		updates:   make(chan Update, updateBacklog),
		peerIndex: make(map[string]int),
	}, nil
}

// Start brings the session up. The monitor begins discovering, or
// reconnecting if a peer is still tracked from an earlier run. The session
// ends when ctx is canceled or Stop is called; a stopped monitor can be
// started again.
func (m *Monitor) Start(ctx context.Context) error {
	m.lock.Lock()
	if m.running {
		m.lock.Unlock()
		return ErrAlreadyStarted
	}
	m.running = true
	m.generation++
	m.ctx, m.cancel = context.WithCancel(ctx)
	m.radioState = ble.RadioUnknown
	m.peers = nil
	m.peerIndex = make(map[string]int)
	m.buffer.Clear()
	m.lastErr = nil
	if m.remembered.ID == "" {
		m.state = StateDiscovering
	} else {
		m.state = StateReconnecting
	}
	state := m.state
	sessionCtx := m.ctx
	m.lock.Unlock()

	log.Info("monitor: starting in state %s", state)

	// The watcher reports the current radio state synchronously, which kicks
	// off the first scan if the radio is already usable.
	stop := m.adapter.WatchRadio(m.handleRadio)

	m.lock.Lock()
	if !m.running {
		m.lock.Unlock()
		stop()
		return nil
	}
	m.stopRadio = stop
	m.lock.Unlock()

	go func() {
		<-sessionCtx.Done()
		m.Stop()
	}()
	return nil
}

// Stop ends the session, closing any link. Pending updates stay readable.
func (m *Monitor) Stop() {
	m.lock.Lock()
	if !m.running {
		m.lock.Unlock()
		return
	}
	log.Info("monitor: stopping")
	m.running = false
	m.generation++
	conn, unsubscribe := m.releaseLinkLocked()
	stopRadio := m.stopRadio
	m.stopRadio = nil
	cancel := m.cancel
	m.lock.Unlock()

	if stopRadio != nil {
		stopRadio()
	}
	if cancel != nil {
		cancel()
	}
	closeLink(conn, unsubscribe)
	m.wg.Wait()
}

// SelectPeer begins tracking a peer reported by the open scan. The monitor
// connects immediately, since the peer was advertising moments ago.
func (m *Monitor) SelectPeer(id string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if !m.running {
		return ErrNotStarted
	}
	if m.remembered.ID != "" {
		return ErrAlreadyTracking
	}
	i, ok := m.peerIndex[id]
	if !ok {
		return ErrUnknownPeer
	}
	peer := m.peers[i]
	if !peer.Connectable {
		return ble.ErrNotConnectable
	}
	m.remembered = peer
	m.generation++
	m.lastErr = nil
	log.Info("monitor: tracking %s (%s)", peer.ID, peerDisplayName(peer))
	m.setStateLocked(StateReconnecting, nil)
	m.beginAttemptLocked(peer)
	return nil
}

// Disconnect drops the link and its buffered readings but keeps tracking the
// peer. The monitor returns to reconnecting and the session resumes when the
// peer advertises again.
func (m *Monitor) Disconnect() error {
	m.lock.Lock()
	if !m.running {
		m.lock.Unlock()
		return ErrNotStarted
	}
	if m.remembered.ID == "" {
		m.lock.Unlock()
		return ErrNotTracking
	}
	m.generation++
	conn, unsubscribe := m.releaseLinkLocked()
	m.buffer.Clear()
	m.setStateLocked(StateReconnecting, nil)
	m.lock.Unlock()

	closeLink(conn, unsubscribe)

	m.lock.Lock()
	m.startScanLocked()
	m.lock.Unlock()
	return nil
}

// Forget clears the tracked peer and its buffered readings and returns to
// open discovery. Forgetting with no tracked peer just restarts discovery.
func (m *Monitor) Forget() error {
	m.lock.Lock()
	if !m.running {
		m.lock.Unlock()
		return ErrNotStarted
	}
	peerID := m.remembered.ID
	m.remembered = ble.Peer{}
	m.generation++
	conn, unsubscribe := m.releaseLinkLocked()
	m.peers = nil
	m.peerIndex = make(map[string]int)
	m.buffer.Clear()
	m.lastErr = nil
	m.setStateLocked(StateDiscovering, nil)
	m.lock.Unlock()

	closeLink(conn, unsubscribe)
	if peerID != "" {
		log.Info("monitor: forgot %s", peerID)
	}

	m.lock.Lock()
	m.startScanLocked()
	m.lock.Unlock()
	return nil
}

// Snapshot returns a point-in-time copy of the session state.
func (m *Monitor) Snapshot() Snapshot {
	m.lock.Lock()
	defer m.lock.Unlock()
	peers := make([]ble.Peer, len(m.peers))
	copy(peers, m.peers)
	return Snapshot{
		Running:   m.running,
		State:     m.state,
		Radio:     m.radioState,
		Peers:     peers,
		PeerID:    m.remembered.ID,
		PeerName:  m.remembered.LocalName,
		Connected: m.conn != nil,
		MTU:       m.mtu,
		Err:       m.lastErr,
	}
}

// Updates returns the channel on which the monitor publishes session changes.
// Slow consumers lose updates rather than stalling the session. The channel
// is never closed.
func (m *Monitor) Updates() <-chan Update {
	return m.updates
}

// Readings returns the buffer of decoded readings.
func (m *Monitor) Readings() *readings.Log {
	return m.buffer
}

// Forwarder returns the forwarder readings are relayed through, or nil if
// forwarding is disabled.
func (m *Monitor) Forwarder() *relay.Forwarder {
	return m.forwarder
}

func (m *Monitor) handleRadio(state ble.RadioState) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if state == m.radioState {
		return
	}
	log.Info("monitor: radio %s", state)
	m.radioState = state
	if !m.running {
		return
	}
	if state == ble.RadioReady {
		m.startScanLocked()
	} else {
		// Requests would fail fast anyway; stop issuing them. An established
		// link is torn down by the platform and handled as a disconnect.
		m.stopScanLocked()
	}
	m.emitLocked(Update{})
}

// startScanLocked begins the scan the current state calls for: an open
// deduplicated scan while discovering, a duplicate-reporting watch for the
// tracked peer while reconnecting. Scanning never overlaps a link or an
// in-flight attempt.
func (m *Monitor) startScanLocked() {
	if !m.running || m.radioState != ble.RadioReady || m.conn != nil || m.connecting {
		return
	}
	m.stopScanLocked()
	m.generation++
	gen := m.generation
	var filter ble.ScanFilter
	if m.remembered.ID != "" {
		filter = ble.ScanFilter{TargetID: m.remembered.ID, AllowDuplicates: true}
	}
	scanCtx, cancel := context.WithCancel(m.ctx)
	m.scanCancel = cancel
	m.wg.Add(1)
	go m.runScan(scanCtx, gen, filter)
}

func (m *Monitor) stopScanLocked() {
	if m.scanCancel != nil {
		m.scanCancel()
		m.scanCancel = nil
	}
}

func (m *Monitor) runScan(ctx context.Context, gen uint64, filter ble.ScanFilter) {
	defer m.wg.Done()
	if filter.TargetID == "" {
		log.Debug("monitor: scanning for peers")
	} else {
		log.Debug("monitor: watching for %s", filter.TargetID)
	}
	for {
		err := m.adapter.Scan(ctx, filter, func(peer ble.Peer) {
			m.handleSighting(gen, peer)
		})
		if ctx.Err() != nil {
			return
		}
		if errors.Is(err, ble.ErrRadioUnready) {
			// The radio watcher restarts the scan when the radio returns.
			log.Debug("monitor: scan stopped: %s", err)
			return
		}
		if err != nil {
			log.Warning("monitor: scan failed: %s", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(scanRetryInterval):
		}
	}
}

func (m *Monitor) handleSighting(gen uint64, peer ble.Peer) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if !m.running || gen != m.generation {
		return
	}
	if m.remembered.ID == "" {
		m.recordPeerLocked(peer)
		return
	}
	if peer.ID != m.remembered.ID || m.conn != nil || m.connecting {
		return
	}
	log.Info("monitor: %s is advertising again", peer.ID)
	m.beginAttemptLocked(peer)
}

// recordPeerLocked folds an advertisement into the discovery list. Repeat
// sightings refresh the stored RSSI without reannouncing the peer.
func (m *Monitor) recordPeerLocked(peer ble.Peer) {
	if i, ok := m.peerIndex[peer.ID]; ok {
		m.peers[i] = peer
		return
	}
	m.peerIndex[peer.ID] = len(m.peers)
	m.peers = append(m.peers, peer)
	log.Info("monitor: discovered %s (%s)", peer.ID, peerDisplayName(peer))
	p := peer
	m.emitLocked(Update{Peer: &p})
}

// beginAttemptLocked starts the single in-flight connection attempt.
func (m *Monitor) beginAttemptLocked(peer ble.Peer) {
	m.connecting = true
	m.stopScanLocked()
	attemptCtx, cancel := context.WithCancel(m.ctx)
	m.connectCancel = cancel
	m.wg.Add(1)
	go m.establish(attemptCtx, m.generation, peer)
}

// releaseLinkLocked detaches the current link and any in-flight attempt from
// the session. The caller closes the returned conn outside the lock.
func (m *Monitor) releaseLinkLocked() (ble.Conn, func()) {
	conn, unsubscribe := m.conn, m.unsubscribe
	m.conn = nil
	m.unsubscribe = nil
	m.mtu = 0
	m.connecting = false
	if m.connectCancel != nil {
		m.connectCancel()
		m.connectCancel = nil
	}
	m.stopScanLocked()
	return conn, unsubscribe
}

func (m *Monitor) setStateLocked(next State, err error) {
	if m.state == next {
		if err != nil {
			m.emitLocked(Update{Err: err})
		}
		return
	}
	log.Info("monitor: %s -> %s", m.state, next)
	m.state = next
	m.emitLocked(Update{Err: err})
}

func (m *Monitor) emitLocked(u Update) {
	u.State = m.state
	select {
	case m.updates <- u:
	default:
		log.Debug("monitor: dropping update, subscriber backlog full")
	}
}

func peerDisplayName(peer ble.Peer) string {
	if peer.LocalName == "" {
		return "unnamed"
	}
	return peer.LocalName
}

func closeLink(conn ble.Conn, unsubscribe func()) {
	if unsubscribe != nil {
		unsubscribe()
	}
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil {
		log.Warning("monitor: failed to close link: %s", err)
	}
}
