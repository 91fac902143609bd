package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/nathikazad/lura-bletest/internal/log"
	"github.com/nathikazad/lura-bletest/pkg/ble"
	"github.com/nathikazad/lura-bletest/pkg/relay"
)

// link bundles the products of a successful connection attempt.
type link struct {
	conn        ble.Conn
	unsubscribe func()
	mtu         int
}

// establish runs one orchestrated connection: dial, verify pairing, then
// subscribe. A pairing mismatch earns exactly one automatic follow-up attempt
// after a settle delay, giving the platform a chance to bond from scratch. A
// second mismatch abandons the peer.
func (m *Monitor) establish(ctx context.Context, gen uint64, peer ble.Peer) {
	defer m.wg.Done()
	retried := false
	for {
		l, err := m.connect(ctx, peer)
		if err == nil {
			m.adopt(gen, l)
			return
		}
		if errors.Is(err, ble.ErrPairingMismatch) {
			if retried {
				m.abandonPeer(gen, err)
				return
			}
			retried = true
			log.Warning("monitor: %s rejected our pairing; retrying once after settling", peer.ID)
			select {
			case <-ctx.Done():
				m.attemptFailed(gen, ctx.Err())
				return
			case <-time.After(m.config.SettleDelay):
			}
			continue
		}
		m.attemptFailed(gen, err)
		return
	}
}

// connect dials the peer and prepares the measurement characteristic.
func (m *Monitor) connect(ctx context.Context, peer ble.Peer) (*link, error) {
	log.Debug("monitor: connecting to %s", peer.ID)
	conn, err := m.adapter.Connect(ctx, peer.ID)
	if err != nil {
		return nil, err
	}

	char, err := conn.Characteristic(ctx, m.config.ServiceUUID, m.config.CharacteristicUUID)
	if err != nil {
		closeLink(conn, nil)
		return nil, err
	}

	if err := m.verifyPairing(ctx, char); err != nil {
		closeLink(conn, nil)
		return nil, err
	}

	unsubscribe, err := char.Subscribe(func(value []byte) {
		m.handleNotification(conn, value)
	})
	if err != nil {
		closeLink(conn, nil)
		return nil, err
	}

	mtu, err := char.MTU()
	if err != nil {
		log.Debug("monitor: MTU unavailable: %s", err)
		mtu = 0
	}
	return &link{conn: conn, unsubscribe: unsubscribe, mtu: mtu}, nil
}

// verifyPairing reads the measurement characteristic to confirm the peer
// still accepts our bond. Peers report authorization-pending while platform
// bonding is in flight, so the read is repeated on a short interval. The
// read is advisory: running out of retries, or any failure other than a
// pairing mismatch, does not block the session.
func (m *Monitor) verifyPairing(ctx context.Context, char ble.Characteristic) error {
	for attempt := 0; ; attempt++ {
		value, err := char.Read(ctx)
		if err == nil {
			log.Debug("monitor: pairing verified, characteristic holds %d bytes", len(value))
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, ble.ErrPairingMismatch) {
			return err
		}
		if !errors.Is(err, ble.ErrAuthorizationPending) {
			log.Warning("monitor: pairing verification read failed: %s", err)
			return nil
		}
		if attempt >= m.config.PairVerifyRetries {
			log.Warning("monitor: peer still authorizing after %d reads, proceeding anyway", attempt+1)
			return nil
		}
		log.Debug("monitor: peer authorization pending, read %d of %d", attempt+1, m.config.PairVerifyRetries+1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.config.PairVerifyInterval):
		}
	}
}

// adopt installs a freshly established link as the active session, unless
// the session moved on while the attempt was in flight.
func (m *Monitor) adopt(gen uint64, l *link) {
	m.lock.Lock()
	if !m.running || gen != m.generation {
		m.lock.Unlock()
		log.Debug("monitor: discarding link established for a superseded session")
		closeLink(l.conn, l.unsubscribe)
		return
	}
	m.conn = l.conn
	m.unsubscribe = l.unsubscribe
	m.mtu = l.mtu
	m.connecting = false
	if m.connectCancel != nil {
		m.connectCancel()
		m.connectCancel = nil
	}
	m.lastErr = nil
	m.setStateLocked(StateActive, nil)
	sessionCtx := m.ctx
	m.lock.Unlock()

	if m.forwarder != nil {
		m.forwarder.Reset()
	}
	if l.mtu > 0 {
		log.Debug("monitor: MTU %d", l.mtu)
	}
	log.Info("monitor: connected to %s", l.conn.PeerID())
	m.wg.Add(1)
	go m.watchDisconnect(sessionCtx, l.conn)
}

// attemptFailed returns the session to scanning after a failed attempt.
func (m *Monitor) attemptFailed(gen uint64, err error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if !m.running || gen != m.generation {
		return
	}
	m.connecting = false
	if m.connectCancel != nil {
		m.connectCancel()
		m.connectCancel = nil
	}
	if err != nil && !errors.Is(err, context.Canceled) && !ble.IsBenign(err) {
		m.lastErr = err
		if ble.ShouldRetry(err) {
			log.Debug("monitor: connection attempt failed: %s", err)
		} else {
			log.Warning("monitor: connection attempt failed: %s", err)
		}
		m.emitLocked(Update{Err: err})
	}
	m.startScanLocked()
}

// abandonPeer gives up on the tracked peer after repeated pairing rejections
// and returns to open discovery. Tracking the peer again requires a fresh
// SelectPeer, which lets the platform establish a new bond.
func (m *Monitor) abandonPeer(gen uint64, err error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if !m.running || gen != m.generation {
		return
	}
	log.Error("monitor: abandoning %s: %s", m.remembered.ID, err)
	m.remembered = ble.Peer{}
	m.generation++
	m.connecting = false
	if m.connectCancel != nil {
		m.connectCancel()
		m.connectCancel = nil
	}
	m.peers = nil
	m.peerIndex = make(map[string]int)
	m.buffer.Clear()
	m.lastErr = err
	m.setStateLocked(StateDiscovering, err)
	m.startScanLocked()
}

// watchDisconnect waits for the link to end and reroutes the session. A
// disconnect only counts if it names the current link; events from
// superseded links are dropped.
func (m *Monitor) watchDisconnect(ctx context.Context, conn ble.Conn) {
	defer m.wg.Done()
	var cause error
	select {
	case cause = <-conn.Disconnected():
	case <-ctx.Done():
		return
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	if !m.running || m.conn != conn {
		log.Debug("monitor: ignoring disconnect from a superseded link")
		return
	}
	m.conn = nil
	m.unsubscribe = nil
	m.mtu = 0
	// The buffer only ever holds the current session's values.
	m.buffer.Clear()
	if ble.IsBenign(cause) {
		log.Debug("monitor: link to %s closed: %s", conn.PeerID(), cause)
		m.setStateLocked(StateReconnecting, nil)
	} else {
		log.Warning("monitor: lost link to %s: %s", conn.PeerID(), cause)
		m.lastErr = cause
		m.setStateLocked(StateReconnecting, cause)
	}
	m.startScanLocked()
}

// handleNotification runs on the backend's notify goroutine. Values from a
// link that is no longer current are dropped. The buffer insert happens under
// the session lock so it cannot interleave with a session teardown clearing
// the buffer.
func (m *Monitor) handleNotification(conn ble.Conn, value []byte) {
	token, err := relay.Decode(m.config.Decode, value)
	if err != nil {
		log.Debug("monitor: ignoring notification: %s", err)
		return
	}

	m.lock.Lock()
	if !m.running || m.conn != conn {
		m.lock.Unlock()
		log.Debug("monitor: dropping notification from a superseded link")
		return
	}
	ctx := m.ctx
	m.buffer.Add(token)
	m.emitLocked(Update{Token: token})
	m.lock.Unlock()

	if m.forwarder != nil {
		m.forwarder.Forward(ctx, token)
	}
}
