// Package relay forwards readings decoded from a peripheral to an HTTP ingest
// server.
//
// Forwarding is fire and forget. The peripheral produces readings on its own
// schedule, so a delivery that fails is stale by the time it could be retried;
// the [Forwarder] logs failures and moves on. A minimum-interval gate keeps a
// chatty peripheral from flooding the server, and the gate's clock advances
// only when the server acknowledges a delivery.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nathikazad/lura-bletest/internal/log"
)

// DefaultMinInterval spaces successful deliveries at least this far apart.
const DefaultMinInterval = 1000 * time.Millisecond

// DefaultEndpoint receives readings when no endpoint is configured. It is
// where a stock lura-sink listens.
const DefaultEndpoint = "http://localhost:4999"

const (
	numberPath   = "/number"
	userAgent    = "lura-bletest"
	maxErrorBody = 4096
)

// HttpError contains a non-2xx status returned by the ingest server.
type HttpError struct {
	Code    int
	Message string
}

func (e *HttpError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Code)
	}
	return e.Message
}

// Temporary returns true if the rejection might clear without operator
// action. The Forwarder never retries either way; this only controls how
// loudly the failure is logged.
func (e *HttpError) Temporary() bool {
	return e.Code == http.StatusServiceUnavailable ||
		e.Code == http.StatusGatewayTimeout ||
		e.Code == http.StatusRequestTimeout ||
		e.Code == http.StatusTooManyRequests
}

// Stats counts forwarding outcomes since the Forwarder was created.
type Stats struct {
	Sent      uint64 // deliveries acknowledged with a 2xx status
	Throttled uint64 // readings dropped by the minimum-interval gate
	Skipped   uint64 // tokens that did not parse as integers
	Failed    uint64 // deliveries that failed or were rejected
}

// Forwarder posts readings to an ingest server.
type Forwarder struct {
	client      *http.Client
	minInterval time.Duration

	lock        sync.Mutex
	endpoint    string
	lastSuccess time.Time
	stats       Stats
}

// New returns a Forwarder that posts readings to endpoint, e.g.
// "http://10.0.0.5:4999". An empty endpoint selects DefaultEndpoint. The
// path suffix is fixed by the ingest contract.
func New(endpoint string) *Forwarder {
	return NewWithClient(endpoint, &http.Client{})
}

// NewWithClient is New with an injectable HTTP client.
func NewWithClient(endpoint string, client *http.Client) *Forwarder {
	return &Forwarder{
		client:      client,
		minInterval: DefaultMinInterval,
		endpoint:    normalizeEndpoint(endpoint),
	}
}

func normalizeEndpoint(endpoint string) string {
	if endpoint == "" {
		return DefaultEndpoint
	}
	return strings.TrimSuffix(endpoint, "/")
}

// SetMinInterval overrides the delivery spacing. Non-positive disables the
// gate.
func (f *Forwarder) SetMinInterval(d time.Duration) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.minInterval = d
}

// SetEndpoint switches the ingest server. An empty endpoint selects
// DefaultEndpoint; the throttle clock is unaffected.
func (f *Forwarder) SetEndpoint(endpoint string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.endpoint = normalizeEndpoint(endpoint)
}

// Endpoint returns the ingest server base URL.
func (f *Forwarder) Endpoint() string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.endpoint
}

// Reset clears the throttle clock so the next reading posts immediately.
// Callers should reset when a new session starts.
func (f *Forwarder) Reset() {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.lastSuccess = time.Time{}
}

// Stats returns a copy of the forwarding counters.
func (f *Forwarder) Stats() Stats {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.stats
}

// Forward posts token's integer value to the ingest server without waiting
// for the result. Non-numeric tokens are dropped, as are readings that arrive
// before the minimum interval since the last acknowledged delivery has
// passed. Failed deliveries are logged, never retried.
func (f *Forwarder) Forward(ctx context.Context, token string) {
	number, err := strconv.Atoi(token)
	if err != nil {
		f.lock.Lock()
		f.stats.Skipped++
		f.lock.Unlock()
		log.Debug("relay: ignoring non-numeric token '%s'", token)
		return
	}

	f.lock.Lock()
	if f.minInterval > 0 && !f.lastSuccess.IsZero() && time.Since(f.lastSuccess) <= f.minInterval {
		f.stats.Throttled++
		f.lock.Unlock()
		log.Debug("relay: dropped %d inside minimum interval", number)
		return
	}
	url := f.endpoint + numberPath
	f.lock.Unlock()

	go f.deliver(ctx, url, number)
}

func (f *Forwarder) deliver(ctx context.Context, url string, number int) {
	body, err := json.Marshal(struct {
		Number int `json:"number"`
	}{Number: number})
	if err != nil {
		f.recordFailure()
		log.Error("relay: failed to encode reading: %s", err)
		return
	}

	log.Debug("relay: sending %s to %s", body, url)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		f.recordFailure()
		log.Warning("relay: failed to build request for %s: %s", url, err)
		return
	}
	request.Header.Set("User-Agent", userAgent)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "*/*")

	result, err := f.client.Do(request)
	if err != nil {
		f.recordFailure()
		log.Warning("relay: failed to deliver %d: %s", number, err)
		return
	}
	defer result.Body.Close()

	if result.StatusCode >= 200 && result.StatusCode < 300 {
		f.lock.Lock()
		f.lastSuccess = time.Now()
		f.stats.Sent++
		f.lock.Unlock()
		log.Debug("relay: server accepted %d with status %d", number, result.StatusCode)
		return
	}

	message, _ := io.ReadAll(io.LimitReader(result.Body, maxErrorBody))
	httpErr := &HttpError{Code: result.StatusCode, Message: strings.TrimSpace(string(message))}
	f.recordFailure()
	if httpErr.Temporary() {
		log.Debug("relay: server rejected %d: %s", number, httpErr)
	} else {
		log.Warning("relay: server rejected %d: %s", number, httpErr)
	}
}

func (f *Forwarder) recordFailure() {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.stats.Failed++
}
