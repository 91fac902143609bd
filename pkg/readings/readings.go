package readings

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// DefaultCapacity bounds a Log created with a non-positive capacity.
const DefaultCapacity = 50

// Reading is a single decoded value from the peripheral, stored in the form
// it was (or would be) forwarded.
type Reading struct {
	Token string    `json:"token"`
	At    time.Time `json:"at"`
}

// Log is a bounded list of readings, newest first.
type Log struct {
	capacity int
	entries  []Reading
	lock     sync.Mutex
}

// New returns a Log that holds up to capacity readings. A non-positive
// capacity falls back to DefaultCapacity; the log is always bounded.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity}
}

// Add inserts a reading at the front of the log, evicting the oldest reading
// if the log is full.
func (l *Log) Add(token string) {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.entries = append([]Reading{{Token: token, At: time.Now()}}, l.entries...)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
}

// Clear removes all readings.
func (l *Log) Clear() {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.entries = nil
}

// Len returns the number of readings currently held.
func (l *Log) Len() int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return len(l.entries)
}

// Capacity returns the maximum number of readings the log holds.
func (l *Log) Capacity() int {
	return l.capacity
}

// Latest returns the most recent reading, if any.
func (l *Log) Latest() (Reading, bool) {
	l.lock.Lock()
	defer l.lock.Unlock()
	if len(l.entries) == 0 {
		return Reading{}, false
	}
	return l.entries[0], true
}

// Snapshot returns a copy of the log's contents, newest first.
func (l *Log) Snapshot() []Reading {
	l.lock.Lock()
	defer l.lock.Unlock()

	entries := make([]Reading, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// Export writes the log to w as JSON. The output is a single object with a
// "readings" array, newest first.
func (l *Log) Export(w io.Writer) error {
	snapshot := l.Snapshot()
	return json.NewEncoder(w).Encode(struct {
		Readings []Reading `json:"readings"`
	}{Readings: snapshot})
}
