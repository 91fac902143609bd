// Package readings holds the most recent values decoded from a peripheral's
// measurement stream.
//
// A [Log] is a bounded, newest-first list. Every decoded token is inserted at
// the front, and once the log is full each insertion evicts the oldest entry.
// The bound keeps a long-lived session from accumulating readings without
// limit; callers that want history should drain [Log.Snapshot] elsewhere.
//
// All methods are safe for concurrent use, so the session monitor can append
// while a UI or exporter reads.
package readings
