package ble

import "errors"

// Error exposes methods useful for categorizing link failures.
type Error interface {
	error

	// Temporary returns true if the failure might clear on its own, making a
	// retry of the triggering operation reasonable. For example, peripherals
	// reject protected reads with an authorization error for a moment while
	// the platform finishes bonding.
	Temporary() bool

	// Benign returns true if the failure is an expected part of normal
	// operation rather than a fault, such as a disconnect the client
	// requested itself. Benign errors should not be surfaced as failures.
	Benign() bool
}

var (
	// ErrRadioUnready indicates the platform radio is off, unauthorized, or
	// absent. Scans and connections fail fast rather than queue.
	ErrRadioUnready = NewError("bluetooth radio is not powered on", false, false)
	// ErrAuthorizationPending indicates the peer has not finished authorizing
	// the link. Protected reads report this until bonding completes.
	ErrAuthorizationPending = NewError("peer has not finished authorizing the link", true, false)
	// ErrPairingMismatch indicates the peer no longer recognizes the pairing
	// credentials stored on this host, usually because its bond table was
	// cleared. Recovering requires re-pairing from scratch.
	ErrPairingMismatch = NewError("peer rejected the stored pairing credentials", false, false)
	// ErrCancelled indicates the link ended because the client asked it to.
	ErrCancelled = NewError("connection closed by local request", false, true)
	// ErrLinkLost indicates the peer dropped the link or moved out of range.
	ErrLinkLost = NewError("connection to peer lost", true, false)
	// ErrNotConnectable indicates the peer is advertising but not accepting
	// connections.
	ErrNotConnectable = NewError("peer is not accepting connections", false, false)
	// ErrPeerNotFound indicates a connection was requested to a peer the
	// radio has not discovered.
	ErrPeerNotFound = NewError("peer is not advertising", false, false)
)

// LinkError is the concrete Error returned by adapter backends.
type LinkError struct {
	Err               error
	PossibleTemporary bool
	Expected          bool
}

func NewError(message string, temporary bool, benign bool) error {
	return &LinkError{Err: errors.New(message), PossibleTemporary: temporary, Expected: benign}
}

func (e *LinkError) Error() string {
	return e.Err.Error()
}

func (e *LinkError) Unwrap() error {
	return e.Err
}

func (e *LinkError) Temporary() bool {
	return e.PossibleTemporary
}

func (e *LinkError) Benign() bool {
	return e.Expected
}

// Temporary returns true if err indicates a transient condition that does not
// require user action to resolve.
func Temporary(err error) bool {
	var linkErr Error
	return errors.As(err, &linkErr) && linkErr.Temporary()
}

// IsBenign returns true if err is an expected consequence of normal teardown,
// such as the cause reported after a locally requested disconnect.
func IsBenign(err error) bool {
	var linkErr Error
	return errors.As(err, &linkErr) && linkErr.Benign()
}

// ShouldRetry returns true if the operation that triggered err is worth
// repeating after a short delay.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	var linkErr Error
	if errors.As(err, &linkErr) {
		if linkErr.Benign() {
			return false
		}
		if linkErr.Temporary() {
			return true
		}
	}
	return false
}
