package review

import "errors"

// Sentinel errors returned by Session operations. All of them are rejected
// preconditions: the session is left unchanged and the caller can re-render
// current state and retry.
var (
	// ErrInvalidFeed indicates the candidate batch contained duplicate ids.
	ErrInvalidFeed = errors.New("invalid feed")

	// ErrNotHeadOfQueue indicates an intent addressed an item other than
	// the current head, typically a stale gesture from a previous card.
	ErrNotHeadOfQueue = errors.New("not head of queue")

	// ErrReasonCaptureInProgress indicates a reasoned decision is already
	// in flight; it must be submitted or cancelled before anything else.
	ErrReasonCaptureInProgress = errors.New("reason capture in progress")

	// ErrEmptyReason indicates a reason submission was blank after trimming.
	ErrEmptyReason = errors.New("empty reason")

	// ErrNoReasonCaptureOpen indicates a reason was submitted with no
	// capture open.
	ErrNoReasonCaptureOpen = errors.New("no reason capture open")
)
