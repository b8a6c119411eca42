package review

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Notifier receives the side-effecting notification emitted on every
// resolution. Implementations must not block: the session calls them
// synchronously after its own state has already been committed, and it
// never inspects the outcome.
type Notifier interface {
	MatchResolved(item MatchItem, disposition Disposition)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) MatchResolved(MatchItem, Disposition) {}

// Session is the aggregate root of one review pass: the pending queue
// (head = currently focused item), the history ledger, and the optional
// reason capture. A single mutex serializes writers; read projections
// return copies.
type Session struct {
	id      string
	subject string
	notify  Notifier
	logger  *slog.Logger

	mu      sync.Mutex
	pending []MatchItem
	history []HistoryEntry
	capture *PendingReason
}

// StartSession seeds a session with the candidate batch in feed order.
// The feed adapter is responsible for deduplication; duplicate ids here
// mean a broken adapter and fail with ErrInvalidFeed.
func StartSession(subject string, items []MatchItem, notifier Notifier, logger *slog.Logger) (*Session, error) {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item id %d", ErrInvalidFeed, item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	session := &Session{
		id:      uuid.NewString(),
		subject: strings.TrimSpace(subject),
		notify:  notifier,
		logger:  logger,
		pending: append([]MatchItem(nil), items...),
	}
	logger.Debug("review session started",
		slog.String("session", session.id),
		slog.String("subject", session.subject),
		slog.Int("candidates", len(items)))
	return session, nil
}

// ID returns the session identifier used for log correlation.
func (s *Session) ID() string { return s.id }

// Subject returns the identity the session reviews matches for.
func (s *Session) Subject() string { return s.subject }

// Current returns the head of the pending queue. The second return is
// false once the queue is empty, the terminal nothing-to-review state.
func (s *Session) Current() (MatchItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return MatchItem{}, false
	}
	return s.pending[0], true
}

// Pending returns a snapshot of the queue in presentation order.
func (s *Session) Pending() []MatchItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]MatchItem(nil), s.pending...)
}

// History returns the ledger in chronological resolution order.
func (s *Session) History() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]HistoryEntry(nil), s.history...)
}

// PendingReasonKind reports which overlay the shell should render:
// DispositionNone when no reason capture is open, otherwise the reasoned
// kind awaiting its justification.
func (s *Session) PendingReasonKind() DispositionKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.capture == nil {
		return DispositionNone
	}
	return s.capture.Kind
}

// ResolveDirect resolves the head item with a direct disposition. The id
// must address the current head, and no reason capture may be open, not
// even for the same item: an in-flight reasoned decision is finished via
// SubmitReason or CancelReasonCapture, never bypassed.
func (s *Session) ResolveDirect(itemID int64, kind DispositionKind) error {
	if !kind.Valid() || kind.Reasoned() {
		return fmt.Errorf("resolve direct: %q is not a direct disposition", kind)
	}

	s.mu.Lock()
	if s.capture != nil {
		open := *s.capture
		s.mu.Unlock()
		return fmt.Errorf("%w: item %d awaits a %s reason", ErrReasonCaptureInProgress, open.ItemID, open.Kind)
	}
	if err := s.requireHead(itemID); err != nil {
		s.mu.Unlock()
		return err
	}
	entry := s.resolveHead(Disposition{Kind: kind})
	s.mu.Unlock()

	s.emit(entry)
	return nil
}

// BeginReasonCapture opens the reason overlay for the head item. The item
// stays in the queue; the shell renders it as blocked until the capture is
// submitted or cancelled. Calling again with the same id and kind is a
// no-op; any other combination fails while a capture is open.
func (s *Session) BeginReasonCapture(itemID int64, kind DispositionKind) error {
	if !kind.Reasoned() {
		return fmt.Errorf("begin reason capture: %q is not a reasoned disposition", kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.capture != nil {
		if s.capture.ItemID == itemID && s.capture.Kind == kind {
			return nil
		}
		return fmt.Errorf("%w: item %d awaits a %s reason", ErrReasonCaptureInProgress, s.capture.ItemID, s.capture.Kind)
	}
	if err := s.requireHead(itemID); err != nil {
		return err
	}

	s.capture = &PendingReason{ItemID: itemID, Kind: kind}
	s.logger.Debug("reason capture opened",
		slog.String("session", s.id),
		slog.Int64("item", itemID),
		slog.String("kind", string(kind)))
	return nil
}

// CancelReasonCapture discards an open reason capture. The item returns to
// normal pending state unchanged. Calling without an open capture is a
// non-failing no-op.
func (s *Session) CancelReasonCapture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.capture == nil {
		return
	}
	s.logger.Debug("reason capture cancelled",
		slog.String("session", s.id),
		slog.Int64("item", s.capture.ItemID))
	s.capture = nil
}

// SubmitReason finalizes the open reason capture: the captured item moves
// from the queue to history carrying the reasoned disposition, and one
// notification is emitted.
func (s *Session) SubmitReason(reason string) error {
	reason = strings.TrimSpace(reason)

	s.mu.Lock()
	if s.capture == nil {
		s.mu.Unlock()
		return ErrNoReasonCaptureOpen
	}
	if reason == "" {
		s.mu.Unlock()
		return fmt.Errorf("%w: a %s needs a justification", ErrEmptyReason, s.capture.Kind)
	}
	disposition := Disposition{Kind: s.capture.Kind, Reason: reason}
	s.capture = nil
	entry := s.resolveHead(disposition)
	s.mu.Unlock()

	s.emit(entry)
	return nil
}

// requireHead checks that itemID addresses the current head. Caller holds mu.
func (s *Session) requireHead(itemID int64) error {
	if len(s.pending) == 0 {
		return fmt.Errorf("%w: queue is empty", ErrNotHeadOfQueue)
	}
	if head := s.pending[0]; head.ID != itemID {
		return fmt.Errorf("%w: item %d is not the focused item %d", ErrNotHeadOfQueue, itemID, head.ID)
	}
	return nil
}

// resolveHead moves the head item to history with the given disposition.
// Caller holds mu and has already validated the head.
func (s *Session) resolveHead(disposition Disposition) HistoryEntry {
	item := s.pending[0]
	s.pending = s.pending[1:]
	entry := HistoryEntry{Item: item, Disposition: disposition}
	s.history = append(s.history, entry)
	return entry
}

// emit hands the resolution to the notifier after the mutation has been
// committed. The queue and ledger are the source of truth; the
// notification never rolls them back.
func (s *Session) emit(entry HistoryEntry) {
	s.logger.Info("match resolved",
		slog.String("session", s.id),
		slog.Int64("item", entry.Item.ID),
		slog.String("site", entry.Item.SiteURL),
		slog.String("disposition", string(entry.Disposition.Kind)))
	s.notify.MatchResolved(entry.Item, entry.Disposition)
}
