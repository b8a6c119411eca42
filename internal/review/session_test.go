package review_test

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"mymark/internal/review"
)

type recordingNotifier struct {
	mu       sync.Mutex
	resolved []review.HistoryEntry
}

func (r *recordingNotifier) MatchResolved(item review.MatchItem, d review.Disposition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved = append(r.resolved, review.HistoryEntry{Item: item, Disposition: d})
}

func (r *recordingNotifier) entries() []review.HistoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]review.HistoryEntry(nil), r.resolved...)
}

func newItems(n int) []review.MatchItem {
	items := make([]review.MatchItem, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, review.MatchItem{
			ID:       int64(i),
			ImageRef: fmt.Sprintf("casey_%02d", i),
			SiteURL:  fmt.Sprintf("https://example.com/photo/%d", i),
		})
	}
	return items
}

func mustStart(t *testing.T, items []review.MatchItem, notifier review.Notifier) *review.Session {
	t.Helper()
	session, err := review.StartSession("casey", items, notifier, nil)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	return session
}

type sessionSnapshot struct {
	pending []review.MatchItem
	history []review.HistoryEntry
	kind    review.DispositionKind
}

func snapshot(s *review.Session) sessionSnapshot {
	return sessionSnapshot{
		pending: s.Pending(),
		history: s.History(),
		kind:    s.PendingReasonKind(),
	}
}

func TestStartSessionRejectsDuplicateIDs(t *testing.T) {
	items := newItems(3)
	items[2].ID = items[0].ID

	if _, err := review.StartSession("casey", items, nil, nil); !errors.Is(err, review.ErrInvalidFeed) {
		t.Fatalf("expected ErrInvalidFeed, got %v", err)
	}
}

func TestCurrentReturnsHeadThenNothing(t *testing.T) {
	session := mustStart(t, newItems(1), nil)

	head, ok := session.Current()
	if !ok || head.ID != 1 {
		t.Fatalf("expected head item 1, got %v ok=%v", head, ok)
	}
	if err := session.ResolveDirect(1, review.DispositionApprove); err != nil {
		t.Fatalf("ResolveDirect failed: %v", err)
	}
	if _, ok := session.Current(); ok {
		t.Fatal("expected empty queue after resolving the only item")
	}
}

func TestResolveDirectMovesHeadToHistory(t *testing.T) {
	notifier := &recordingNotifier{}
	session := mustStart(t, newItems(2), notifier)

	if err := session.ResolveDirect(1, review.DispositionApprove); err != nil {
		t.Fatalf("ResolveDirect failed: %v", err)
	}

	pending := session.Pending()
	if len(pending) != 1 || pending[0].ID != 2 {
		t.Fatalf("expected item 2 to remain pending, got %v", pending)
	}
	history := session.History()
	if len(history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(history))
	}
	if history[0].Item.ID != 1 || history[0].Disposition.Kind != review.DispositionApprove {
		t.Fatalf("unexpected history entry: %+v", history[0])
	}
	if got := notifier.entries(); len(got) != 1 || got[0].Item.ID != 1 {
		t.Fatalf("expected one notification for item 1, got %v", got)
	}
}

func TestResolveDirectRejectsStaleIntent(t *testing.T) {
	session := mustStart(t, newItems(2), nil)
	before := snapshot(session)

	err := session.ResolveDirect(2, review.DispositionApprove)
	if !errors.Is(err, review.ErrNotHeadOfQueue) {
		t.Fatalf("expected ErrNotHeadOfQueue, got %v", err)
	}
	if !reflect.DeepEqual(before, snapshot(session)) {
		t.Fatal("rejected call must leave the session unchanged")
	}
}

func TestResolveDirectRejectsReasonedKinds(t *testing.T) {
	session := mustStart(t, newItems(1), nil)

	for _, kind := range []review.DispositionKind{review.DispositionReport, review.DispositionTakedown, review.DispositionNone} {
		if err := session.ResolveDirect(1, kind); err == nil {
			t.Fatalf("expected error for kind %q", kind)
		}
	}
	if len(session.History()) != 0 {
		t.Fatal("no resolution should have happened")
	}
}

func TestReasonCaptureRoundTripIsNoop(t *testing.T) {
	session := mustStart(t, newItems(2), nil)
	before := snapshot(session)

	if err := session.BeginReasonCapture(1, review.DispositionReport); err != nil {
		t.Fatalf("BeginReasonCapture failed: %v", err)
	}
	if kind := session.PendingReasonKind(); kind != review.DispositionReport {
		t.Fatalf("expected report overlay, got %s", kind)
	}
	session.CancelReasonCapture()

	if !reflect.DeepEqual(before, snapshot(session)) {
		t.Fatal("begin followed by cancel must restore the prior state")
	}
	// Cancelling again stays a non-failing no-op.
	session.CancelReasonCapture()
}

func TestBeginReasonCaptureIdempotentForSameIntent(t *testing.T) {
	session := mustStart(t, newItems(1), nil)

	if err := session.BeginReasonCapture(1, review.DispositionTakedown); err != nil {
		t.Fatalf("BeginReasonCapture failed: %v", err)
	}
	if err := session.BeginReasonCapture(1, review.DispositionTakedown); err != nil {
		t.Fatalf("repeat with same intent should be a no-op, got %v", err)
	}
	if err := session.BeginReasonCapture(1, review.DispositionReport); !errors.Is(err, review.ErrReasonCaptureInProgress) {
		t.Fatalf("expected ErrReasonCaptureInProgress for conflicting kind, got %v", err)
	}
}

func TestDirectResolutionBlockedWhileCaptureOpen(t *testing.T) {
	session := mustStart(t, newItems(2), nil)

	if err := session.BeginReasonCapture(1, review.DispositionReport); err != nil {
		t.Fatalf("BeginReasonCapture failed: %v", err)
	}
	before := snapshot(session)

	// Same item: the capture must be submitted or cancelled, never bypassed.
	err := session.ResolveDirect(1, review.DispositionApprove)
	if !errors.Is(err, review.ErrReasonCaptureInProgress) {
		t.Fatalf("expected ErrReasonCaptureInProgress, got %v", err)
	}
	if !reflect.DeepEqual(before, snapshot(session)) {
		t.Fatal("rejected call must leave the session unchanged")
	}
}

func TestSubmitReasonRequiresOpenCapture(t *testing.T) {
	session := mustStart(t, newItems(1), nil)

	if err := session.SubmitReason("Impersonation"); !errors.Is(err, review.ErrNoReasonCaptureOpen) {
		t.Fatalf("expected ErrNoReasonCaptureOpen, got %v", err)
	}
}

func TestSubmitReasonRejectsBlankReason(t *testing.T) {
	session := mustStart(t, newItems(1), nil)
	if err := session.BeginReasonCapture(1, review.DispositionReport); err != nil {
		t.Fatalf("BeginReasonCapture failed: %v", err)
	}
	before := snapshot(session)

	for _, reason := range []string{"", "   ", "\t\n"} {
		if err := session.SubmitReason(reason); !errors.Is(err, review.ErrEmptyReason) {
			t.Fatalf("reason %q: expected ErrEmptyReason, got %v", reason, err)
		}
	}
	if !reflect.DeepEqual(before, snapshot(session)) {
		t.Fatal("rejected submissions must leave the session unchanged")
	}
}

func TestFullScenarioApproveThenReport(t *testing.T) {
	notifier := &recordingNotifier{}
	session := mustStart(t, newItems(2), notifier)

	if err := session.ResolveDirect(1, review.DispositionApprove); err != nil {
		t.Fatalf("ResolveDirect failed: %v", err)
	}
	if err := session.BeginReasonCapture(2, review.DispositionReport); err != nil {
		t.Fatalf("BeginReasonCapture failed: %v", err)
	}
	if kind := session.PendingReasonKind(); kind != review.DispositionReport {
		t.Fatalf("expected report overlay, got %s", kind)
	}
	if pending := session.Pending(); len(pending) != 1 || pending[0].ID != 2 {
		t.Fatalf("captured item must stay in the queue, got %v", pending)
	}
	if err := session.SubmitReason("  Impersonation  "); err != nil {
		t.Fatalf("SubmitReason failed: %v", err)
	}

	if pending := session.Pending(); len(pending) != 0 {
		t.Fatalf("expected empty queue, got %v", pending)
	}
	history := session.History()
	if len(history) != 2 {
		t.Fatalf("expected two history entries, got %d", len(history))
	}
	if history[0].Disposition.Kind != review.DispositionApprove {
		t.Fatalf("expected approve first, got %+v", history[0])
	}
	second := history[1]
	if second.Item.ID != 2 || second.Disposition.Kind != review.DispositionReport || second.Disposition.Reason != "Impersonation" {
		t.Fatalf("unexpected second entry: %+v", second)
	}
	if got := notifier.entries(); len(got) != 2 {
		t.Fatalf("expected one notification per resolution, got %d", len(got))
	}
	if session.PendingReasonKind() != review.DispositionNone {
		t.Fatal("capture must be cleared after submission")
	}
}

func TestQueueAndHistoryStayDisjoint(t *testing.T) {
	session := mustStart(t, newItems(5), nil)

	resolve := func(id int64) {
		t.Helper()
		var err error
		if id%2 == 0 {
			if err = session.BeginReasonCapture(id, review.DispositionTakedown); err == nil {
				err = session.SubmitReason("Personal Privacy")
			}
		} else {
			err = session.ResolveDirect(id, review.DispositionSelfPosted)
		}
		if err != nil {
			t.Fatalf("resolving item %d: %v", id, err)
		}
	}

	for id := int64(1); id <= 5; id++ {
		resolve(id)

		seen := make(map[int64]string)
		for _, item := range session.Pending() {
			seen[item.ID] = "pending"
		}
		for _, entry := range session.History() {
			if where, dup := seen[entry.Item.ID]; dup {
				t.Fatalf("item %d present in both history and %s", entry.Item.ID, where)
			}
			seen[entry.Item.ID] = "history"
		}
		if len(seen) != 5 {
			t.Fatalf("expected 5 distinct items, got %d", len(seen))
		}
	}

	if got := len(session.History()); got != 5 {
		t.Fatalf("expected all items resolved, got %d", got)
	}
}

func TestDispositionRendering(t *testing.T) {
	cases := []struct {
		d    review.Disposition
		want string
	}{
		{review.Disposition{Kind: review.DispositionApprove}, "Approved"},
		{review.Disposition{Kind: review.DispositionSelfPosted}, "Posted by me"},
		{review.Disposition{Kind: review.DispositionReport, Reason: "Impersonation"}, "Reported: Impersonation"},
		{review.Disposition{Kind: review.DispositionTakedown, Reason: "Copyright"}, "Takedown requested: Copyright"},
	}
	for _, tc := range cases {
		if got := tc.d.String(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestParseDispositionKind(t *testing.T) {
	if kind, ok := review.ParseDispositionKind(" Report "); !ok || kind != review.DispositionReport {
		t.Fatalf("expected report, got %s ok=%v", kind, ok)
	}
	if _, ok := review.ParseDispositionKind("shrug"); ok {
		t.Fatal("expected unknown kind to be rejected")
	}
	if _, ok := review.ParseDispositionKind(""); ok {
		t.Fatal("expected empty kind to be rejected")
	}
}
