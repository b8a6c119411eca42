// Package review implements the match review and disposition engine.
//
// A Session owns the FIFO queue of pending match items, the append-only
// history ledger of resolved items, and the optional reason-capture record
// for a reasoned disposition in flight. All mutating operations act on the
// head of the queue only and either fully apply or leave the session
// untouched. Every successful resolution hands exactly one notification to
// the configured Notifier; delivery is best effort and never affects
// session state.
//
// Treat this package as the single source of truth for review semantics;
// the CLI and archive layers only project what a Session reports.
package review
