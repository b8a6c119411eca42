// Package notifications delivers best-effort push notifications over ntfy.
//
// NewService returns an ntfy-backed Service when a topic is configured and
// a noop implementation otherwise, so callers never branch on
// configuration. The Dispatcher adapts a Service to the review engine's
// fire-and-forget Notifier contract: deliveries run on their own
// goroutine with their own timeout and failures are logged, never
// propagated.
package notifications
