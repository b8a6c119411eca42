package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mymark/internal/config"
	"mymark/internal/review"
)

const userAgent = "MyMark-Go/0.1.0"

// Service defines the notification surface exposed to the review workflow.
type Service interface {
	NotifyMatchResolved(ctx context.Context, item review.MatchItem, disposition review.Disposition) error
	NotifySessionComplete(ctx context.Context, subject string, resolved int) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:       topic,
		client:         &http.Client{Timeout: timeout},
		sessionSummary: cfg.Notifications.SessionSummary,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint       string
	client         *http.Client
	sessionSummary bool
}

func (n *ntfyService) NotifyMatchResolved(ctx context.Context, item review.MatchItem, disposition review.Disposition) error {
	site := strings.TrimSpace(item.SiteURL)
	data := payload{
		title:   "Did you post this?",
		message: fmt.Sprintf("A potential match was found on %s: %s\nDecision: %s", PlatformName(site), site, disposition.String()),
		tags:    []string{"mymark", "match", string(disposition.Kind)},
	}
	if disposition.Kind.Reasoned() {
		data.priority = "high"
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifySessionComplete(ctx context.Context, subject string, resolved int) error {
	if !n.sessionSummary {
		return nil
	}
	subject = strings.TrimSpace(subject)
	noun := "matches"
	if resolved == 1 {
		noun = "match"
	}
	data := payload{
		title:   "MyMark - Review Complete",
		message: fmt.Sprintf("Review complete for %s: %d %s resolved", subject, resolved, noun),
		tags:    []string{"mymark", "session", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "MyMark - Test",
		message:  "Notification system test",
		tags:     []string{"mymark", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyMatchResolved(context.Context, review.MatchItem, review.Disposition) error {
	return nil
}
func (noopService) NotifySessionComplete(context.Context, string, int) error { return nil }
func (noopService) TestNotification(context.Context) error                   { return nil }
