// Package identity supplies the may-enter-review signal. The real
// verification flow lives outside this repository; the gate here only
// enforces the configured allow list.
package identity

import (
	"context"
	"strings"

	"mymark/internal/config"
)

// Gate decides whether a user may start a review session.
type Gate interface {
	Authorize(ctx context.Context, username string) (bool, error)
}

// StaticGate admits users on a fixed allow list. An empty list admits
// everyone.
type StaticGate struct {
	allowed map[string]struct{}
}

// NewStaticGate builds a gate from the [identity] configuration.
func NewStaticGate(cfg *config.Config) *StaticGate {
	gate := &StaticGate{allowed: make(map[string]struct{}, len(cfg.Identity.AllowedUsers))}
	for _, user := range cfg.Identity.AllowedUsers {
		gate.allowed[strings.ToLower(strings.TrimSpace(user))] = struct{}{}
	}
	return gate
}

// Authorize implements Gate.
func (g *StaticGate) Authorize(_ context.Context, username string) (bool, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return false, nil
	}
	if len(g.allowed) == 0 {
		return true, nil
	}
	_, ok := g.allowed[username]
	return ok, nil
}
