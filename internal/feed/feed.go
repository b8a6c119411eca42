// Package feed turns an external source listing into the ordered candidate
// batch a review session starts from. Sources return finite,
// already-deduplicated batches; a fresh call may return a different set.
package feed

import (
	"context"
	"fmt"

	"mymark/internal/config"
	"mymark/internal/review"
)

// Source produces the candidate matches for a subject identity.
type Source interface {
	LoadCandidates(ctx context.Context, subject string) ([]review.MatchItem, error)
}

// NewSource selects the configured candidate source.
func NewSource(cfg *config.Config) (Source, error) {
	switch cfg.Feed.Source {
	case "demo":
		return &DemoSource{Count: cfg.Feed.DemoCount}, nil
	case "file":
		return &FileSource{Path: cfg.Feed.File}, nil
	default:
		return nil, fmt.Errorf("unknown feed source %q", cfg.Feed.Source)
	}
}

// dedupe drops items whose id was already seen, keeping first occurrence
// order. The engine rejects duplicates outright; dedupe here keeps a
// sloppy listing usable.
func dedupe(items []review.MatchItem) []review.MatchItem {
	seen := make(map[int64]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}
