package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"mymark/internal/review"
)

// FileSource reads candidates from a JSON listing, one object per match:
// [{"id": 1, "imageRef": "casey_01", "siteUrl": "https://..."}].
type FileSource struct {
	Path string
}

type fileCandidate struct {
	ID       int64  `json:"id"`
	ImageRef string `json:"imageRef"`
	SiteURL  string `json:"siteUrl"`
}

// LoadCandidates implements Source. Entries with a non-positive id or a
// blank site are rejected; duplicate ids are dropped keeping the first
// occurrence.
func (f *FileSource) LoadCandidates(_ context.Context, _ string) ([]review.MatchItem, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read candidate list: %w", err)
	}

	var candidates []fileCandidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("parse candidate list %s: %w", f.Path, err)
	}

	items := make([]review.MatchItem, 0, len(candidates))
	for i, candidate := range candidates {
		if candidate.ID <= 0 {
			return nil, fmt.Errorf("candidate %d: id must be positive, got %d", i, candidate.ID)
		}
		site := strings.TrimSpace(candidate.SiteURL)
		if site == "" {
			return nil, fmt.Errorf("candidate %d: siteUrl is required", i)
		}
		items = append(items, review.MatchItem{
			ID:       candidate.ID,
			ImageRef: strings.TrimSpace(candidate.ImageRef),
			SiteURL:  site,
		})
	}
	return dedupe(items), nil
}
