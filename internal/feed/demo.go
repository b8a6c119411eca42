package feed

import (
	"context"
	"fmt"
	"strings"

	"mymark/internal/review"
)

// demoSites is the fixed rotation of originating sites the demo batch
// cycles through.
var demoSites = []string{
	"https://www.instagram.com/p/BAT2MEWuDPN/",
	"https://sub.instagram.com/p/NEWINSTAGRAM1/",
	"https://www.facebook.com/photo.php?fbid=123456789",
	"https://m.facebook.com/story.php?story_fbid=987654321",
	"https://twitter.com/example/status/987654321",
	"https://mobile.twitter.com/example/status/123456789",
	"https://www.tiktok.com/@user/video/1234567890",
	"https://vm.tiktok.com/ZSeMbC/",
	"https://www.snapchat.com/add/exampleuser",
	"https://story.snapchat.com/view/exampleuser",
	"https://www.youtube.com/watch?v=abc123def",
	"https://m.youtube.com/watch?v=def456ghi",
	"https://www.reddit.com/r/example/comments/xyz789/",
	"https://old.reddit.com/r/example/comments/abc123/",
	"https://onlyfans.com/exampleuser",
	"https://www.linkedin.com/feed/update/urn:li:activity:1234567890",
	"https://www.pinterest.com/pin/123456789012345678/",
	"https://www.tumblr.com/dashboard",
	"https://www.flickr.com/photos/exampleuser/123456789",
	"https://www.quora.com/What-is-sample-question",
	"https://www.vimeo.com/123456789",
	"https://www.linkedin.com/in/exampleuser/",
	"https://www.reddit.com/user/exampleuser",
	"https://www.medium.com/@exampleuser",
	"https://www.behance.net/gallery/123456789",
	"https://www.dribbble.com/shots/123456789",
	"https://www.soundcloud.com/exampleuser/sets/123456789",
	"https://www.spotify.com/track/123456789",
	"https://www.twitch.tv/exampleuser",
	"https://www.foursquare.com/s/exampleuser",
}

// DemoSource produces a deterministic per-subject batch so the workflow is
// runnable without a scraping backend. Image refs follow the
// <subject>_NN naming the capture pipeline uses.
type DemoSource struct {
	Count int
}

// LoadCandidates implements Source.
func (d *DemoSource) LoadCandidates(_ context.Context, subject string) ([]review.MatchItem, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fmt.Errorf("demo feed: subject identity is required")
	}

	count := d.Count
	if count <= 0 {
		count = 1
	}

	items := make([]review.MatchItem, 0, count)
	for i := 1; i <= count; i++ {
		items = append(items, review.MatchItem{
			ID:       int64(i),
			ImageRef: fmt.Sprintf("%s_%02d", subject, i),
			SiteURL:  demoSites[i%len(demoSites)],
		})
	}
	return items, nil
}
