package notifications

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var hostPrefixes = []string{"www.", "m.", "mobile.", "old.", "vm.", "pro.", "story.", "sub."}

var titleCaser = cases.Title(language.English)

// PlatformName derives a display name for the site hosting a match, e.g.
// "https://www.instagram.com/p/abc" becomes "Instagram". Unparsable URLs
// fall back to a generic label so notification text never ends up empty.
func PlatformName(siteURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(siteURL))
	if err != nil || parsed.Hostname() == "" {
		return "an unknown site"
	}

	host := strings.ToLower(parsed.Hostname())
	for _, prefix := range hostPrefixes {
		if trimmed := strings.TrimPrefix(host, prefix); trimmed != host && strings.Contains(trimmed, ".") {
			host = trimmed
			break
		}
	}

	if idx := strings.Index(host, "."); idx > 0 {
		host = host[:idx]
	}
	if host == "" {
		return "an unknown site"
	}
	return titleCaser.String(host)
}
