// Package assets builds external artwork URLs for cards and paths.
//
// Card images live in a versioned static repository; the revision is supplied
// via process configuration so art updates roll out without a deploy.
package assets

import (
	"net/url"
	"strings"
)

const defaultBaseURL = "https://raw.githubusercontent.com/ShardlessBun/glorybound_cards/"

// Resolver renders artwork URLs for one content revision.
type Resolver struct {
	baseURL string
	version string
}

// NewResolver creates a Resolver for the given content revision.
// An empty baseURL falls back to the canonical card image repository.
func NewResolver(baseURL, version string) Resolver {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return Resolver{baseURL: base, version: strings.TrimSpace(version)}
}

// CardURL returns the image URL for a card inside its owning path.
// Path and card names may contain spaces and punctuation, so every segment
// is escaped independently.
func (r Resolver) CardURL(pathName, cardName string) string {
	return r.baseURL +
		url.PathEscape(r.version) + "/" +
		url.PathEscape(pathName) + "/" +
		url.PathEscape(cardName) + ".png"
}

// PathURL returns the banner image URL for a path. Path banners are stored
// as a card named after the path itself.
func (r Resolver) PathURL(pathName string) string {
	return r.CardURL(pathName, pathName)
}

// Version reports the configured content revision.
func (r Resolver) Version() string {
	return r.version
}
