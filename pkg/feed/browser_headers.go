package feed

import (
	"math/rand"
	"net/http"
)

// acceptLanguages contains plausible browser Accept-Language values; the
// upstream federation servers sit behind a CDN that throttles obvious bots.
var acceptLanguages = []string{
	"sv-SE,sv;q=0.9,en;q=0.8",
	"sv,en-US;q=0.9,en;q=0.8",
	"en-US,en;q=0.9,sv;q=0.8",
}

// addBrowserHeaders makes a feed request look like a regular browser fetch.
func addBrowserHeaders(req *http.Request) {
	// calendar and news feeds share one fetcher, accept both families
	req.Header.Set("Accept", "text/calendar,application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Connection", "keep-alive")

	// randomized language
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // non-cryptographic randomness is fine for header variation
}
