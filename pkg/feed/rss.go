package feed

import (
	"html"
	"log"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

// RawItem is a single entry lifted out of the upstream news feed. Description
// is already stripped of markup; GUID falls back to the link when the feed
// omits it.
type RawItem struct {
	Title       string
	Description string
	Link        string
	GUID        string
	Published   time.Time
	HasDate     bool
}

// htmlStripper removes every tag from feed descriptions before excerpting.
var htmlStripper = bluemonday.StrictPolicy()

// ParseRSS parses raw RSS/Atom text into RawItem records. Items missing a
// title or a link are dropped. Unparseable input yields an empty slice, never
// an error; the caller decides whether that means fallback.
func ParseRSS(xmlText string) []RawItem {
	parsed, err := gofeed.NewParser().ParseString(xmlText)
	if err != nil {
		log.Printf("[WARN] news feed parse failed: %v", err)
		return nil
	}

	items := make([]RawItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if strings.TrimSpace(item.Title) == "" || item.Link == "" {
			continue
		}

		raw := RawItem{
			Title:       strings.TrimSpace(item.Title),
			Description: stripHTML(item.Description),
			Link:        item.Link,
			GUID:        item.GUID,
		}
		if raw.GUID == "" {
			raw.GUID = item.Link
		}
		if item.PublishedParsed != nil {
			raw.Published = *item.PublishedParsed
			raw.HasDate = true
		} else if item.UpdatedParsed != nil {
			raw.Published = *item.UpdatedParsed
			raw.HasDate = true
		}

		items = append(items, raw)
	}
	return items
}

// stripHTML drops all markup and resolves entities the sanitizer re-escaped.
func stripHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(htmlStripper.Sanitize(s)))
}
