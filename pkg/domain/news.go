package domain

import "time"

// NewsItem is an external news entry shown on the front page. Excerpt is the
// feed description stripped of markup and capped at 200 characters plus an
// ellipsis marker.
type NewsItem struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Excerpt string    `json:"excerpt"`
	URL     string    `json:"url"`
	Date    time.Time `json:"date"`
	Source  string    `json:"source"`
}
