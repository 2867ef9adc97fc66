package feed

import (
	"crypto/sha256"
	"encoding/base64"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/svbf/portal/pkg/domain"
)

const (
	excerptLimit    = 200 // characters kept from a description before the ellipsis
	maxNewsItems    = 3
	windowPastDays  = 30
	windowAheadDays = 365
)

const dateLayout = "2006-01-02"

// ClassifyCompetition guesses the discipline category from the competition
// name and description. Best-effort keyword matching, Swedish terms first.
// Precedence is fixed and significant: outdoor beats indoor beats 3d beats
// field, first match wins.
func ClassifyCompetition(name, description string) domain.Category {
	text := strings.ToLower(name + " " + description)
	switch {
	case strings.Contains(text, "utomhus") || strings.Contains(text, "outdoor"):
		return domain.CategoryOutdoor
	case strings.Contains(text, "inomhus") || strings.Contains(text, "indoor"):
		return domain.CategoryIndoor
	case strings.Contains(text, "3d"):
		return domain.Category3D
	case strings.Contains(text, "fält") || strings.Contains(text, "field"):
		return domain.CategoryField
	default:
		return domain.CategoryOther
	}
}

// DeriveStatus computes competition status relative to today. The end date
// defaults to the start date. All arguments are YYYY-MM-DD strings, which
// order correctly under plain string comparison.
func DeriveStatus(today, start, end string) domain.Status {
	if end == "" {
		end = start
	}
	switch {
	case end < today:
		return domain.StatusCompleted
	case start <= today:
		return domain.StatusOngoing
	default:
		return domain.StatusUpcoming
	}
}

// NormalizeCompetitions converts parsed calendar events into competitions:
// classifies, derives status against today, synthesizes ids, keeps only
// events starting within [today-30d, today+365d] and sorts ascending by
// start date. The clock is always the caller's, never read here.
func NormalizeCompetitions(events []CalendarEvent, today time.Time, organizer string) []domain.Competition {
	todayStr := today.Format(dateLayout)
	lo := today.AddDate(0, 0, -windowPastDays).Format(dateLayout)
	hi := today.AddDate(0, 0, windowAheadDays).Format(dateLayout)

	comps := make([]domain.Competition, 0, len(events))
	for i, ev := range events {
		if ev.DTStart < lo || ev.DTStart > hi {
			continue
		}

		end := ev.DTEnd
		if end == "" {
			end = ev.DTStart
		}

		uid := ev.UID
		if uid == "" {
			uid = strconv.Itoa(i)
		}

		comps = append(comps, domain.Competition{
			ID:          "ext-" + uid,
			Name:        ev.Summary,
			Description: ev.Description,
			StartDate:   ev.DTStart,
			EndDate:     end,
			Location:    ev.Location,
			Category:    ClassifyCompetition(ev.Summary, ev.Description),
			Status:      DeriveStatus(todayStr, ev.DTStart, end),
			Organizer:   organizer,
			IsExternal:  true,
		})
	}

	sort.SliceStable(comps, func(i, j int) bool { return comps[i].StartDate < comps[j].StartDate })
	return comps
}

// NormalizeNews converts parsed feed items into news entries: derives ids,
// truncates excerpts, substitutes now for unparseable dates, and keeps only
// the three most recent.
func NormalizeNews(items []RawItem, now time.Time, source string) []domain.NewsItem {
	news := make([]domain.NewsItem, 0, len(items))
	for _, item := range items {
		date := now
		if item.HasDate {
			date = item.Published
		}
		news = append(news, domain.NewsItem{
			ID:      shortID(item.GUID),
			Title:   item.Title,
			Excerpt: excerpt(item.Description),
			URL:     item.Link,
			Date:    date,
			Source:  source,
		})
	}

	sort.SliceStable(news, func(i, j int) bool { return news[i].Date.After(news[j].Date) })
	if len(news) > maxNewsItems {
		news = news[:maxNewsItems]
	}
	return news
}

// excerpt caps description text at excerptLimit characters, marking the cut
// with an ellipsis.
func excerpt(s string) string {
	r := []rune(s)
	if len(r) <= excerptLimit {
		return s
	}
	return string(r[:excerptLimit]) + "..."
}

// shortID derives a compact stable token from a feed identifier. The whole
// identifier is hashed and the encoded output truncated, so two long URLs
// sharing a prefix cannot collide on the prefix alone.
func shortID(identifier string) string {
	sum := sha256.Sum256([]byte(identifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])[:12]
}
