package feed

import (
	"log"
	"strings"
)

// CalendarEvent is a single VEVENT lifted out of the upstream competition
// calendar. Dates are normalized to YYYY-MM-DD; everything else is kept as
// raw text.
type CalendarEvent struct {
	Summary     string
	Description string
	Location    string
	UID         string
	DTStart     string
	DTEnd       string
}

// ParseCalendar scans raw ICS text for BEGIN:VEVENT/END:VEVENT blocks and
// extracts the properties the site cares about. The upstream federation feed
// is sloppy: events arrive as bare fragments without a VCALENDAR envelope,
// property names carry timezone parameters (DTSTART;TZID=...), and junk lines
// show up between events. The scanner tolerates all of that. Events without a
// summary or a resolvable start date are dropped silently. It never returns
// an error; hopeless input just yields fewer events.
func ParseCalendar(icsText string) (events []CalendarEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] calendar parse panic, dropping feed: %v", r)
			events = nil
		}
	}()

	var cur *CalendarEvent
	for _, line := range strings.Split(icsText, "\n") {
		line = strings.TrimRight(line, "\r")

		if strings.HasPrefix(line, "BEGIN:VEVENT") {
			cur = &CalendarEvent{}
			continue
		}
		if strings.HasPrefix(line, "END:VEVENT") {
			if cur != nil && cur.Summary != "" && cur.DTStart != "" {
				events = append(events, *cur)
			}
			cur = nil
			continue
		}
		if cur == nil {
			continue
		}

		// split on the first colon only, values may contain URLs
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		// property parameters ride after a semicolon (DTSTART;TZID=...)
		name, _, _ := strings.Cut(key, ";")

		switch {
		case name == "SUMMARY":
			cur.Summary = strings.TrimSpace(value)
		case name == "DESCRIPTION":
			cur.Description = strings.TrimSpace(value)
		case name == "LOCATION":
			cur.Location = strings.TrimSpace(value)
		case name == "UID":
			cur.UID = strings.TrimSpace(value)
		case strings.HasPrefix(name, "DTSTART"):
			cur.DTStart = normalizeICSDate(value)
		case strings.HasPrefix(name, "DTEND"):
			cur.DTEnd = normalizeICSDate(value)
		}
	}
	return events
}

// normalizeICSDate turns an ICS date value (YYYYMMDD, YYYYMMDDTHHMMSS,
// YYYYMMDDTHHMMSSZ) into YYYY-MM-DD. Returns empty string when the value
// does not start with 8 digits.
func normalizeICSDate(v string) string {
	v = strings.TrimSpace(v)
	if i := strings.IndexByte(v, 'T'); i >= 0 {
		v = v[:i]
	}
	v = strings.TrimSuffix(v, "Z")
	if len(v) < 8 {
		return ""
	}
	v = v[:8]
	for _, c := range v {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return v[:4] + "-" + v[4:6] + "-" + v[6:8]
}
