package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, calendarHandler, newsHandler http.HandlerFunc) *Service {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/calendar.ics", calendarHandler)
	mux.HandleFunc("/news.xml", newsHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return NewService(ServiceConfig{
		Fetcher:     NewFetcher(5*time.Second, "test-agent", false),
		CalendarURL: server.URL + "/calendar.ics",
		NewsURL:     server.URL + "/news.xml",
		Organizer:   "SVBF",
		NewsSource:  "SVBF",
	})
}

func serveText(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(text))
	}
}

func serveError() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}
}

const testICS = `BEGIN:VCALENDAR
BEGIN:VEVENT
UID:ev-1
SUMMARY:DM Utomhus
DTSTART:20250620
DTEND:20250621
END:VEVENT
END:VCALENDAR`

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Förbundsnytt</title>
	<item>
		<title>Nyhet 1</title>
		<link>https://example.com/1</link>
		<description>Första nyheten</description>
		<pubDate>Mon, 09 Jun 2025 10:00:00 +0200</pubDate>
		<guid>n1</guid>
	</item>
</channel>
</rss>`

func TestService_Competitions_Upstream(t *testing.T) {
	svc := newTestService(t, serveText(testICS), serveText(testRSS))
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	res := svc.Competitions(context.Background(), now)
	assert.Equal(t, SourceUpstream, res.Source)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, now, res.LastUpdated)
	require.Len(t, res.Competitions, 1)
	assert.Equal(t, "ext-ev-1", res.Competitions[0].ID)
	assert.Equal(t, "SVBF", res.Competitions[0].Organizer)
}

func TestService_Competitions_FallbackOnFetchError(t *testing.T) {
	svc := newTestService(t, serveError(), serveText(testRSS))
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	res := svc.Competitions(context.Background(), now)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, 2, res.Count)
	require.Len(t, res.Competitions, 2)
}

func TestService_Competitions_FallbackOnEmptyCalendar(t *testing.T) {
	svc := newTestService(t, serveText("no events here"), serveText(testRSS))
	res := svc.Competitions(context.Background(), time.Now())
	assert.Equal(t, SourceFallback, res.Source)
	assert.Len(t, res.Competitions, 2)
}

func TestService_News_Upstream(t *testing.T) {
	svc := newTestService(t, serveText(testICS), serveText(testRSS))
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	news := svc.News(context.Background(), now)
	require.Len(t, news, 1)
	assert.Equal(t, "Nyhet 1", news[0].Title)
	assert.Equal(t, "https://example.com/1", news[0].URL)
	assert.Equal(t, "SVBF", news[0].Source)
}

func TestService_News_FallbackOnFetchError(t *testing.T) {
	svc := newTestService(t, serveText(testICS), serveError())
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	news := svc.News(context.Background(), now)
	require.Len(t, news, 3, "fallback always carries three entries")
	assert.Equal(t, now, news[0].Date)
}

func TestService_News_FallbackOnEmptyBody(t *testing.T) {
	svc := newTestService(t, serveText(testICS), serveText(""))
	news := svc.News(context.Background(), time.Now())
	require.Len(t, news, 3)
}

func TestService_News_FallbackOnZeroItems(t *testing.T) {
	empty := `<?xml version="1.0"?><rss version="2.0"><channel><title>Tomt</title></channel></rss>`
	svc := newTestService(t, serveText(testICS), serveText(empty))
	news := svc.News(context.Background(), time.Now())
	require.Len(t, news, 3)
}

func TestService_Warmup(t *testing.T) {
	svc := newTestService(t, serveText(testICS), serveText(testRSS))
	// warmup must not panic or fail even with a cancelled context
	svc.Warmup(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Warmup(ctx)
}
