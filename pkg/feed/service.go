package feed

import (
	"context"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/svbf/portal/pkg/domain"
)

// Envelope source values for the competitions feed.
const (
	SourceUpstream = "upstream"
	SourceFallback = "fallback"
)

// CompetitionsResult is the envelope returned for the external competitions
// feed. Consumers rely on Count, Source and LastUpdated being present.
type CompetitionsResult struct {
	Competitions []domain.Competition `json:"competitions"`
	Count        int                  `json:"count"`
	Source       string               `json:"source"`
	LastUpdated  time.Time            `json:"lastUpdated"`
}

// TextFetcher retrieves raw feed text from a URL.
type TextFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Service glues fetching, parsing and normalization for both upstream feeds.
// Any failure on the way, network or content, degrades to the canned fallback
// payload; feed endpoints never surface errors to visitors.
type Service struct {
	fetcher     TextFetcher
	calendarURL string
	newsURL     string
	organizer   string
	newsSource  string
}

// ServiceConfig holds the feed service wiring.
type ServiceConfig struct {
	Fetcher     TextFetcher
	CalendarURL string
	NewsURL     string
	Organizer   string // stamped on every normalized competition
	NewsSource  string // label stamped on every news item
}

// NewService creates a feed service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		fetcher:     cfg.Fetcher,
		calendarURL: cfg.CalendarURL,
		newsURL:     cfg.NewsURL,
		organizer:   cfg.Organizer,
		newsSource:  cfg.NewsSource,
	}
}

// Competitions fetches and normalizes the external competition calendar.
// now drives the status math, the date window and the LastUpdated stamp.
func (s *Service) Competitions(ctx context.Context, now time.Time) CompetitionsResult {
	icsText, err := s.fetcher.Fetch(ctx, s.calendarURL)
	if err != nil {
		log.Printf("[WARN] calendar feed unavailable, serving fallback: %v", err)
		return s.fallbackCompetitions(now)
	}

	events := ParseCalendar(icsText)
	if len(events) == 0 {
		log.Printf("[WARN] calendar feed yielded no events, serving fallback")
		return s.fallbackCompetitions(now)
	}

	comps := NormalizeCompetitions(events, now, s.organizer)
	return CompetitionsResult{
		Competitions: comps,
		Count:        len(comps),
		Source:       SourceUpstream,
		LastUpdated:  now,
	}
}

func (s *Service) fallbackCompetitions(now time.Time) CompetitionsResult {
	comps := FallbackCompetitions(now, s.organizer)
	return CompetitionsResult{
		Competitions: comps,
		Count:        len(comps),
		Source:       SourceFallback,
		LastUpdated:  now,
	}
}

// News fetches and normalizes the external news feed, returning at most
// three entries. Failures and empty feeds degrade to the canned fallback.
func (s *Service) News(ctx context.Context, now time.Time) []domain.NewsItem {
	xmlText, err := s.fetcher.Fetch(ctx, s.newsURL)
	if err != nil || strings.TrimSpace(xmlText) == "" {
		log.Printf("[WARN] news feed unavailable, serving fallback: %v", err)
		return FallbackNews(now, s.newsSource)
	}

	items := ParseRSS(xmlText)
	if len(items) == 0 {
		log.Printf("[WARN] news feed yielded no items, serving fallback")
		return FallbackNews(now, s.newsSource)
	}

	return NormalizeNews(items, now, s.newsSource)
}

// Warmup probes both upstream feeds once so cold-start latency and upstream
// health show up in the log right after start. Failures are logged by the
// feed methods themselves; warmup never fails.
func (s *Service) Warmup(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res := s.Competitions(ctx, time.Now())
		log.Printf("[INFO] calendar warmup: %d competitions, source %s", res.Count, res.Source)
		return nil
	})
	g.Go(func() error {
		news := s.News(ctx, time.Now())
		log.Printf("[INFO] news warmup: %d items", len(news))
		return nil
	})
	_ = g.Wait()
}
