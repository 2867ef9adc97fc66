package feed

import (
	"time"

	"github.com/svbf/portal/pkg/domain"
)

// Fallback payloads keep the public pages non-empty when an upstream feed is
// unreachable or unusable. The sample content itself is not a contract; the
// "never show an empty page or an error to the visitor" policy is.

// FallbackCompetitions returns the canned competition list served when the
// calendar feed fails. Dates are synthesized relative to today so statuses
// stay plausible; status is derived, as everywhere else.
func FallbackCompetitions(today time.Time, organizer string) []domain.Competition {
	todayStr := today.Format(dateLayout)

	first := domain.Competition{
		ID:          "fallback-1",
		Name:        "Distriktsmästerskap Utomhus",
		Description: "DM utomhus för alla klasser, 70m/50m rond.",
		StartDate:   today.AddDate(0, 0, 14).Format(dateLayout),
		EndDate:     today.AddDate(0, 0, 15).Format(dateLayout),
		Location:    "Rocklunda IP, Västerås",
		Category:    domain.CategoryOutdoor,
		Organizer:   organizer,
		IsExternal:  true,
	}
	first.Status = DeriveStatus(todayStr, first.StartDate, first.EndDate)

	second := domain.Competition{
		ID:          "fallback-2",
		Name:        "Höstjakten 3D",
		Description: "3D-runda i skogsterräng, 28 mål.",
		StartDate:   today.AddDate(0, 0, 45).Format(dateLayout),
		EndDate:     today.AddDate(0, 0, 45).Format(dateLayout),
		Location:    "Surahammar",
		Category:    domain.Category3D,
		Organizer:   organizer,
		IsExternal:  true,
	}
	second.Status = DeriveStatus(todayStr, second.StartDate, second.EndDate)

	return []domain.Competition{first, second}
}

// FallbackNews returns the canned news entries served when the news feed
// fails, with dates staggered backwards from now so the page still reads as
// current.
func FallbackNews(now time.Time, source string) []domain.NewsItem {
	return []domain.NewsItem{
		{
			ID:      "fallback-news-1",
			Title:   "Nya distriktsrekord godkända",
			Excerpt: "Styrelsen har fastställt tre nya distriktsrekord från höstens tävlingar. Fullständig rekordlista finns under fliken Distriktsrekord.",
			URL:     "https://www.bagskytte.se/",
			Date:    now,
			Source:  source,
		},
		{
			ID:      "fallback-news-2",
			Title:   "Kallelse till årsmöte",
			Excerpt: "Distriktets årsmöte hålls i mars. Motioner ska vara styrelsen tillhanda senast fyra veckor före mötet.",
			URL:     "https://www.bagskytte.se/",
			Date:    now.AddDate(0, 0, -1),
			Source:  source,
		},
		{
			ID:      "fallback-news-3",
			Title:   "Utbildningshelg för tränare",
			Excerpt: "Förbundet bjuder in till utbildningshelg för tränare steg 1 och 2. Anmälan är öppen till månadsskiftet.",
			URL:     "https://www.bagskytte.se/",
			Date:    now.AddDate(0, 0, -2),
			Source:  source,
		},
	}
}
