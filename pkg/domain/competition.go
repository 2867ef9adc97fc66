package domain

// Category classifies a competition by discipline environment.
type Category string

// Known competition categories. Classification is a keyword heuristic,
// anything unrecognized lands in CategoryOther.
const (
	CategoryOutdoor Category = "outdoor"
	CategoryIndoor  Category = "indoor"
	Category3D      Category = "3d"
	CategoryField   Category = "field"
	CategoryOther   Category = "other"
)

// Status places a competition relative to a given day. It is always derived
// from the date range, never stored.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

// Competition is an externally sourced competition normalized for the public
// calendar page. Dates are YYYY-MM-DD strings as delivered by the upstream
// calendar; EndDate equals StartDate for single-day events.
type Competition struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Location    string   `json:"location"`
	Category    Category `json:"category"`
	Status      Status   `json:"status"`
	Organizer   string   `json:"organizer"`
	IsExternal  bool     `json:"isExternal"`
}
