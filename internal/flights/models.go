package flights

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrNoData is returned by aggregations when no records match the query.
	ErrNoData = errors.New("no data for query")
)

// Period identifies one calendar month of the dataset.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// ParsePeriod parses a period in "2006-01" form.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q; use YYYY-MM", s)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// IsZero reports whether the period is unset.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// Before reports whether p is chronologically before q.
func (p Period) Before(q Period) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	return p.Month < q.Month
}

// Time returns the first instant of the period's month in UTC.
func (p Period) Time() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Record is one row of the city-pair dataset: monthly traffic between two
// Australian cities. Records are immutable once loaded.
type Record struct {
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	Period         Period  `json:"period"`
	PassengerTrips int     `json:"passengerTrips"`
	AircraftTrips  int     `json:"aircraftTrips"`
	Seats          int     `json:"seats"`
	LoadFactor     float64 `json:"loadFactorPct"` // passengers/seats, percent 0-100
	DistanceKM     float64 `json:"distanceKm"`    // great-circle distance
}

// TrendPoint is one step of a passenger-trip trend series.
type TrendPoint struct {
	Period         Period `json:"period"`
	PassengerTrips int    `json:"passengerTrips"`
}

// LoadFactorPoint is one step of a load-factor series.
type LoadFactorPoint struct {
	Period     Period  `json:"period"`
	LoadFactor float64 `json:"loadFactorPct"`
}

// DistancePoint pairs a record's route distance with its load factor, for
// scatter-style presentation. No statistical model is computed beyond the
// raw pairing.
type DistancePoint struct {
	DistanceKM float64 `json:"distanceKm"`
	LoadFactor float64 `json:"loadFactorPct"`
}

// CitySummary aggregates every record that names the city as either origin
// or destination.
type CitySummary struct {
	City           string  `json:"city"`
	PassengerTrips int     `json:"passengerTrips"`
	AircraftTrips  int     `json:"aircraftTrips"`
	Seats          int     `json:"seats"`
	AvgLoadFactor  float64 `json:"avgLoadFactorPct"`
	Routes         int     `json:"routes"` // distinct partner cities
	Records        int     `json:"records"`
	First          Period  `json:"first"`
	Last           Period  `json:"last"`
}

// LoadStats describes the outcome of one dataset load.
type LoadStats struct {
	Rows    int `json:"rows"`
	Skipped int `json:"skipped"`
}

// Dataset is one immutable load of the city-pair table. A new load produces
// a new Dataset; an existing one is never mutated.
type Dataset struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loadedAt"` // always UTC
	Skipped  int       `json:"skippedRows"`
	Records  []Record  `json:"-"`
	Cities   []string  `json:"-"` // sorted, canonical names
}

// NewDataset builds a Dataset snapshot from loaded records, deriving the
// sorted city list and tagging the load with a fresh ID.
func NewDataset(records []Record, source string, stats LoadStats) *Dataset {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.Origin] = struct{}{}
		seen[r.Destination] = struct{}{}
	}
	cities := make([]string, 0, len(seen))
	for c := range seen {
		cities = append(cities, c)
	}
	sort.Strings(cities)

	return &Dataset{
		ID:       uuid.NewString(),
		Source:   source,
		LoadedAt: time.Now().UTC(),
		Skipped:  stats.Skipped,
		Records:  records,
		Cities:   cities,
	}
}

// CanonicalCity normalizes a city name to the dataset's Title Case naming,
// so matching is exact equality against the cleaned source data.
func CanonicalCity(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}
