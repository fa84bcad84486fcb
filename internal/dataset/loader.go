// Package dataset loads the Australian domestic city-pair CSV export into
// domain records, cleaning city names and month labels on the way in.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/citypairs/flight-explorer/internal/flights"
)

// Column names of the published export. Extra columns are ignored.
const (
	colCity1          = "City1"
	colCity2          = "City2"
	colMonth          = "Month"
	colPassengerTrips = "Passenger_Trips"
	colAircraftTrips  = "Aircraft_Trips"
	colLoadFactor     = "Passenger_Load_Factor"
	colDistance       = "Distance_GC_(km)"
	colSeats          = "Seats"
)

// monthLayout matches the export's month labels, e.g. "Jan-84".
const monthLayout = "Jan-06"

var requiredColumns = []string{
	colCity1, colCity2, colMonth,
	colPassengerTrips, colAircraftTrips,
	colLoadFactor, colDistance, colSeats,
}

var (
	// ErrEmptyDataset is returned when the file yields no usable rows.
	ErrEmptyDataset = errors.New("dataset has no usable rows")
	// ErrMissingColumns is returned when required columns are absent.
	ErrMissingColumns = errors.New("dataset missing required columns")
)

// Load reads the CSV export from r and returns the cleaned records. City
// names are canonicalized and month labels parsed; rows that fail to parse
// or violate the column ranges are skipped and counted. Structural problems
// (no rows, missing columns) are errors.
func Load(r io.Reader) ([]flights.Record, flights.LoadStats, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, flights.LoadStats{}, fmt.Errorf("read dataset: %w", df.Err)
	}
	if missing := missingColumns(df.Names()); len(missing) > 0 {
		return nil, flights.LoadStats{}, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	for _, col := range []string{colCity1, colCity2} {
		df = df.Mutate(
			series.New(df.Col(col).Map(canonicalize), series.String, col),
		)
	}
	if df.Err != nil {
		return nil, flights.LoadStats{}, fmt.Errorf("clean dataset: %w", df.Err)
	}

	var (
		city1  = df.Col(colCity1).Records()
		city2  = df.Col(colCity2).Records()
		months = df.Col(colMonth).Records()
		pax    = df.Col(colPassengerTrips).Records()
		air    = df.Col(colAircraftTrips).Records()
		load   = df.Col(colLoadFactor).Records()
		dist   = df.Col(colDistance).Records()
		seats  = df.Col(colSeats).Records()
	)

	records := make([]flights.Record, 0, df.Nrow())
	stats := flights.LoadStats{}
	for i := 0; i < df.Nrow(); i++ {
		rec, ok := buildRecord(city1[i], city2[i], months[i], pax[i], air[i], load[i], dist[i], seats[i])
		if !ok {
			stats.Skipped++
			continue
		}
		records = append(records, rec)
	}
	stats.Rows = len(records)
	if len(records) == 0 {
		return nil, stats, ErrEmptyDataset
	}
	return records, stats, nil
}

func buildRecord(city1, city2, month, pax, air, load, dist, seats string) (flights.Record, bool) {
	if city1 == "" || city2 == "" {
		return flights.Record{}, false
	}
	t, err := time.Parse(monthLayout, strings.TrimSpace(month))
	if err != nil {
		return flights.Record{}, false
	}
	paxN, err := parseCount(pax)
	if err != nil {
		return flights.Record{}, false
	}
	airN, err := parseCount(air)
	if err != nil {
		return flights.Record{}, false
	}
	loadF, err := strconv.ParseFloat(strings.TrimSpace(load), 64)
	if err != nil || loadF < 0 || loadF > 100 {
		return flights.Record{}, false
	}
	distF, err := strconv.ParseFloat(strings.TrimSpace(dist), 64)
	if err != nil || distF < 0 {
		return flights.Record{}, false
	}
	// Seats are blank for some early years; treat those as unknown, not bad.
	seatsN := 0
	if v := strings.TrimSpace(seats); v != "" && !strings.EqualFold(v, "na") {
		seatsN, err = parseCount(v)
		if err != nil {
			return flights.Record{}, false
		}
	}
	return flights.Record{
		Origin:         city1,
		Destination:    city2,
		Period:         flights.Period{Year: t.Year(), Month: t.Month()},
		PassengerTrips: paxN,
		AircraftTrips:  airN,
		Seats:          seatsN,
		LoadFactor:     loadF,
		DistanceKM:     distF,
	}, true
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}

func canonicalize(e series.Element) series.Element {
	e.Set(flights.CanonicalCity(e.String()))
	return e
}

func missingColumns(names []string) []string {
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}
	var missing []string
	for _, c := range requiredColumns {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// FileSource loads the dataset from a CSV file on disk.
type FileSource struct {
	path string
}

// NewFileSource builds a Source reading from path.
func NewFileSource(path string) FileSource {
	return FileSource{path: path}
}

// Name returns the file path.
func (s FileSource) Name() string { return s.path }

// Load reads and parses the file.
func (s FileSource) Load(ctx context.Context) ([]flights.Record, flights.LoadStats, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, flights.LoadStats{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Load(f)
}
