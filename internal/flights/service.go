package flights

import (
	"context"
	"fmt"
	"log"
)

// Service answers queries against the current dataset snapshot and
// coordinates reloads from a Source.
type Service struct {
	store     Store
	direction Direction
}

// NewService builds a Service over the given store. The direction policy is
// applied to any criteria that leave Direction unset.
func NewService(store Store, direction Direction) *Service {
	if direction == "" {
		direction = DirectionEither
	}
	return &Service{store: store, direction: direction}
}

// Reload loads a fresh dataset from the source and swaps it into the store.
// The previous snapshot stays visible until the swap, and is kept when the
// load fails.
func (s *Service) Reload(ctx context.Context, src Source) error {
	records, stats, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset from %s: %w", src.Name(), err)
	}
	ds := NewDataset(records, src.Name(), stats)
	s.store.Swap(ds)
	log.Printf("INFO: loaded dataset %s from %s: %d records, %d cities, %d rows skipped",
		ds.ID, ds.Source, len(ds.Records), len(ds.Cities), ds.Skipped)
	return nil
}

// Dataset returns the current snapshot metadata and records.
func (s *Service) Dataset() (*Dataset, error) {
	return s.store.Current()
}

// Cities returns the sorted canonical city names of the current snapshot.
func (s *Service) Cities() ([]string, error) {
	ds, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	return ds.Cities, nil
}

// Records returns the records matching the criteria. An empty result is not
// an error.
func (s *Service) Records(c Criteria) ([]Record, error) {
	ds, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	return Filter(ds.Records, s.normalize(c)), nil
}

// Trend returns the monthly passenger-trip series for the criteria.
func (s *Service) Trend(c Criteria) ([]TrendPoint, error) {
	records, err := s.Records(c)
	if err != nil {
		return nil, err
	}
	return Trend(records)
}

// LoadFactor returns the monthly load-factor series for the criteria.
func (s *Service) LoadFactor(c Criteria) ([]LoadFactorPoint, error) {
	records, err := s.Records(c)
	if err != nil {
		return nil, err
	}
	return LoadFactorSeries(records)
}

// DistanceLoad returns distance/load-factor pairs for the criteria.
func (s *Service) DistanceLoad(c Criteria) ([]DistancePoint, error) {
	records, err := s.Records(c)
	if err != nil {
		return nil, err
	}
	return DistanceLoad(records)
}

// CitySummary aggregates every record naming the city as origin or
// destination. The match is endpoint-based regardless of the configured
// pair direction.
func (s *Service) CitySummary(city string) (CitySummary, error) {
	ds, err := s.store.Current()
	if err != nil {
		return CitySummary{}, err
	}
	city = CanonicalCity(city)
	records := Filter(ds.Records, Criteria{Origin: city, Direction: DirectionEither})
	return SummarizeCity(city, records)
}

// CitySummaries returns a summary per city in the current snapshot, in city
// order.
func (s *Service) CitySummaries() ([]CitySummary, error) {
	ds, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	summaries := make([]CitySummary, 0, len(ds.Cities))
	for _, city := range ds.Cities {
		records := Filter(ds.Records, Criteria{Origin: city, Direction: DirectionEither})
		sum, err := SummarizeCity(city, records)
		if err != nil {
			continue
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

func (s *Service) normalize(c Criteria) Criteria {
	if c.Origin != "" {
		c.Origin = CanonicalCity(c.Origin)
	}
	if c.Destination != "" {
		c.Destination = CanonicalCity(c.Destination)
	}
	if c.Direction == "" {
		c.Direction = s.direction
	}
	return c
}
