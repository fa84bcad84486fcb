package flights

import "sort"

// Trend sums passenger trips per month over the given records, ordered
// chronologically. Returns ErrNoData when the slice is empty.
func Trend(records []Record) ([]TrendPoint, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}
	totals := make(map[Period]int)
	for _, r := range records {
		totals[r.Period] += r.PassengerTrips
	}
	points := make([]TrendPoint, 0, len(totals))
	for p, n := range totals {
		points = append(points, TrendPoint{Period: p, PassengerTrips: n})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Period.Before(points[j].Period)
	})
	return points, nil
}

// LoadFactorSeries computes one load factor per month, ordered
// chronologically. When a month spans several rows the value is seat
// weighted (total passengers over total seats); months with no seat counts
// fall back to the plain mean of the reported factors.
func LoadFactorSeries(records []Record) ([]LoadFactorPoint, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}
	type bucket struct {
		passengers int
		seats      int
		factorSum  float64
		rows       int
	}
	buckets := make(map[Period]*bucket)
	for _, r := range records {
		b := buckets[r.Period]
		if b == nil {
			b = &bucket{}
			buckets[r.Period] = b
		}
		b.passengers += r.PassengerTrips
		b.seats += r.Seats
		b.factorSum += r.LoadFactor
		b.rows++
	}
	points := make([]LoadFactorPoint, 0, len(buckets))
	for p, b := range buckets {
		factor := b.factorSum / float64(b.rows)
		if b.seats > 0 {
			factor = 100 * float64(b.passengers) / float64(b.seats)
		}
		points = append(points, LoadFactorPoint{Period: p, LoadFactor: factor})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Period.Before(points[j].Period)
	})
	return points, nil
}

// SummarizeCity aggregates the given records for one city. The records must
// already be filtered to rows naming the city as origin or destination;
// ErrNoData is returned when none do.
func SummarizeCity(city string, records []Record) (CitySummary, error) {
	if len(records) == 0 {
		return CitySummary{}, ErrNoData
	}
	s := CitySummary{City: city}
	partners := make(map[string]struct{})
	var factorSum float64
	for _, r := range records {
		s.PassengerTrips += r.PassengerTrips
		s.AircraftTrips += r.AircraftTrips
		s.Seats += r.Seats
		factorSum += r.LoadFactor
		s.Records++
		if s.First.IsZero() || r.Period.Before(s.First) {
			s.First = r.Period
		}
		if s.Last.IsZero() || s.Last.Before(r.Period) {
			s.Last = r.Period
		}
		if r.Origin == city {
			partners[r.Destination] = struct{}{}
		} else {
			partners[r.Origin] = struct{}{}
		}
	}
	s.AvgLoadFactor = factorSum / float64(s.Records)
	s.Routes = len(partners)
	return s, nil
}

// DistanceLoad pairs each record's route distance with its load factor,
// preserving input order. Returns ErrNoData when the slice is empty.
func DistanceLoad(records []Record) ([]DistancePoint, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}
	points := make([]DistancePoint, 0, len(records))
	for _, r := range records {
		points = append(points, DistancePoint{
			DistanceKM: r.DistanceKM,
			LoadFactor: r.LoadFactor,
		})
	}
	return points, nil
}
