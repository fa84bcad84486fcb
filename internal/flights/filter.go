package flights

import "fmt"

// Direction controls how city criteria are matched against a record's
// endpoints. The source table stores each city pair once, in alphabetical
// column order, so DirectionEither is the faithful reading; DirectionDirected
// is for datasets that publish true origin/destination rows.
type Direction string

const (
	DirectionEither   Direction = "either"
	DirectionDirected Direction = "directed"
)

// ParseDirection validates a direction policy name.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionEither, DirectionDirected:
		return Direction(s), nil
	case "":
		return DirectionEither, nil
	}
	return "", fmt.Errorf("invalid pair direction %q; use %q or %q", s, DirectionEither, DirectionDirected)
}

// Criteria selects a subset of records. Zero-valued fields are ignored, so
// the empty Criteria matches everything. City names must be canonical
// (CanonicalCity) and periods are inclusive bounds.
type Criteria struct {
	Origin      string
	Destination string
	From        Period
	To          Period
	Direction   Direction
}

// Matches reports whether the record satisfies every set criterion.
func (c Criteria) Matches(r Record) bool {
	if !c.From.IsZero() && r.Period.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && c.To.Before(r.Period) {
		return false
	}
	if c.Direction == DirectionDirected {
		if c.Origin != "" && r.Origin != c.Origin {
			return false
		}
		if c.Destination != "" && r.Destination != c.Destination {
			return false
		}
		return true
	}
	switch {
	case c.Origin != "" && c.Destination != "":
		forward := r.Origin == c.Origin && r.Destination == c.Destination
		reverse := r.Origin == c.Destination && r.Destination == c.Origin
		return forward || reverse
	case c.Origin != "":
		return r.Origin == c.Origin || r.Destination == c.Origin
	case c.Destination != "":
		return r.Origin == c.Destination || r.Destination == c.Destination
	}
	return true
}

// Filter returns the records matching the criteria, preserving input order.
// An empty result is valid and is not an error.
func Filter(records []Record, c Criteria) []Record {
	var out []Record
	for _, r := range records {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
