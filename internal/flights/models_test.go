package flights

import (
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("1984-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Year != 1984 || p.Month != time.January {
		t.Fatalf("expected 1984 January, got %d %s", p.Year, p.Month)
	}

	for _, bad := range []string{"Jan-84", "1984", "2015-13", "2015-00", "nonsense", ""} {
		if _, err := ParsePeriod(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestPeriodOrdering(t *testing.T) {
	dec2015 := Period{Year: 2015, Month: time.December}
	jan2016 := Period{Year: 2016, Month: time.January}

	if !dec2015.Before(jan2016) {
		t.Fatalf("expected %s before %s", dec2015, jan2016)
	}
	if jan2016.Before(dec2015) {
		t.Fatalf("did not expect %s before %s", jan2016, dec2015)
	}
	if dec2015.Before(dec2015) {
		t.Fatal("a period must not be before itself")
	}
}

func TestPeriodString(t *testing.T) {
	p := Period{Year: 1984, Month: time.March}
	if got := p.String(); got != "1984-03" {
		t.Fatalf("expected 1984-03, got %s", got)
	}
	back, err := ParsePeriod(p.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back != p {
		t.Fatalf("expected %v, got %v", p, back)
	}
}

func TestCanonicalCity(t *testing.T) {
	cases := map[string]string{
		"SYDNEY":        "Sydney",
		"sydney":        "Sydney",
		" Melbourne ":   "Melbourne",
		"GOLD COAST":    "Gold Coast",
		"alice springs": "Alice Springs",
	}
	for in, want := range cases {
		if got := CanonicalCity(in); got != want {
			t.Fatalf("CanonicalCity(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestNewDatasetDerivesCities(t *testing.T) {
	records := []Record{
		{Origin: "Sydney", Destination: "Melbourne"},
		{Origin: "Adelaide", Destination: "Sydney"},
		{Origin: "Melbourne", Destination: "Perth"},
	}
	ds := NewDataset(records, "test.csv", LoadStats{Rows: 3, Skipped: 1})

	want := []string{"Adelaide", "Melbourne", "Perth", "Sydney"}
	if len(ds.Cities) != len(want) {
		t.Fatalf("expected %d cities, got %d", len(want), len(ds.Cities))
	}
	for i, c := range want {
		if ds.Cities[i] != c {
			t.Fatalf("expected city %q at %d, got %q", c, i, ds.Cities[i])
		}
	}
	if ds.ID == "" {
		t.Fatal("expected a dataset id")
	}
	if ds.Source != "test.csv" {
		t.Fatalf("expected source test.csv, got %s", ds.Source)
	}
	if ds.Skipped != 1 {
		t.Fatalf("expected 1 skipped row, got %d", ds.Skipped)
	}
}
