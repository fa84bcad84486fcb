package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const datasetHeader = "City1,City2,Month,Passenger_Trips,Aircraft_Trips,Passenger_Load_Factor,Distance_GC_(km),Seats"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dom_city_pair.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadCleansAndParses(t *testing.T) {
	csv := datasetHeader + "\n" +
		"ADELAIDE,BRISBANE,Jan-84,33000,250,71.4,1622,46218\n" +
		"adelaide,brisbane,Feb-84,34000,255,72.1,1622,47156\n" +
		"SYDNEY,MELBOURNE,Mar-23,770000,5100,82.3,706,935000\n"

	records, stats, err := Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if stats.Rows != 3 || stats.Skipped != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	first := records[0]
	if first.Origin != "Adelaide" || first.Destination != "Brisbane" {
		t.Fatalf("city names not canonical: %s, %s", first.Origin, first.Destination)
	}
	if first.Period.Year != 1984 || first.Period.Month != time.January {
		t.Fatalf("month label not parsed: %+v", first.Period)
	}
	if first.PassengerTrips != 33000 || first.AircraftTrips != 250 || first.Seats != 46218 {
		t.Fatalf("counts not parsed: %+v", first)
	}
	if first.LoadFactor != 71.4 || first.DistanceKM != 1622 {
		t.Fatalf("measures not parsed: %+v", first)
	}

	// Two-digit years resolve to the right century at both ends.
	last := records[2]
	if last.Period.Year != 2023 || last.Period.Month != time.March {
		t.Fatalf("expected 2023 March, got %+v", last.Period)
	}
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	csv := datasetHeader + "\n" +
		"SYDNEY,MELBOURNE,Jan-15,100,10,55.5,706,180\n" +
		"SYDNEY,MELBOURNE,January 2015,100,10,55.5,706,180\n" + // bad month label
		"SYDNEY,MELBOURNE,Feb-15,-5,10,55.5,706,180\n" + // negative count
		"SYDNEY,MELBOURNE,Mar-15,100,10,155.5,706,180\n" + // load factor over 100
		"SYDNEY,MELBOURNE,Apr-15,100,10,55.5,-706,180\n" + // negative distance
		",MELBOURNE,May-15,100,10,55.5,706,180\n" + // missing city
		"SYDNEY,MELBOURNE,Jun-15,100,10,55.5,706,180\n"

	records, stats, err := Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 usable records, got %d", len(records))
	}
	if stats.Skipped != 5 {
		t.Fatalf("expected 5 skipped rows, got %d", stats.Skipped)
	}
	if records[0].Period.Month != time.January || records[1].Period.Month != time.June {
		t.Fatalf("kept the wrong rows: %+v", records)
	}
}

func TestLoadKeepsRowsWithoutSeats(t *testing.T) {
	csv := datasetHeader + "\n" +
		"SYDNEY,MELBOURNE,Jan-85,100,10,55.5,706,\n" +
		"SYDNEY,MELBOURNE,Feb-85,100,10,55.5,706,NA\n"

	records, stats, err := Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 || stats.Skipped != 0 {
		t.Fatalf("expected 2 records and no skips, got %d and %d", len(records), stats.Skipped)
	}
	for _, r := range records {
		if r.Seats != 0 {
			t.Fatalf("expected unknown seats to load as 0, got %d", r.Seats)
		}
	}
}

func TestLoadIgnoresExtraColumns(t *testing.T) {
	csv := "Year," + datasetHeader + "\n" +
		"1984,SYDNEY,MELBOURNE,Jan-84,100,10,55.5,706,180\n"

	records, _, err := Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestLoadEmptyFile(t *testing.T) {
	if _, _, err := Load(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty file")
	}
	if _, _, err := Load(strings.NewReader(datasetHeader + "\n")); err == nil {
		t.Fatal("expected error for header-only file")
	}
}

func TestLoadAllRowsUnusable(t *testing.T) {
	csv := datasetHeader + "\n" +
		"SYDNEY,MELBOURNE,bad,100,10,55.5,706,180\n" +
		"SYDNEY,MELBOURNE,worse,100,10,55.5,706,180\n"

	_, stats, err := Load(strings.NewReader(csv))
	if !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
	if stats.Skipped != 2 {
		t.Fatalf("expected 2 skipped rows, got %d", stats.Skipped)
	}
}

func TestLoadMissingColumns(t *testing.T) {
	csv := "City1,City2,Month\nSYDNEY,MELBOURNE,Jan-84\n"

	_, _, err := Load(strings.NewReader(csv))
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
	for _, col := range []string{colPassengerTrips, colSeats} {
		if !strings.Contains(err.Error(), col) {
			t.Fatalf("expected %s in error, got %v", col, err)
		}
	}
}

func TestFileSource(t *testing.T) {
	path := writeCSV(t, datasetHeader+"\n"+
		"SYDNEY,MELBOURNE,Jan-15,100,10,55.5,706,180\n")

	src := NewFileSource(path)
	if src.Name() != path {
		t.Fatalf("expected name %s, got %s", path, src.Name())
	}

	records, stats, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || stats.Rows != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "absent.csv"))
	if _, _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}
