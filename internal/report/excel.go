// Package report builds spreadsheet exports of the dataset aggregations.
// Workbooks are streamed to the caller, never written to disk.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/citypairs/flight-explorer/internal/flights"
)

const (
	summarySheet = "City Summary"
	recordsSheet = "Records"
)

var summaryHeaders = []string{
	"City", "Passenger Trips", "Aircraft Trips", "Seats",
	"Avg Load Factor (%)", "Routes", "Records", "First Month", "Last Month",
}

var recordHeaders = []string{
	"Origin", "Destination", "Month", "Passenger Trips",
	"Aircraft Trips", "Seats", "Load Factor (%)", "Distance (km)",
}

// BuildSummaryWorkbook lays one city summary per row onto a workbook.
func BuildSummaryWorkbook(summaries []flights.CitySummary) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", summarySheet)

	if err := writeHeaders(f, summarySheet, summaryHeaders); err != nil {
		return nil, err
	}
	for i, s := range summaries {
		row := i + 2
		cells := []interface{}{
			s.City, s.PassengerTrips, s.AircraftTrips, s.Seats,
			s.AvgLoadFactor, s.Routes, s.Records,
			s.First.String(), s.Last.String(),
		}
		if err := writeRow(f, summarySheet, row, cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// AppendRecords adds a sheet listing a filtered subset of raw records.
func AppendRecords(f *excelize.File, records []flights.Record) error {
	if _, err := f.NewSheet(recordsSheet); err != nil {
		return fmt.Errorf("add records sheet: %w", err)
	}
	if err := writeHeaders(f, recordsSheet, recordHeaders); err != nil {
		return err
	}
	for i, r := range records {
		row := i + 2
		cells := []interface{}{
			r.Origin, r.Destination, r.Period.String(),
			r.PassengerTrips, r.AircraftTrips, r.Seats,
			r.LoadFactor, r.DistanceKM,
		}
		if err := writeRow(f, recordsSheet, row, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeHeaders(f *excelize.File, sheet string, headers []string) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("write header %q: %w", header, err)
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("header column: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, 18); err != nil {
			return fmt.Errorf("size column %s: %w", col, err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	for i, v := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}
	return nil
}
