// Package gui builds the desktop dashboard for exploring the dataset:
// filter controls on top, chart and summary tabs below.
package gui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/citypairs/flight-explorer/internal/charts"
	"github.com/citypairs/flight-explorer/internal/flights"
)

// anyCity is the destination option matching every partner city.
const anyCity = "(any)"

// Dashboard wires the filter controls, chart canvas and summary view to the
// flights service.
type Dashboard struct {
	window  fyne.Window
	service *flights.Service
	source  flights.Source

	originSelect *widget.Select
	destSelect   *widget.Select
	fromEntry    *widget.Entry
	toEntry      *widget.Entry

	chartImage   *canvas.Image
	summaryLabel *widget.Label
	statusLabel  *widget.Label
	tabs         *container.AppTabs
}

// New builds the dashboard content for the window.
func New(window fyne.Window, service *flights.Service, source flights.Source) fyne.CanvasObject {
	d := &Dashboard{window: window, service: service, source: source}
	content := d.build()
	d.refreshCities()
	d.showDatasetStatus()
	return content
}

func (d *Dashboard) build() fyne.CanvasObject {
	d.originSelect = widget.NewSelect(nil, nil)
	d.originSelect.PlaceHolder = "origin city"
	d.destSelect = widget.NewSelect(nil, nil)
	d.destSelect.PlaceHolder = anyCity

	d.fromEntry = widget.NewEntry()
	d.fromEntry.SetPlaceHolder("YYYY-MM")
	d.toEntry = widget.NewEntry()
	d.toEntry.SetPlaceHolder("YYYY-MM")

	d.chartImage = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	d.chartImage.FillMode = canvas.ImageFillContain
	d.chartImage.SetMinSize(fyne.NewSize(920, 440))

	d.summaryLabel = widget.NewLabel("Pick an origin city and press City summary.")
	d.statusLabel = widget.NewLabel("")

	filters := container.NewHBox(
		widget.NewLabel("Origin"), d.originSelect,
		widget.NewLabel("Destination"), d.destSelect,
		widget.NewLabel("From"), container.NewGridWrap(fyne.NewSize(110, 38), d.fromEntry),
		widget.NewLabel("To"), container.NewGridWrap(fyne.NewSize(110, 38), d.toEntry),
	)
	actions := container.NewHBox(
		widget.NewButton("Passenger trend", d.onTrend),
		widget.NewButton("Load factor", d.onLoadFactor),
		widget.NewButton("Distance vs load", d.onDistanceLoad),
		widget.NewButton("City summary", d.onSummary),
		widget.NewButton("Reload data", d.onReload),
	)

	chartScroll := container.NewVScroll(d.chartImage)
	chartScroll.SetMinSize(fyne.NewSize(920, 460))
	summaryScroll := container.NewVScroll(d.summaryLabel)

	d.tabs = container.NewAppTabs(
		container.NewTabItem("Chart", chartScroll),
		container.NewTabItem("Summary", summaryScroll),
	)

	top := container.NewVBox(filters, actions)
	return container.NewBorder(top, d.statusLabel, nil, nil, d.tabs)
}

func (d *Dashboard) onTrend() {
	crit, ok := d.criteria(true)
	if !ok {
		return
	}
	points, err := d.service.Trend(crit)
	if err != nil {
		d.showError(err)
		return
	}
	img, err := charts.TrendLine(points, routeLabel(crit)+" passenger trips")
	if err != nil {
		d.showError(err)
		return
	}
	d.showChart(img)
	d.statusLabel.SetText(fmt.Sprintf("%s: %d months", routeLabel(crit), len(points)))
}

func (d *Dashboard) onLoadFactor() {
	crit, ok := d.criteria(true)
	if !ok {
		return
	}
	points, err := d.service.LoadFactor(crit)
	if err != nil {
		d.showError(err)
		return
	}
	img, err := charts.LoadFactorLine(points, routeLabel(crit)+" load factor")
	if err != nil {
		d.showError(err)
		return
	}
	d.showChart(img)
	d.statusLabel.SetText(fmt.Sprintf("%s: %d months", routeLabel(crit), len(points)))
}

func (d *Dashboard) onDistanceLoad() {
	crit, ok := d.criteria(false)
	if !ok {
		return
	}
	points, err := d.service.DistanceLoad(crit)
	if err != nil {
		d.showError(err)
		return
	}
	img, err := charts.DistanceScatter(points, routeLabel(crit)+" distance vs load factor")
	if err != nil {
		d.showError(err)
		return
	}
	d.showChart(img)
	d.statusLabel.SetText(fmt.Sprintf("%s: %d records", routeLabel(crit), len(points)))
}

func (d *Dashboard) onSummary() {
	city := d.originSelect.Selected
	if city == "" {
		d.statusLabel.SetText("pick an origin city first")
		return
	}
	summary, err := d.service.CitySummary(city)
	if err != nil {
		d.showError(err)
		return
	}
	d.summaryLabel.SetText(summaryText(summary))
	d.tabs.SelectIndex(1)
	d.statusLabel.SetText(fmt.Sprintf("%s: %d records across %d routes", summary.City, summary.Records, summary.Routes))
}

func (d *Dashboard) onReload() {
	if err := d.service.Reload(context.Background(), d.source); err != nil {
		dialog.ShowError(err, d.window)
		return
	}
	d.refreshCities()
	d.showDatasetStatus()
}

// criteria reads the filter controls. When requireOrigin is set and no
// origin city is picked, a status hint is shown instead.
func (d *Dashboard) criteria(requireOrigin bool) (flights.Criteria, bool) {
	crit := flights.Criteria{Origin: d.originSelect.Selected}
	if requireOrigin && crit.Origin == "" {
		d.statusLabel.SetText("pick an origin city first")
		return crit, false
	}
	if dst := d.destSelect.Selected; dst != "" && dst != anyCity {
		crit.Destination = dst
	}
	if v := strings.TrimSpace(d.fromEntry.Text); v != "" {
		p, err := flights.ParsePeriod(v)
		if err != nil {
			dialog.ShowError(err, d.window)
			return crit, false
		}
		crit.From = p
	}
	if v := strings.TrimSpace(d.toEntry.Text); v != "" {
		p, err := flights.ParsePeriod(v)
		if err != nil {
			dialog.ShowError(err, d.window)
			return crit, false
		}
		crit.To = p
	}
	if !crit.From.IsZero() && !crit.To.IsZero() && crit.To.Before(crit.From) {
		dialog.ShowError(fmt.Errorf("from %s is after to %s", crit.From, crit.To), d.window)
		return crit, false
	}
	return crit, true
}

func (d *Dashboard) refreshCities() {
	cities, err := d.service.Cities()
	if err != nil {
		d.statusLabel.SetText(err.Error())
		return
	}
	d.originSelect.Options = cities
	d.destSelect.Options = append([]string{anyCity}, cities...)
	d.originSelect.Refresh()
	d.destSelect.Refresh()
}

func (d *Dashboard) showDatasetStatus() {
	ds, err := d.service.Dataset()
	if err != nil {
		d.statusLabel.SetText(err.Error())
		return
	}
	d.statusLabel.SetText(fmt.Sprintf("dataset: %d records, %d cities (%s)",
		len(ds.Records), len(ds.Cities), ds.Source))
}

func (d *Dashboard) showChart(data []byte) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		dialog.ShowError(fmt.Errorf("decode chart: %w", err), d.window)
		return
	}
	d.chartImage.Image = img
	d.chartImage.Refresh()
	d.tabs.SelectIndex(0)
}

func (d *Dashboard) showError(err error) {
	if errors.Is(err, flights.ErrNoData) {
		d.statusLabel.SetText("no data available for this selection")
		return
	}
	dialog.ShowError(err, d.window)
}

func summaryText(s flights.CitySummary) string {
	return fmt.Sprintf(`%s

Passenger trips:      %d
Aircraft trips:       %d
Seats:                %d
Average load factor:  %.1f%%
Routes served:        %d
Records:              %d
Coverage:             %s to %s`,
		s.City, s.PassengerTrips, s.AircraftTrips, s.Seats,
		s.AvgLoadFactor, s.Routes, s.Records, s.First, s.Last)
}

func routeLabel(c flights.Criteria) string {
	switch {
	case c.Origin != "" && c.Destination != "":
		return c.Origin + " to " + c.Destination
	case c.Origin != "":
		return c.Origin
	}
	return "All routes"
}
