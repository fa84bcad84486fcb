package main

import (
	"context"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/citypairs/flight-explorer/internal/config"
	"github.com/citypairs/flight-explorer/internal/dataset"
	"github.com/citypairs/flight-explorer/internal/flights"
	"github.com/citypairs/flight-explorer/internal/gui"
	"github.com/citypairs/flight-explorer/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	memStore := store.NewMemoryStore(cfg.StoreMaxHistory)

	var source flights.Source
	if cfg.DatasetURL != "" {
		source = dataset.NewHTTPSource(cfg.DatasetURL, cfg.HTTPTimeout)
	} else {
		source = dataset.NewFileSource(cfg.DatasetPath)
	}

	service := flights.NewService(memStore, cfg.PairDirection)

	// The dashboard is useless without data; fail fast on a bad file.
	if err := service.Reload(context.Background(), source); err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}

	a := app.New()
	w := a.NewWindow("Australian Domestic Flights")
	w.SetContent(gui.New(w, service, source))
	w.Resize(fyne.NewSize(1024, 720))
	w.ShowAndRun()
}
