package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/citypairs/flight-explorer/internal/flights"
)

// Scheduler periodically reloads the dataset from its source. The published
// export changes a few times a year, so reloads are optional; a zero
// interval means the startup load is the only one.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *flights.Service
	source    flights.Source
	interval  time.Duration
}

// New creates a new Scheduler.
func New(source flights.Source, interval time.Duration, service *flights.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		source:    source,
		interval:  interval,
	}
}

// Start schedules the periodic reload and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh disabled; dataset loads once at startup")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		log.Printf("scheduler: reloading dataset from %s", s.source.Name())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := s.service.Reload(ctx, s.source); err != nil {
			// Keep serving the previous snapshot.
			log.Printf("scheduler: reload failed: %v", err)
			return
		}
		log.Println("scheduler: completed dataset reload")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
