package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Pruner is the slice of the result cache the janitor needs.
type Pruner interface {
	PruneExpired() int
}

// Janitor periodically sweeps expired entries out of the result cache.
// Lookups already treat expired entries as absent; the sweep only keeps the
// map from growing between lookups.
type Janitor struct {
	scheduler *gocron.Scheduler
	cache     Pruner
	interval  time.Duration
}

// New creates a Janitor.
func New(cache Pruner, interval time.Duration) *Janitor {
	return &Janitor{
		scheduler: gocron.NewScheduler(time.UTC),
		cache:     cache,
		interval:  interval,
	}
}

// Start schedules the periodic sweep and starts the underlying scheduler.
func (j *Janitor) Start() error {
	minutes := int(j.interval.Minutes())
	if minutes <= 0 {
		minutes = 10
	}

	_, err := j.scheduler.Every(minutes).Minutes().Do(func() {
		if removed := j.cache.PruneExpired(); removed > 0 {
			log.Printf("cache janitor: removed %d expired entries", removed)
		}
	})
	if err != nil {
		return err
	}

	j.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future sweeps.
func (j *Janitor) Stop() {
	if j.scheduler != nil {
		j.scheduler.Stop()
	}
}
