package internal

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// NewScheduler runs task once immediately, then every interval until the
// scheduler is shut down. Runs never overlap; a run that is still busy when
// the next one is due causes that one to be skipped.
func NewScheduler(interval time.Duration, task func() error) (gocron.Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %s", interval)
	}

	if err := task(); err != nil {
		return nil, fmt.Errorf("initial run of job failed: %w", err)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := task(); err != nil {
				log.Printf("Scheduled run failed: %v", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	log.Printf("Scheduled job every %s", interval)
	scheduler.Start()
	return scheduler, nil
}
