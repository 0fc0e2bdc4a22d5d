package cron

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// RunJob runs one registered job by name (case-insensitive).
func RunJob(ctx context.Context, name string) error {
	j, ok := Jobs()[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown job: %s", name)
	}
	return j.Run(ctx)
}

func wrap(name string, run JobFunc) func() {
	return func() {
		start := time.Now()
		if err := run(context.Background()); err != nil {
			log.Printf("cron: job %s failed: %v", name, err)
			return
		}
		log.Printf("cron: job %s done in %s", name, time.Since(start).Round(time.Millisecond))
	}
}

// StartCron schedules every registered job and starts the scheduler.
func StartCron() (*cron.Cron, error) {
	c := cron.New()
	for name, j := range Jobs() {
		sched := j.Schedule()
		if _, err := c.AddFunc(sched, wrap(name, j.Run)); err != nil {
			return nil, fmt.Errorf("register job %s (%q): %w", name, sched, err)
		}
		log.Printf("cron: scheduled %s at %q", name, sched)
	}
	c.Start()
	return c, nil
}
