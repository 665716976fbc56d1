package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"blackLedger/scheduler/scheduler_jobs"
	"blackLedger/services/common"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	// noon, 3pm and 6pm
	GenerateSpec = "0 0 12,15,18 * * *"
	// top of every hour
	GradeSpec = "0 0 * * * *"
)

// JobTimeout bounds a single scheduled run.
var JobTimeout = 10 * time.Minute

func SetupCron(jobs *scheduler_jobs.Jobs, db *gorm.DB, loc *time.Location) (*cron.Cron, error) {
	if loc == nil {
		loc = time.Local
	}
	cronService := cron.New(cron.WithSeconds(), cron.WithLocation(loc))

	_, err := cronService.AddFunc(GenerateSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), JobTimeout)
		defer cancel()
		if _, err := jobs.GeneratePicks(ctx); err != nil && !errors.Is(err, scheduler_jobs.ErrJobRunning) {
			log.Println(err)
		}
	})
	if err != nil {
		common.LogError(db, "CRON ERR", err)
		return nil, fmt.Errorf("scheduling generation: %w", err)
	}

	_, err = cronService.AddFunc(GradeSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), JobTimeout)
		defer cancel()
		if _, err := jobs.GradePicks(ctx); err != nil && !errors.Is(err, scheduler_jobs.ErrJobRunning) {
			log.Println(err)
		}
	})
	if err != nil {
		common.LogError(db, "CRON ERR", err)
		return nil, fmt.Errorf("scheduling grading: %w", err)
	}

	cronService.Start()
	log.Printf("Scheduler started (%s): generation %q, grading %q", loc, GenerateSpec, GradeSpec)
	return cronService, nil
}
