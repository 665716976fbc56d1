package scheduler_jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"sync"
	"time"

	"blackLedger/services/common"
	"blackLedger/services/pickService"
	"blackLedger/services/xpService"

	"gorm.io/gorm"
)

const (
	JobGenerate = "generate"
	JobGrade    = "grade"
	JobCleanup  = "cleanup"
)

var ErrJobRunning = errors.New("another job is already running")

type Generator interface {
	GenerateBlackLedgerPicks(ctx context.Context) (*pickService.BatchResult, error)
}

type Grader interface {
	GradeLockedPicks(ctx context.Context) (*xpService.GradeSummary, error)
}

type Cleaner interface {
	CleanupMocks(ctx context.Context, marker string) (int64, error)
}

type Observer interface {
	ObserveJob(job string, start time.Time, err error)
}

// Jobs runs generation, grading and cleanup one at a time. A job that starts
// while another holds the lock fails with ErrJobRunning instead of waiting.
type Jobs struct {
	db        *gorm.DB
	generator Generator
	grader    Grader
	cleaner   Cleaner
	observer  Observer
	mu        sync.Mutex
}

func NewJobs(db *gorm.DB, generator Generator, grader Grader, cleaner Cleaner, observer Observer) *Jobs {
	return &Jobs{
		db:        db,
		generator: generator,
		grader:    grader,
		cleaner:   cleaner,
		observer:  observer,
	}
}

func (j *Jobs) run(ctx context.Context, name string, fn func(ctx context.Context) error) (err error) {
	if !j.mu.TryLock() {
		log.Printf("Skipping %s: %v", name, ErrJobRunning)
		return ErrJobRunning
	}
	defer j.mu.Unlock()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered in %s: %v", name, r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in %s: %v", name, r)
		}
		if err != nil {
			common.LogError(j.db, name, err)
		}
		if j.observer != nil {
			j.observer.ObserveJob(name, start, err)
		}
	}()

	return fn(ctx)
}
