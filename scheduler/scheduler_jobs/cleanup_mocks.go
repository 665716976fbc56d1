package scheduler_jobs

import (
	"context"
	"log"
)

func (j *Jobs) CleanupMocks(ctx context.Context, marker string) (int64, error) {
	var deleted int64
	err := j.run(ctx, JobCleanup, func(ctx context.Context) error {
		var err error
		deleted, err = j.cleaner.CleanupMocks(ctx, marker)
		if err == nil {
			log.Printf("Deleted %d mock picks", deleted)
		}
		return err
	})
	return deleted, err
}
