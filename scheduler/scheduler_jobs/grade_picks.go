package scheduler_jobs

import (
	"context"

	"blackLedger/services/xpService"
)

func (j *Jobs) GradePicks(ctx context.Context) (*xpService.GradeSummary, error) {
	var summary *xpService.GradeSummary
	err := j.run(ctx, JobGrade, func(ctx context.Context) error {
		var err error
		summary, err = j.grader.GradeLockedPicks(ctx)
		return err
	})
	return summary, err
}
