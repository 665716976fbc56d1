package scheduler_jobs

import (
	"context"
	"log"

	"blackLedger/services/pickService"
)

// GeneratePicks runs one full pick and parlay batch. The batch result is
// returned even when some sports failed.
func (j *Jobs) GeneratePicks(ctx context.Context) (*pickService.BatchResult, error) {
	var result *pickService.BatchResult
	err := j.run(ctx, JobGenerate, func(ctx context.Context) error {
		var err error
		result, err = j.generator.GenerateBlackLedgerPicks(ctx)
		if result != nil {
			log.Printf("Batch %s: %d picks, %d parlays", result.BatchID, result.TotalPicks(), len(result.Parlays))
		}
		return err
	})
	return result, err
}
