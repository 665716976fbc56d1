package scheduler

import (
	"testing"
	"time"

	"blackLedger/scheduler/scheduler_jobs"

	"github.com/robfig/cron/v3"
)

func TestScheduleSpecs(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

	generate, err := parser.Parse(GenerateSpec)
	if err != nil {
		t.Fatalf("bad generation schedule: %v", err)
	}
	from := time.Date(2026, 10, 14, 9, 30, 0, 0, loc)
	var got []string
	next := from
	for i := 0; i < 4; i++ {
		next = generate.Next(next)
		got = append(got, next.Format("02 15:04"))
	}
	want := []string{"14 12:00", "14 15:00", "14 18:00", "15 12:00"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("run %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	grade, err := parser.Parse(GradeSpec)
	if err != nil {
		t.Fatalf("bad grading schedule: %v", err)
	}
	if n := grade.Next(from); !n.Equal(time.Date(2026, 10, 14, 10, 0, 0, 0, loc)) {
		t.Errorf("expected hourly grading at 10:00, got %v", n)
	}
}

func TestSetupCron(t *testing.T) {
	c, err := SetupCron(scheduler_jobs.NewJobs(nil, nil, nil, nil, nil), nil, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Stop()
	if len(c.Entries()) != 2 {
		t.Errorf("expected 2 entries, got %d", len(c.Entries()))
	}
}
