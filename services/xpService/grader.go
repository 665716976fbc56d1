package xpService

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"blackLedger/models"
)

const (
	LegDelimiter   = ","
	HitMarker      = "hit"
	HitBonusXP     = 100
	LegHitXP       = 25
	LegMissPenalty = 50
	XPPerLevel     = 750
	MaxLevel       = 100
)

var ErrUserNotFound = errors.New("user not found")

// Grade is the outcome of one locked pick.
type Grade struct {
	Result     string
	LegsHit    int
	LegsMissed int
}

// SimulateParlayGrade counts legs carrying the hit marker. An empty legs
// string is one missed leg.
func SimulateParlayGrade(legs string) Grade {
	parts := strings.Split(legs, LegDelimiter)

	hit := 0
	for _, leg := range parts {
		if strings.Contains(strings.ToLower(leg), HitMarker) {
			hit++
		}
	}

	grade := Grade{LegsHit: hit, LegsMissed: len(parts) - hit}
	if hit == len(parts) {
		grade.Result = models.LockedHit
	} else {
		grade.Result = models.LockedMiss
	}
	return grade
}

// XPDelta is a flat bonus for a full hit, otherwise per-leg credit minus a
// heavier per-leg penalty. It may be negative.
func XPDelta(grade Grade) int {
	if grade.Result == models.LockedHit {
		return HitBonusXP
	}
	return grade.LegsHit*LegHitXP - grade.LegsMissed*LegMissPenalty
}

// AwardXP applies delta with a floor of 0 and advances at most one level. It
// reports whether the user leveled up.
func AwardXP(user *models.User, delta int) bool {
	user.XP += delta
	if user.XP < 0 {
		user.XP = 0
	}
	if user.Level < 1 {
		user.Level = 1
	}

	if user.XP >= user.Level*XPPerLevel && user.Level < MaxLevel {
		user.Level++
		return true
	}
	return false
}

type Store interface {
	PendingLockedPicks(ctx context.Context) ([]models.LockedPick, error)
	// FindUser returns an error wrapping ErrUserNotFound for unknown ids.
	FindUser(ctx context.Context, id uint) (*models.User, error)
	// SaveGrade writes the pick status and the user's xp and level together.
	SaveGrade(ctx context.Context, pick *models.LockedPick, user *models.User) error
}

type Recorder interface {
	LockedPickGraded(result string)
	XPAwarded(delta int)
}

type nopRecorder struct{}

func (nopRecorder) LockedPickGraded(string) {}

func (nopRecorder) XPAwarded(int) {}

type GradeSummary struct {
	Graded       int
	Hits         int
	Misses       int
	MissingUsers int
	LevelUps     int
	NetXP        int
}

// Grader settles pending locked picks. Two graders must not run against the
// same store at once; a pick is selected and updated without row locks.
type Grader struct {
	store    Store
	recorder Recorder
}

type Option func(*Grader)

func WithRecorder(recorder Recorder) Option {
	return func(g *Grader) {
		g.recorder = recorder
	}
}

func NewGrader(store Store, opts ...Option) *Grader {
	g := &Grader{store: store, recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GradeLockedPicks grades every pending locked pick once. Picks whose user is
// gone stay pending. The first storage error stops the run; picks graded
// before it keep their new status.
func (g *Grader) GradeLockedPicks(ctx context.Context) (*GradeSummary, error) {
	pending, err := g.store.PendingLockedPicks(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading pending locked picks: %w", err)
	}

	summary := &GradeSummary{}
	for i := range pending {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		pick := &pending[i]

		user, err := g.store.FindUser(ctx, pick.UserID)
		if errors.Is(err, ErrUserNotFound) {
			summary.MissingUsers++
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("loading user %d: %w", pick.UserID, err)
		}

		grade := SimulateParlayGrade(pick.Legs)
		delta := XPDelta(grade)
		pick.Status = grade.Result
		leveled := AwardXP(user, delta)

		if err := g.store.SaveGrade(ctx, pick, user); err != nil {
			return summary, fmt.Errorf("saving grade for locked pick %d: %w", pick.ID, err)
		}

		summary.Graded++
		summary.NetXP += delta
		if grade.Result == models.LockedHit {
			summary.Hits++
		} else {
			summary.Misses++
			log.Printf("%s | +%d XP | -%d XP | Net: %d", user.Username,
				grade.LegsHit*LegHitXP, grade.LegsMissed*LegMissPenalty, delta)
		}
		if leveled {
			summary.LevelUps++
			log.Printf("%s leveled up to Level %d!", user.Username, user.Level)
		}

		g.recorder.LockedPickGraded(grade.Result)
		g.recorder.XPAwarded(delta)
	}

	log.Printf("Graded %d pending picks (%d skipped).", summary.Graded, summary.MissingUsers)
	return summary, nil
}
