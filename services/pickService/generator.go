package pickService

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"blackLedger/models"
	"blackLedger/services/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// BaseWinChance is the model's starting estimate for every recommended side.
	BaseWinChance     = 80.0
	PicksPerTier      = 3
	MinEventsPerSport = 3
)

var (
	ErrInsufficientEvents = errors.New("not enough events today")
	ErrStorage            = errors.New("storage error")
)

// BatchResult summarizes one GenerateBlackLedgerPicks run.
type BatchResult struct {
	BatchID        string
	StartedAt      time.Time
	PicksBySport   map[string]int
	ParlaysBySport map[string]int
	Parlays        []*models.BlackLedgerPick
	Mystery        *models.BlackLedgerPick
	SkippedSports  []string
	ShortSports    []string
}

func (r *BatchResult) TotalPicks() int {
	total := 0
	for _, n := range r.PicksBySport {
		total += n
	}
	return total
}

// Generator produces single-game picks and parlays for every sport in Sports.
// It keeps no locks; callers must not run two generations against the same
// store at once.
type Generator struct {
	provider   EventProvider
	store      PickStore
	rng        *rand.Rand
	now        func() time.Time
	recorder   Recorder
	notifier   Notifier
	newBatchID func() string
}

type Option func(*Generator)

func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(g *Generator) {
		g.recorder = recorder
	}
}

func WithNotifier(notifier Notifier) Option {
	return func(g *Generator) {
		g.notifier = notifier
	}
}

func WithBatchIDs(newID func() string) Option {
	return func(g *Generator) {
		g.newBatchID = newID
	}
}

func NewGenerator(provider EventProvider, store PickStore, opts ...Option) *Generator {
	g := &Generator{
		provider:   provider,
		store:      store,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
		recorder:   nopRecorder{},
		newBatchID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// GenerateBlackLedgerPicks runs single-game picks and parlays for every sport
// and appends the results to the store. A sport whose events cannot be
// fetched is skipped entirely. A sport with too few games today still gets
// parlays. Storage failures for one sport do not stop the others; all of them
// are returned joined once the run finishes.
func (g *Generator) GenerateBlackLedgerPicks(ctx context.Context) (*BatchResult, error) {
	result := &BatchResult{
		BatchID:        g.newBatchID(),
		StartedAt:      g.now().UTC(),
		PicksBySport:   map[string]int{},
		ParlaysBySport: map[string]int{},
	}

	var errs []error
	var parlays []*models.BlackLedgerPick

	for _, sport := range Sports {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		log.Printf("Checking %s games...", sport.Name)
		events, err := g.provider.ListEvents(ctx, sport.Key)
		if err != nil {
			log.Printf("Failed to fetch %s games: %v", sport.Name, err)
			g.recorder.ProviderError(strings.ToLower(sport.Name))
			result.SkippedSports = append(result.SkippedSports, sport.Name)
			continue
		}

		count, err := g.generateSportPicks(ctx, sport, TodaysEvents(events, g.now()))
		switch {
		case errors.Is(err, ErrInsufficientEvents):
			log.Printf("Skipping %s single-game picks: %v", sport.Name, err)
			result.ShortSports = append(result.ShortSports, sport.Name)
		case err != nil:
			errs = append(errs, fmt.Errorf("%s picks: %w", sport.Name, err))
			continue
		default:
			result.PicksBySport[sport.Name] = count
		}

		sportParlays := BuildParlays(g.rng, sport, g.now().UTC(), result.BatchID)
		parlays = append(parlays, sportParlays...)
	}

	if mystery := AssignMystery(g.rng, parlays); mystery != nil {
		log.Printf("Mystery Pick assigned: %s %s %s", mystery.Sport, mystery.Tier, mystery.Summary)
	}

	if len(parlays) > 0 {
		for _, parlay := range parlays {
			g.store.AddParlay(parlay)
		}
		if err := g.store.Commit(ctx); err != nil {
			errs = append(errs, fmt.Errorf("parlays: %w", err))
		} else {
			for _, parlay := range parlays {
				result.ParlaysBySport[strings.ToUpper(parlay.Sport)]++
				if parlay.IsMystery {
					result.Mystery = parlay
				}
				g.recorder.ParlayGenerated(parlay.Sport, parlay.Tier)
			}
			result.Parlays = parlays
			log.Printf("Saved %d parlays.", len(parlays))
		}
	}

	if g.notifier != nil {
		if err := g.notifier.NotifyBatch(ctx, result); err != nil {
			log.Printf("Error sending batch notification: %v", err)
		}
	}

	return result, errors.Join(errs...)
}

func (g *Generator) generateSportPicks(ctx context.Context, sport Sport, events []Event) (int, error) {
	if len(events) < MinEventsPerSport {
		return 0, fmt.Errorf("%w: %d %s games", ErrInsufficientEvents, len(events), sport.Name)
	}

	used := map[int]bool{}
	tierCounts := map[string]int{}
	var accepted []*models.Pick

	for len(accepted) < len(Tiers)*PicksPerTier && len(used) < len(events) {
		idx := g.rng.Intn(len(events))
		if used[idx] {
			continue
		}
		used[idx] = true

		pick := g.scoreEvent(ctx, sport, events[idx])
		if tierCounts[pick.Tier] >= PicksPerTier {
			continue
		}

		tierCounts[pick.Tier]++
		accepted = append(accepted, pick)
		g.store.AddPick(pick)
	}

	if err := g.store.Commit(ctx); err != nil {
		return 0, err
	}

	for _, pick := range accepted {
		g.recorder.PickGenerated(pick.Sport, pick.Tier)
		log.Printf("Saved %s pick: %s (%s)", pick.Tier, pick.PickText, pick.HitChance)
	}
	return len(accepted), nil
}

func (g *Generator) scoreEvent(ctx context.Context, sport Sport, event Event) *models.Pick {
	// the home side is always the recommendation
	team := event.HomeTeam
	isHome := true

	sportsbook, odds := g.provider.BestPrice(ctx, event.ID, MarketMoneyline, sport.Key)
	implied := common.ImpliedOrDefault(odds)

	modelChance, contextFlags := AdjustForContext(g.rng, BaseWinChance, isHome)
	edge := modelChance - implied

	summary := fmt.Sprintf("%s vs %s", team, event.AwayTeam)
	if len(contextFlags) > 0 {
		summary += " | " + strings.Join(contextFlags, "; ")
	}

	return &models.Pick{
		Model:           gorm.Model{CreatedAt: g.now().UTC()},
		Sport:           strings.ToLower(sport.Name),
		Tier:            GetTier(modelChance),
		PickText:        fmt.Sprintf("%s to win", team),
		Summary:         summary,
		Confidence:      GetConfidenceGrade(modelChance),
		HitChance:       fmt.Sprintf("%.0f%%", modelChance),
		Sportsbook:      sportsbook,
		Odds:            odds,
		SmartlineValue:  GradeSmartline(edge),
		PublicFadeValue: GradePublicFade(SimulatePublicPercentage(g.rng), modelChance),
	}
}

// TodaysEvents keeps events starting on now's UTC calendar date that name two
// distinct teams.
func TodaysEvents(events []Event, now time.Time) []Event {
	today := now.UTC().Format("2006-01-02")

	var out []Event
	for _, e := range events {
		if e.HomeTeam == "" || e.AwayTeam == "" || e.HomeTeam == e.AwayTeam {
			continue
		}
		if e.CommenceTime.UTC().Format("2006-01-02") != today {
			continue
		}
		out = append(out, e)
	}
	return out
}
