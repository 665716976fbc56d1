package pickService

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"blackLedger/models"
)

var testNow = time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)

type fakeProvider struct {
	events map[string][]Event
	errs   map[string]error
	odds   string
	priced int
}

func (f *fakeProvider) ListEvents(ctx context.Context, sportKey string) ([]Event, error) {
	if err := f.errs[sportKey]; err != nil {
		return nil, err
	}
	return f.events[sportKey], nil
}

func (f *fakeProvider) BestPrice(ctx context.Context, eventID string, market string, sportKey string) (string, string) {
	f.priced++
	if f.odds == "" {
		return "Unavailable", "N/A"
	}
	return "FanDuel", f.odds
}

type fakeStore struct {
	pendingPicks   []*models.Pick
	pendingParlays []*models.BlackLedgerPick
	picks          []*models.Pick
	parlays        []*models.BlackLedgerPick
	commits        int
	failCommits    map[int]bool
}

func (s *fakeStore) AddPick(pick *models.Pick) {
	s.pendingPicks = append(s.pendingPicks, pick)
}

func (s *fakeStore) AddParlay(parlay *models.BlackLedgerPick) {
	s.pendingParlays = append(s.pendingParlays, parlay)
}

func (s *fakeStore) Commit(ctx context.Context) error {
	s.commits++
	picks, parlays := s.pendingPicks, s.pendingParlays
	s.pendingPicks, s.pendingParlays = nil, nil
	if s.failCommits[s.commits] {
		return fmt.Errorf("%w: disk full", ErrStorage)
	}
	s.picks = append(s.picks, picks...)
	s.parlays = append(s.parlays, parlays...)
	return nil
}

func makeEvents(sportKey string, n int, start time.Time) []Event {
	events := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, Event{
			ID:           fmt.Sprintf("%s-%d", sportKey, i),
			HomeTeam:     fmt.Sprintf("Home %d", i),
			AwayTeam:     fmt.Sprintf("Away %d", i),
			CommenceTime: start,
			SportKey:     sportKey,
		})
	}
	return events
}

type labelRecorder struct {
	sports []string
}

func (r *labelRecorder) PickGenerated(sport string, tier string) { r.sports = append(r.sports, sport) }
func (r *labelRecorder) ParlayGenerated(sport string, tier string) { r.sports = append(r.sports, sport) }
func (r *labelRecorder) ProviderError(sport string) { r.sports = append(r.sports, sport) }

func newTestGenerator(provider EventProvider, store PickStore, seed int64) *Generator {
	return NewGenerator(provider, store,
		WithRand(rand.New(rand.NewSource(seed))),
		WithClock(func() time.Time { return testNow }),
		WithBatchIDs(func() string { return "batch-1" }),
	)
}

func countBy(picks []*models.Pick, sport string) map[string]int {
	counts := map[string]int{}
	for _, p := range picks {
		if p.Sport == sport {
			counts[p.Tier]++
		}
	}
	return counts
}

func countMystery(parlays []*models.BlackLedgerPick) int {
	n := 0
	for _, p := range parlays {
		if p.IsMystery {
			n++
		}
	}
	return n
}

func TestGenerateRespectsTierQuota(t *testing.T) {
	tonight := testNow.Add(8 * time.Hour)
	provider := &fakeProvider{
		events: map[string][]Event{
			"basketball_nba":       makeEvents("basketball_nba", 25, tonight),
			"americanfootball_nfl": makeEvents("americanfootball_nfl", 12, tonight),
			"baseball_mlb":         makeEvents("baseball_mlb", 15, tonight),
			"icehockey_nhl":        makeEvents("icehockey_nhl", 9, tonight),
		},
		odds: "-110",
	}
	store := &fakeStore{}

	result, err := newTestGenerator(provider, store, 11).GenerateBlackLedgerPicks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, sport := range []string{"nba", "nfl", "mlb", "nhl"} {
		counts := countBy(store.picks, sport)
		total := 0
		for tier, n := range counts {
			if n > PicksPerTier {
				t.Errorf("%s %s: %d picks exceeds quota", sport, tier, n)
			}
			total += n
		}
		if total > len(Tiers)*PicksPerTier {
			t.Errorf("%s: %d picks exceeds run cap", sport, total)
		}
		// the home side never drops below 71, so High cannot occur
		if counts[TierHigh] != 0 {
			t.Errorf("%s: unexpected High picks %d", sport, counts[TierHigh])
		}
	}

	if counts := countBy(store.picks, "nba"); counts[TierSafe] != PicksPerTier {
		t.Errorf("expected the Safe quota to fill from 25 NBA games, got %d", counts[TierSafe])
	}
	if result.TotalPicks() != len(store.picks) {
		t.Errorf("result reports %d picks, store has %d", result.TotalPicks(), len(store.picks))
	}

	for _, p := range store.picks {
		if p.Odds != "-110" || p.Sportsbook != "FanDuel" {
			t.Errorf("unexpected price on pick: %+v", p)
		}
		assertEqual(t, GetTier(parseHitChance(t, p.HitChance)), p.Tier, "tier follows hit chance")
		if !p.CreatedAt.Equal(testNow) {
			t.Errorf("expected created at %v, got %v", testNow, p.CreatedAt)
		}
	}
}

func parseHitChance(t *testing.T, s string) float64 {
	t.Helper()
	var v float64
	if _, err := fmt.Sscanf(s, "%f%%", &v); err != nil {
		t.Fatalf("bad hit chance %q: %v", s, err)
	}
	return v
}

func TestGenerateSkipsSportWithTooFewEvents(t *testing.T) {
	tonight := testNow.Add(2 * time.Hour)
	provider := &fakeProvider{
		events: map[string][]Event{
			"basketball_nba": makeEvents("basketball_nba", 2, tonight),
		},
		odds: "+100",
	}
	store := &fakeStore{}

	result, err := newTestGenerator(provider, store, 3).GenerateBlackLedgerPicks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := len(countBy(store.picks, "nba")); n != 0 {
		t.Errorf("expected no NBA single-game picks, got tiers %v", countBy(store.picks, "nba"))
	}
	if provider.priced != 0 {
		t.Errorf("expected no price lookups, got %d", provider.priced)
	}

	nbaParlays := 0
	for _, p := range store.parlays {
		if p.Sport == "nba" {
			nbaParlays++
		}
	}
	if nbaParlays != len(parlayTiers)*ParlaysPerTier {
		t.Errorf("expected %d NBA parlays, got %d", len(parlayTiers)*ParlaysPerTier, nbaParlays)
	}
	if len(result.ShortSports) != 4 {
		t.Errorf("expected every sport flagged short, got %v", result.ShortSports)
	}
}

func TestGenerateIgnoresNonTodayEvents(t *testing.T) {
	tomorrow := testNow.Add(24 * time.Hour)
	events := append(makeEvents("basketball_nba", 10, tomorrow), makeEvents("basketball_nba", 2, testNow.Add(time.Hour))...)
	provider := &fakeProvider{events: map[string][]Event{"basketball_nba": events}, odds: "-110"}
	store := &fakeStore{}

	if _, err := newTestGenerator(provider, store, 5).GenerateBlackLedgerPicks(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.picks) != 0 {
		t.Errorf("only 2 games are today, expected no picks, got %d", len(store.picks))
	}
}

func TestGenerateProviderFailureSkipsOnlyThatSport(t *testing.T) {
	tonight := testNow.Add(4 * time.Hour)
	provider := &fakeProvider{
		events: map[string][]Event{
			"americanfootball_nfl": makeEvents("americanfootball_nfl", 10, tonight),
		},
		errs: map[string]error{
			"basketball_nba": errors.New("odds provider unavailable: 500"),
		},
		odds: "-110",
	}
	store := &fakeStore{}

	result, err := newTestGenerator(provider, store, 8).GenerateBlackLedgerPicks(context.Background())
	if err != nil {
		t.Fatalf("provider failures are not returned, got %v", err)
	}
	if len(result.SkippedSports) != 1 || result.SkippedSports[0] != "NBA" {
		t.Errorf("expected NBA skipped, got %v", result.SkippedSports)
	}
	for _, p := range store.parlays {
		if p.Sport == "nba" {
			t.Fatalf("skipped sport must not get parlays")
		}
	}
	if len(countBy(store.picks, "nfl")) == 0 {
		t.Errorf("expected NFL picks despite NBA failure")
	}
	if len(store.parlays) != 3*len(parlayTiers)*ParlaysPerTier {
		t.Errorf("expected parlays for the 3 remaining sports, got %d", len(store.parlays))
	}
}

func TestGenerateStorageFailureContinuesOtherSports(t *testing.T) {
	tonight := testNow.Add(4 * time.Hour)
	provider := &fakeProvider{
		events: map[string][]Event{
			"basketball_nba":       makeEvents("basketball_nba", 10, tonight),
			"americanfootball_nfl": makeEvents("americanfootball_nfl", 10, tonight),
		},
		odds: "-110",
	}
	// commit 1 is the NBA single-game batch
	store := &fakeStore{failCommits: map[int]bool{1: true}}

	result, err := newTestGenerator(provider, store, 21).GenerateBlackLedgerPicks(context.Background())
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if len(countBy(store.picks, "nba")) != 0 {
		t.Errorf("failed NBA commit must not persist picks")
	}
	if len(countBy(store.picks, "nfl")) == 0 {
		t.Errorf("NFL picks must still be saved")
	}
	for _, p := range store.parlays {
		if p.Sport == "nba" {
			t.Fatalf("NBA parlays must be skipped after its commit failed")
		}
	}
	if result.PicksBySport["NBA"] != 0 {
		t.Errorf("expected no NBA picks in result, got %d", result.PicksBySport["NBA"])
	}
}

func TestGenerateAssignsExactlyOneMystery(t *testing.T) {
	provider := &fakeProvider{odds: "-110"}
	store := &fakeStore{}

	result, err := newTestGenerator(provider, store, 13).GenerateBlackLedgerPicks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := countMystery(store.parlays); got != 1 {
		t.Fatalf("expected exactly one mystery pick across the batch, got %d", got)
	}
	if result.Mystery == nil || !result.Mystery.IsMystery {
		t.Errorf("result must expose the mystery pick")
	}
	for _, p := range store.parlays {
		assertEqual(t, "batch-1", p.BatchID, "batch id")
	}
}

func TestGenerateNoParlaysNoMystery(t *testing.T) {
	errs := map[string]error{}
	for _, s := range Sports {
		errs[s.Key] = errors.New("down")
	}
	provider := &fakeProvider{errs: errs}
	store := &fakeStore{}

	result, err := newTestGenerator(provider, store, 17).GenerateBlackLedgerPicks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.parlays) != 0 || result.Mystery != nil {
		t.Errorf("expected no parlays and no mystery, got %d parlays", len(store.parlays))
	}
	if store.commits != 0 {
		t.Errorf("expected no commits, got %d", store.commits)
	}
}

func TestGenerateMissingOddsFallsBack(t *testing.T) {
	provider := &fakeProvider{
		events: map[string][]Event{"baseball_mlb": makeEvents("baseball_mlb", 6, testNow.Add(time.Hour))},
	}
	store := &fakeStore{}

	if _, err := newTestGenerator(provider, store, 4).GenerateBlackLedgerPicks(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.picks) == 0 {
		t.Fatalf("expected picks even without prices")
	}
	for _, p := range store.picks {
		assertEqual(t, "N/A", p.Odds, "odds text")
		assertEqual(t, "Unavailable", p.Sportsbook, "sportsbook")
		// implied falls back to 50, so the edge is at least 21 points
		assertEqual(t, SmartlineHigh, p.SmartlineValue, "smartline")
	}
}

type recordingNotifier struct {
	results []*BatchResult
}

func (n *recordingNotifier) NotifyBatch(ctx context.Context, result *BatchResult) error {
	n.results = append(n.results, result)
	return errors.New("discord down")
}

func TestGenerateNotifierFailureIsIgnored(t *testing.T) {
	notifier := &recordingNotifier{}
	g := NewGenerator(&fakeProvider{}, &fakeStore{},
		WithRand(rand.New(rand.NewSource(1))),
		WithClock(func() time.Time { return testNow }),
		WithNotifier(notifier),
	)

	if _, err := g.GenerateBlackLedgerPicks(context.Background()); err != nil {
		t.Fatalf("notifier errors must not fail the batch, got %v", err)
	}
	if len(notifier.results) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.results))
	}
	if notifier.results[0].Mystery == nil {
		t.Errorf("expected mystery in notification")
	}
}

func TestTodaysEvents(t *testing.T) {
	events := []Event{
		{ID: "a", HomeTeam: "A", AwayTeam: "B", CommenceTime: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)},
		{ID: "b", HomeTeam: "A", AwayTeam: "B", CommenceTime: time.Date(2026, 10, 14, 23, 59, 0, 0, time.UTC)},
		{ID: "c", HomeTeam: "A", AwayTeam: "B", CommenceTime: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)},
		{ID: "d", HomeTeam: "A", AwayTeam: "", CommenceTime: testNow},
		{ID: "e", HomeTeam: "A", AwayTeam: "A", CommenceTime: testNow},
		// 20:00 in Chicago on the 14th is the 15th in UTC
		{ID: "f", HomeTeam: "A", AwayTeam: "B", CommenceTime: time.Date(2026, 10, 14, 20, 0, 0, 0, time.FixedZone("CDT", -5*3600))},
	}

	got := TodaysEvents(events, testNow)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("unexpected filter result: %+v", got)
	}
}

func TestGenerateRecordsLowercaseSportLabels(t *testing.T) {
	provider := &fakeProvider{
		events: map[string][]Event{"baseball_mlb": makeEvents("baseball_mlb", 6, testNow.Add(time.Hour))},
		errs:   map[string]error{"basketball_nba": errors.New("down")},
	}
	recorder := &labelRecorder{}
	generator := NewGenerator(provider, &fakeStore{},
		WithRand(rand.New(rand.NewSource(8))),
		WithClock(func() time.Time { return testNow }),
		WithRecorder(recorder),
	)

	if _, err := generator.GenerateBlackLedgerPicks(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recorder.sports) == 0 || recorder.sports[0] != "nba" {
		t.Fatalf("expected the provider error labelled nba first, got %v", recorder.sports)
	}
	for _, sport := range recorder.sports {
		if sport != strings.ToLower(sport) {
			t.Errorf("expected lowercase sport label, got %q", sport)
		}
	}
}
