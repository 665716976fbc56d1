package pickService

import (
	"context"
	"time"

	"blackLedger/models"
)

const (
	MarketMoneyline = "h2h"

	TierSafe = "Safe"
	TierMid  = "Mid"
	TierHigh = "High"
)

type Sport struct {
	Key  string
	Name string
}

// Sports is the fixed set of leagues a generation run covers, in run order.
var Sports = []Sport{
	{Key: "basketball_nba", Name: "NBA"},
	{Key: "americanfootball_nfl", Name: "NFL"},
	{Key: "baseball_mlb", Name: "MLB"},
	{Key: "icehockey_nhl", Name: "NHL"},
}

// Tiers in quota order.
var Tiers = []string{TierSafe, TierMid, TierHigh}

// Event is an upstream game. It is never persisted.
type Event struct {
	ID           string
	HomeTeam     string
	AwayTeam     string
	CommenceTime time.Time
	SportKey     string
}

// EventProvider is the upstream source of games and prices. ListEvents
// returns an error wrapping the provider's unavailable sentinel on failure.
// BestPrice returns ("Unavailable", "N/A") when there is no price.
type EventProvider interface {
	ListEvents(ctx context.Context, sportKey string) ([]Event, error)
	BestPrice(ctx context.Context, eventID string, market string, sportKey string) (sportsbook string, odds string)
}

// PickStore buffers rows until Commit. A failed Commit discards the buffer.
type PickStore interface {
	AddPick(pick *models.Pick)
	AddParlay(parlay *models.BlackLedgerPick)
	Commit(ctx context.Context) error
}

type Recorder interface {
	PickGenerated(sport string, tier string)
	ParlayGenerated(sport string, tier string)
	ProviderError(sport string)
}

type Notifier interface {
	NotifyBatch(ctx context.Context, result *BatchResult) error
}

type nopRecorder struct{}

func (nopRecorder) PickGenerated(string, string) {}

func (nopRecorder) ParlayGenerated(string, string) {}

func (nopRecorder) ProviderError(string) {}
