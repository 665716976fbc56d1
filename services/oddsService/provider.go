package oddsService

import (
	"context"
	"log"
	"time"

	"blackLedger/services/common"
	"blackLedger/services/pickService"
)

const UnavailableSportsbook = "Unavailable"

// Provider serves events live from the client and prices through the odds
// cache.
type Provider struct {
	client *Client
	cache  *OddsCache
}

func NewProvider(client *Client, cache *OddsCache) *Provider {
	return &Provider{
		client: client,
		cache:  cache,
	}
}

func (p *Provider) ListEvents(ctx context.Context, sportKey string) ([]pickService.Event, error) {
	raw, err := p.client.ListEvents(ctx, sportKey)
	if err != nil {
		return nil, err
	}

	events := make([]pickService.Event, 0, len(raw))
	for _, e := range raw {
		commence, err := time.Parse(time.RFC3339, e.CommenceTime)
		if err != nil {
			log.Printf("Skipping event %s with bad commence_time %q: %v", e.ID, e.CommenceTime, err)
			continue
		}
		events = append(events, pickService.Event{
			ID:           e.ID,
			HomeTeam:     e.HomeTeam,
			AwayTeam:     e.AwayTeam,
			CommenceTime: commence,
			SportKey:     sportKey,
		})
	}
	return events, nil
}

// BestPrice returns the best home-side price for an event, or
// ("Unavailable", "N/A") when there is none.
func (p *Provider) BestPrice(ctx context.Context, eventID string, market string, sportKey string) (string, string) {
	rows, err := p.cache.GetCachedOrFresh(ctx, sportKey, market)
	if err != nil {
		log.Printf("Error fetching %s odds for %s: %v", market, sportKey, err)
		return UnavailableSportsbook, common.UnavailableOdds
	}

	for _, row := range rows {
		if row.EventID == eventID && row.IsHome {
			return row.Sportsbook, common.FormatOdds(float64(row.Odds))
		}
	}
	return UnavailableSportsbook, common.UnavailableOdds
}
