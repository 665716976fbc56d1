package oddsService

import (
	"context"

	"blackLedger/models/external"
)

const MarketMoneyline = "h2h"

// FetchBestOdds pulls the best available price for each side of every game
// in a sport/market.
func (c *Client) FetchBestOdds(ctx context.Context, sportKey string, market string) ([]external.OddsPick, error) {
	games, err := c.ListOdds(ctx, sportKey, market)
	if err != nil {
		return nil, err
	}
	return BestOdds(games, sportKey, market), nil
}

// BestOdds keeps the highest price across bookmakers for each team. Games
// that no bookmaker prices for market are dropped.
func BestOdds(games []external.OddsAPI_Game, sportKey string, market string) []external.OddsPick {
	picks := []external.OddsPick{}

	for _, game := range games {
		teams := []string{game.HomeTeam, game.AwayTeam}

		for sideIndex, team := range teams {
			found := false
			var best external.OddsAPI_Outcome
			bestSite := ""

			for _, book := range game.Bookmakers {
				for _, marketData := range book.Markets {
					if marketData.Key != market {
						continue
					}
					for _, outcome := range marketData.Outcomes {
						if outcome.Name != team {
							continue
						}
						if !found || outcome.Price > best.Price {
							best = outcome
							bestSite = book.Title
							found = true
						}
					}
				}
			}

			if !found {
				continue
			}
			picks = append(picks, external.OddsPick{
				EventID:    game.ID,
				Team:       team,
				Opponent:   teams[1-sideIndex],
				IsHome:     sideIndex == 0,
				Sport:      sportKey,
				Market:     market,
				Odds:       best.Price,
				Sportsbook: bestSite,
			})
		}
	}

	return picks
}
