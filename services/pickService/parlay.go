package pickService

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"blackLedger/models"
	"blackLedger/services/common"

	"gorm.io/gorm"
)

const (
	ParlaysPerTier = 3
	ParlayBetType  = "Mixed"
)

var parlayTiers = []struct {
	tier string
	legs int
}{
	{TierSafe, 2},
	{TierMid, 3},
	{TierHigh, 5},
}

var (
	legOdds          = []string{"+110", "-120", "+135", "-105"}
	legTypes         = []string{"Moneyline", "Spread", "Player Prop"}
	parlayConfidence = []string{"A", "A+", "B"}
)

// LegsForTier returns the fixed leg count of a tier, or 0 for an unknown tier.
func LegsForTier(tier string) int {
	for _, t := range parlayTiers {
		if t.tier == tier {
			return t.legs
		}
	}
	return 0
}

// BuildParlays synthesizes ParlaysPerTier parlays for each tier of a sport.
func BuildParlays(rng *rand.Rand, sport Sport, now time.Time, batchID string) []*models.BlackLedgerPick {
	var parlays []*models.BlackLedgerPick

	for _, t := range parlayTiers {
		for i := 0; i < ParlaysPerTier; i++ {
			legs := make([]models.ParlayLeg, 0, t.legs)
			odds := make([]string, 0, t.legs)
			for n := 1; n <= t.legs; n++ {
				rawOdds := legOdds[rng.Intn(len(legOdds))]
				odds = append(odds, rawOdds)
				legs = append(legs, models.ParlayLeg{
					Team:    fmt.Sprintf("Team %d", n),
					Type:    legTypes[rng.Intn(len(legTypes))],
					Odds:    rawOdds,
					Summary: fmt.Sprintf("Leg %d has strong edge and matchup value.", n),
				})
			}

			finalOdds := common.DecimalToAmerican(common.CalculateParlayOddsMultiplier(odds))

			parlays = append(parlays, &models.BlackLedgerPick{
				Model:      gorm.Model{CreatedAt: now},
				BatchID:    batchID,
				Sport:      strings.ToLower(sport.Name),
				Tier:       t.tier,
				BetType:    ParlayBetType,
				Legs:       legs,
				HitChance:  fmt.Sprintf("%d%%", 78+rng.Intn(12)),
				Confidence: parlayConfidence[rng.Intn(len(parlayConfidence))],
				Summary:    fmt.Sprintf("Total Odds: %s", common.FormatOdds(float64(finalOdds))),
				Result:     models.ParlayPending,
			})
		}
	}

	return parlays
}

// AssignMystery flags exactly one parlay of the batch as the mystery pick and
// returns it, or returns nil for an empty batch.
func AssignMystery(rng *rand.Rand, parlays []*models.BlackLedgerPick) *models.BlackLedgerPick {
	if len(parlays) == 0 {
		return nil
	}
	for _, p := range parlays {
		p.IsMystery = false
	}
	chosen := parlays[rng.Intn(len(parlays))]
	chosen.IsMystery = true
	return chosen
}

type ValueLeg struct {
	Odds       string
	Sportsbook string
}

// ParlayValue compares a parlay's combined price against the price of the
// same number of legs at the average leg price.
type ParlayValue struct {
	Legs             int
	CombinedDecimal  float64
	CombinedAmerican int
	AverageDecimal   float64
	ExpectedDecimal  float64
	ValueScore       float64
	Sportsbooks      []string
}

// GetCombinedParlayValue skips legs whose odds do not parse. It returns false
// when no leg is usable.
func GetCombinedParlayValue(legs []ValueLeg) (*ParlayValue, bool) {
	combined := 1.0
	sum := 0.0
	count := 0
	var books []string

	for _, leg := range legs {
		odds, err := common.ParseAmericanOdds(leg.Odds)
		if err != nil {
			continue
		}
		decimal := common.AmericanToDecimal(odds)
		combined *= decimal
		sum += decimal
		count++
		if leg.Sportsbook != "" && !common.Contains(books, leg.Sportsbook) {
			books = append(books, leg.Sportsbook)
		}
	}

	if count == 0 {
		return nil, false
	}

	average := sum / float64(count)
	expected := math.Pow(average, float64(count))

	return &ParlayValue{
		Legs:             count,
		CombinedDecimal:  combined,
		CombinedAmerican: common.DecimalToAmerican(combined),
		AverageDecimal:   average,
		ExpectedDecimal:  expected,
		ValueScore:       (combined - expected) / expected * 100,
		Sportsbooks:      books,
	}, true
}

// ValueLegs adapts stored parlay legs for GetCombinedParlayValue.
func ValueLegs(parlay *models.BlackLedgerPick) []ValueLeg {
	legs := make([]ValueLeg, 0, len(parlay.Legs))
	for _, leg := range parlay.Legs {
		legs = append(legs, ValueLeg{Odds: leg.Odds})
	}
	return legs
}
