package pickService

import (
	"context"
	"fmt"
	"strings"

	"blackLedger/models"

	"gorm.io/gorm"
)

const MockMarker = "mock"

// likeEscape is accepted as a LIKE escape character by mysql, sqlite and
// sqlserver without quoting rules of its own.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
	"[", likeEscape+"[",
)

// containsPattern matches text literally anywhere in a column.
func containsPattern(text string) string {
	return "%" + likeReplacer.Replace(text) + "%"
}

// GormPickStore implements PickStore on gorm and serves the read side used by
// the admin routes.
type GormPickStore struct {
	db      *gorm.DB
	picks   []*models.Pick
	parlays []*models.BlackLedgerPick
}

func NewGormPickStore(db *gorm.DB) *GormPickStore {
	return &GormPickStore{db: db}
}

func (s *GormPickStore) AddPick(pick *models.Pick) {
	s.picks = append(s.picks, pick)
}

func (s *GormPickStore) AddParlay(parlay *models.BlackLedgerPick) {
	s.parlays = append(s.parlays, parlay)
}

func (s *GormPickStore) Commit(ctx context.Context) error {
	picks, parlays := s.picks, s.parlays
	s.picks, s.parlays = nil, nil

	if len(picks) == 0 && len(parlays) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(picks) > 0 {
			if err := tx.Create(picks).Error; err != nil {
				return err
			}
		}
		if len(parlays) > 0 {
			if err := tx.Create(parlays).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// CleanupMocks permanently deletes picks whose summary contains marker.
func (s *GormPickStore) CleanupMocks(ctx context.Context, marker string) (int64, error) {
	if marker == "" {
		marker = MockMarker
	}
	result := s.db.WithContext(ctx).Unscoped().
		Where("summary LIKE ? ESCAPE '"+likeEscape+"'", containsPattern(marker)).
		Delete(&models.Pick{})
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormPickStore) LatestPicks(ctx context.Context, limit int) ([]models.Pick, error) {
	var picks []models.Pick
	if err := s.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&picks).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return picks, nil
}

func (s *GormPickStore) LatestParlays(ctx context.Context, limit int) ([]models.BlackLedgerPick, error) {
	var parlays []models.BlackLedgerPick
	if err := s.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&parlays).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return parlays, nil
}

// LatestMystery returns the newest mystery parlay, or nil when none exists.
func (s *GormPickStore) LatestMystery(ctx context.Context) (*models.BlackLedgerPick, error) {
	var parlays []models.BlackLedgerPick
	err := s.db.WithContext(ctx).
		Where("is_mystery = ?", true).
		Order("created_at desc").
		Limit(1).
		Find(&parlays).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if len(parlays) == 0 {
		return nil, nil
	}
	return &parlays[0], nil
}

// PicksBySport groups every pick, newest first, by lowercase sport and tier.
// Picks for sports or tiers outside the display set are dropped.
func (s *GormPickStore) PicksBySport(ctx context.Context) (map[string]map[string][]models.Pick, error) {
	var picks []models.Pick
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&picks).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return GroupPicks(picks), nil
}

func GroupPicks(picks []models.Pick) map[string]map[string][]models.Pick {
	grouped := map[string]map[string][]models.Pick{}
	for _, sport := range []string{"nba", "nfl", "mlb", "nhl", "mixed"} {
		grouped[sport] = map[string][]models.Pick{
			"safe": {},
			"mid":  {},
			"high": {},
		}
	}

	for _, pick := range picks {
		tiers, ok := grouped[strings.ToLower(pick.Sport)]
		if !ok {
			continue
		}
		tierKey := strings.ToLower(pick.Tier)
		if _, ok := tiers[tierKey]; !ok {
			continue
		}
		tiers[tierKey] = append(tiers[tierKey], pick)
	}
	return grouped
}
