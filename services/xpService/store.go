package xpService

import (
	"context"
	"fmt"

	"blackLedger/models"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) PendingLockedPicks(ctx context.Context) ([]models.LockedPick, error) {
	var picks []models.LockedPick
	err := s.db.WithContext(ctx).
		Where("status = ?", models.LockedPending).
		Order("id").
		Find(&picks).Error
	if err != nil {
		return nil, err
	}
	return picks, nil
}

func (s *GormStore) FindUser(ctx context.Context, id uint) (*models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&users).Error
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, id)
	}
	return &users[0], nil
}

func (s *GormStore) SaveGrade(ctx context.Context, pick *models.LockedPick, user *models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.LockedPick{}).
			Where("id = ?", pick.ID).
			Update("status", pick.Status).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{"xp": user.XP, "level": user.Level}).Error
	})
}
