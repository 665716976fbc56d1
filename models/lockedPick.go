package models

import "gorm.io/gorm"

const (
	LockedPending = "pending"
	LockedHit     = "hit"
	LockedMiss    = "miss"
)

// LockedPick is a user's committed parlay. Legs is a comma-joined list of leg
// descriptors.
type LockedPick struct {
	gorm.Model
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`
	Sport  string `gorm:"size:50"`
	Legs   string `gorm:"size:1000"`
	Status string `gorm:"size:16;index;default:pending"`
}
