package models

import (
	"gorm.io/gorm"
)

type Pick struct {
	gorm.Model
	ID              uint   `gorm:"primaryKey"`
	Sport           string `gorm:"size:50;index"`
	Tier            string `gorm:"size:50"`
	PickText        string `gorm:"size:300"`
	Summary         string `gorm:"size:500"`
	Confidence      string `gorm:"size:10"`
	HitChance       string `gorm:"size:10"`
	Sportsbook      string `gorm:"size:100"`
	Odds            string `gorm:"size:50"`
	SmartlineValue  string `gorm:"size:32"`
	PublicFadeValue string `gorm:"size:32"`
}
