package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ParlayPending = "pending"
	ParlayHit     = "hit"
	ParlayMiss    = "miss"
)

// BlackLedgerPick is a generated multi-leg parlay.
type BlackLedgerPick struct {
	gorm.Model
	ID              uint           `gorm:"primaryKey"`
	BatchID         string         `gorm:"size:36;index"`
	Sport           string         `gorm:"size:50;index"`
	Tier            string         `gorm:"size:50"`
	BetType         string         `gorm:"size:50"`
	Legs            []ParlayLeg    `gorm:"-"`
	LegsJSON        datatypes.JSON `gorm:"column:legs"`
	HitChance       string         `gorm:"size:10"`
	Confidence      string         `gorm:"size:10"`
	Summary         string         `gorm:"size:500"`
	SmartlineValue  string         `gorm:"size:32"`
	PublicFadeValue string         `gorm:"size:32"`
	Result          string         `gorm:"size:16;default:pending"`
	IsMystery       bool           `gorm:"default:false"`
}

// ParlayLeg is one component of a BlackLedgerPick. Legs are only serialized
// when the row is written.
type ParlayLeg struct {
	Team    string `json:"team"`
	Type    string `json:"type"`
	Odds    string `json:"odds"`
	Summary string `json:"summary"`
}

func (p *BlackLedgerPick) BeforeSave(tx *gorm.DB) error {
	raw, err := json.Marshal(p.Legs)
	if err != nil {
		return err
	}
	p.LegsJSON = datatypes.JSON(raw)
	if p.Result == "" {
		p.Result = ParlayPending
	}
	return nil
}

func (p *BlackLedgerPick) AfterFind(tx *gorm.DB) error {
	if len(p.LegsJSON) == 0 {
		p.Legs = nil
		return nil
	}
	return json.Unmarshal(p.LegsJSON, &p.Legs)
}
