package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	ID       uint   `gorm:"primaryKey"`
	Email    string `gorm:"uniqueIndex;size:150"`
	Username string `gorm:"uniqueIndex;size:150"`
	Password string `gorm:"size:150"`
	XP       int    `gorm:"column:xp;default:0"`
	Level    int    `gorm:"default:1"`
}
