package model

import "time"

type Review struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID string `gorm:"size:64;index;not null"`
	Email     string `gorm:"size:255;not null"`
	Name      string `gorm:"size:100;not null"`
	Rating    int    `gorm:"not null"` // 1..5
	Comment   string `gorm:"type:text"`
	CreatedAt time.Time
}

type Contact struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255;not null"`
	Subject   string `gorm:"size:255"`
	Message   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}
