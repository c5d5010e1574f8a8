package model

import "time"

type Restaurant struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"type:varchar(160);not null" json:"name"`
	OwnerID    int64     `gorm:"not null;uniqueIndex" json:"owner_id"`
	IsApproved bool      `gorm:"not null;default:false;index" json:"is_approved"`
	Lat        *float64  `json:"lat"`
	Lng        *float64  `json:"lng"`
	Address    string    `gorm:"type:text" json:"address,omitempty"`
	Phone      string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
