package models

import (
	"time"
)

// Location is a venue matches are played at. PlayArea on a match
// names a court/table inside one of these.
type Location struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Address   string    `json:"address,omitempty"`
	City      string    `gorm:"index" json:"city,omitempty"`
	PlayAreas int       `gorm:"default:1" json:"play_areas"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
