package models

import "time"

// Tag is a name-only lookup entity referenced by posts. Names are indexed but
// intentionally not unique: duplicate names coexist as distinct rows, and
// name-based lookups match all of them.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
