// Package models contains data structures for the application's domain models.
package models

import "time"

// Post is the primary content entity. Image holds a presigned object-storage
// URL (or null when no image was uploaded); the URL expires after the signing
// TTL while remaining stored, so consumers must treat it as ephemeral. Tag
// membership is enforced at creation time only; there is no referential
// constraint at the storage level.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Image       *string   `json:"image"`
	Tags        []Tag     `gorm:"many2many:post_tags;" json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PostPage is the paginated list response for GET /api/posts. Total is the
// filtered count before pagination, not the page size.
type PostPage struct {
	Total int64   `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
	Posts []*Post `json:"posts"`
}
