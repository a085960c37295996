// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"tagboard/internal/models"
	"tagboard/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumTags     int
	NumPosts    int
	ShouldClean bool
}

// Run populates the database with fake tags and posts. Posts only reference
// tags created in the same run, mirroring the creation-time validation rule.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := db.WithContext(ctx).Exec("DELETE FROM post_tags").Error; err != nil {
			return fmt.Errorf("clean post_tags: %w", err)
		}
		if err := db.WithContext(ctx).Where("1 = 1").Delete(&models.Post{}).Error; err != nil {
			return fmt.Errorf("clean posts: %w", err)
		}
		if err := db.WithContext(ctx).Where("1 = 1").Delete(&models.Tag{}).Error; err != nil {
			return fmt.Errorf("clean tags: %w", err)
		}
	}

	tagRepo := repository.NewTagRepository(db)
	postRepo := repository.NewPostRepository(db)

	tags := make([]models.Tag, 0, opts.NumTags)
	for i := 0; i < opts.NumTags; i++ {
		tag := models.Tag{Name: gofakeit.Hobby()}
		if err := tagRepo.Create(ctx, &tag); err != nil {
			return fmt.Errorf("seed tag: %w", err)
		}
		tags = append(tags, tag)
	}

	for i := 0; i < opts.NumPosts; i++ {
		post := &models.Post{
			Title:       gofakeit.Sentence(5),
			Description: gofakeit.Paragraph(1, 3, 5, "\n"),
			Tags:        pickTags(tags),
		}
		if err := postRepo.Create(ctx, post); err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
	}

	return nil
}

// pickTags selects a random subset (0..3) of the seeded tags.
func pickTags(tags []models.Tag) []models.Tag {
	if len(tags) == 0 {
		return nil
	}
	n := rand.Intn(4)
	if n > len(tags) {
		n = len(tags)
	}
	picked := make([]models.Tag, 0, n)
	seen := make(map[int]struct{}, n)
	for len(picked) < n {
		idx := rand.Intn(len(tags))
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		picked = append(picked, tags[idx])
	}
	return picked
}
