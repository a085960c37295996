package service

import (
	"context"
	"strings"

	"tagboard/internal/models"
	"tagboard/internal/repository"
)

// TagService implements tag creation and listing. Name uniqueness is not
// enforced; duplicate names become distinct tags.
type TagService struct {
	tagRepo repository.TagRepository
}

// NewTagService creates a new tag service.
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// CreateTag persists a new tag with the given name.
func (s *TagService) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, models.NewValidationError("Name is required")
	}

	tag := &models.Tag{Name: name}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, models.NewStorageError("Failed to create tag", err)
	}
	return tag, nil
}

// ListTags returns all tags, unfiltered and unpaginated.
func (s *TagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, models.NewStorageError("Failed to list tags", err)
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	return tags, nil
}
