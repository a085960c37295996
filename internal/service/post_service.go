// Package service implements the application's business rules over the
// repository and storage layers.
package service

import (
	"context"
	"strings"

	"tagboard/internal/models"
	"tagboard/internal/observability"
	"tagboard/internal/repository"
)

// DefaultPageLimit is the page size when the client does not send one.
const DefaultPageLimit = 5

// UploadedFile is an optional multipart file attached to a create-post request.
type UploadedFile struct {
	Filename string
	Content  []byte
}

// CreatePostInput carries the multipart fields of a create-post request.
// RawTags is the unparsed "tags" field: either repeated values or a single
// JSON-encoded array string.
type CreatePostInput struct {
	Title       string
	Description string
	RawTags     []string
	Image       *UploadedFile
}

// ListPostsInput carries pagination, sorting and the optional tag filter.
type ListPostsInput struct {
	Page  int
	Limit int
	Sort  string
	Order string
	TagID uint
}

// PostService orchestrates tag validation, image ingest and persistence.
type PostService struct {
	postRepo repository.PostRepository
	tagRepo  repository.TagRepository
	images   *ImageService
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, tagRepo repository.TagRepository, images *ImageService) *PostService {
	return &PostService{
		postRepo: postRepo,
		tagRepo:  tagRepo,
		images:   images,
	}
}

// CreatePost validates the referenced tags, runs the image-ingest pipeline if
// a file is attached, and persists the post. Tag validation happens before
// any object-storage work, so a bad tag list never incurs an upload.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}

	names, err := ParseTagNames(in.RawTags)
	if err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(ctx, names)
	if err != nil {
		return nil, err
	}

	var imageURL *string
	if in.Image != nil {
		signedURL, err := s.images.Ingest(ctx, in.Image.Filename, in.Image.Content)
		if err != nil {
			return nil, err
		}
		imageURL = &signedURL
	}

	post := &models.Post{
		Title:       in.Title,
		Description: in.Description,
		Image:       imageURL,
		Tags:        tags,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewStorageError("Failed to create post", err)
	}
	observability.PostsCreatedTotal.Inc()

	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, models.NewStorageError("Failed to load created post", err)
	}
	return created, nil
}

// resolveTags is the tag validation rule: every requested name must match an
// existing tag. Missing names are reported in request order, deduplicated.
// Matched tags come back in store iteration order.
func (s *PostService) resolveTags(ctx context.Context, names []string) ([]models.Tag, error) {
	found, err := s.tagRepo.FindByNames(ctx, names)
	if err != nil {
		return nil, models.NewStorageError("Failed to look up tags", err)
	}

	foundNames := make(map[string]struct{}, len(found))
	for _, t := range found {
		foundNames[t.Name] = struct{}{}
	}

	var missing []string
	reported := make(map[string]struct{})
	for _, name := range names {
		if _, ok := foundNames[name]; ok {
			continue
		}
		if _, dup := reported[name]; dup {
			continue
		}
		reported[name] = struct{}{}
		missing = append(missing, name)
	}
	if len(missing) > 0 {
		return nil, models.NewNotFoundError("Tag(s) not found: " + strings.Join(missing, ", "))
	}
	return found, nil
}

// ListPosts returns one page of posts plus the total count matching the
// filter before pagination.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*models.PostPage, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = DefaultPageLimit
	}
	offset := (in.Page - 1) * in.Limit

	posts, total, err := s.postRepo.List(ctx, repository.ListPostsParams{
		Limit:  in.Limit,
		Offset: offset,
		Sort:   in.Sort,
		Order:  in.Order,
		TagID:  in.TagID,
	})
	if err != nil {
		return nil, models.NewStorageError("Failed to list posts", err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return &models.PostPage{
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
		Posts: posts,
	}, nil
}

// SearchPosts returns every post whose title, description, stored image URL
// or tag name case-insensitively contains the keyword. No pagination.
func (s *PostService) SearchPosts(ctx context.Context, keyword string) ([]*models.Post, error) {
	if keyword == "" {
		return nil, models.NewValidationError("Keyword is required")
	}
	posts, err := s.postRepo.Search(ctx, keyword)
	if err != nil {
		return nil, models.NewStorageError("Failed to search posts", err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

// FilterPostsByTags resolves the comma-separated tag values by name and
// returns the union of posts referencing any resolved tag.
func (s *PostService) FilterPostsByTags(ctx context.Context, rawTags string) ([]*models.Post, error) {
	if strings.TrimSpace(rawTags) == "" {
		return nil, models.NewValidationError("Tag names or IDs are required")
	}

	values := strings.Split(rawTags, ",")
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}

	tags, err := s.tagRepo.FindByNames(ctx, values)
	if err != nil {
		return nil, models.NewStorageError("Failed to look up tags", err)
	}
	if len(tags) == 0 {
		return nil, models.NewNotFoundError("No matching tags found")
	}

	tagIDs := make([]uint, len(tags))
	for i, t := range tags {
		tagIDs[i] = t.ID
	}

	posts, err := s.postRepo.FindByTagIDs(ctx, tagIDs)
	if err != nil {
		return nil, models.NewStorageError("Failed to filter posts", err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}
