package repository

import (
	"context"
	"strings"

	"tagboard/internal/models"

	"gorm.io/gorm"
)

// ListPostsParams carries pagination, sorting and the optional tag filter for
// List. Sort is the API-level field name ("createdAt", "updatedAt", "title");
// unknown values fall back to createdAt. Only the literal order keyword "asc"
// selects ascending; anything else sorts descending.
type ListPostsParams struct {
	Limit  int
	Offset int
	Sort   string
	Order  string
	TagID  uint
}

// PostRepository defines the interface for post data operations. All reads
// return posts with tags preloaded, never bare identities.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	// List returns one page of posts plus the total count of posts matching
	// the filter before pagination.
	List(ctx context.Context, p ListPostsParams) ([]*models.Post, int64, error)
	Search(ctx context.Context, keyword string) ([]*models.Post, error)
	// FindByTagIDs returns the union of posts referencing any of the given
	// tags, without duplicates.
	FindByTagIDs(ctx context.Context, tagIDs []uint) ([]*models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Tags").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, p ListPostsParams) ([]*models.Post, int64, error) {
	filtered := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Post{})
		if p.TagID != 0 {
			q = q.Where("posts.id IN (SELECT post_id FROM post_tags WHERE tag_id = ?)", p.TagID)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err := filtered().
		Preload("Tags").
		Order(orderClause(p.Sort, p.Order)).
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// orderClause maps the API sort field to a column through a whitelist, so the
// sort parameter never reaches SQL verbatim.
func orderClause(sort, order string) string {
	column := "created_at"
	switch sort {
	case "updatedAt":
		column = "updated_at"
	case "title":
		column = "title"
	}

	direction := "DESC"
	if order == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}

func (r *postRepository) Search(ctx context.Context, keyword string) ([]*models.Post, error) {
	like := "%" + strings.ToLower(keyword) + "%"
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where(`LOWER(posts.title) LIKE ? OR LOWER(posts.description) LIKE ? OR LOWER(posts.image) LIKE ?
			OR posts.id IN (SELECT post_tags.post_id FROM post_tags JOIN tags ON tags.id = post_tags.tag_id WHERE LOWER(tags.name) LIKE ?)`,
			like, like, like, like).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) FindByTagIDs(ctx context.Context, tagIDs []uint) ([]*models.Post, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("posts.id IN (SELECT post_id FROM post_tags WHERE tag_id IN ?)", tagIDs).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
