package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tagboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

// seedPagedPosts creates n posts one minute apart so created_at ordering is
// deterministic. Titles run "Post 01" .. "Post n".
func seedPagedPosts(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		post := &models.Post{
			Title:     fmt.Sprintf("Post %02d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(post).Error)
	}
}

func TestPostRepositoryCreateAndGetByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	tag := models.Tag{Name: "go"}
	require.NoError(t, db.Create(&tag).Error)

	post := &models.Post{
		Title:       "Hello",
		Description: "First post",
		Image:       strPtr("https://bucket.example/posts/abc.png"),
		Tags:        []models.Tag{tag},
	}
	require.NoError(t, repo.Create(ctx, post))
	require.NotZero(t, post.ID)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	require.NotNil(t, got.Image)
	assert.Equal(t, *post.Image, *got.Image)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "go", got.Tags[0].Name)
}

func TestPostRepositoryListPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	seedPagedPosts(t, db, 12)

	posts, total, err := repo.List(context.Background(), ListPostsParams{
		Limit:  5,
		Offset: 5,
		Sort:   "createdAt",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(12), total, "total counts all matches, not the page")
	require.Len(t, posts, 5)

	// Default order is created_at descending, so page 2 holds posts 7..3.
	want := []string{"Post 07", "Post 06", "Post 05", "Post 04", "Post 03"}
	for i, post := range posts {
		assert.Equal(t, want[i], post.Title)
	}
}

func TestPostRepositoryListOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	seedPagedPosts(t, db, 3)
	ctx := context.Background()

	tests := []struct {
		name  string
		sort  string
		order string
		want  []string
	}{
		{"defaults to newest first", "", "", []string{"Post 03", "Post 02", "Post 01"}},
		{"asc keyword flips direction", "createdAt", "asc", []string{"Post 01", "Post 02", "Post 03"}},
		{"unknown order keyword stays descending", "createdAt", "ascending", []string{"Post 03", "Post 02", "Post 01"}},
		{"unknown sort field falls back to createdAt", "id; DROP TABLE posts", "", []string{"Post 03", "Post 02", "Post 01"}},
		{"sort by title ascending", "title", "asc", []string{"Post 01", "Post 02", "Post 03"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, _, err := repo.List(ctx, ListPostsParams{Limit: 10, Sort: tt.sort, Order: tt.order})
			require.NoError(t, err)
			require.Len(t, posts, len(tt.want))
			for i, post := range posts {
				assert.Equal(t, tt.want[i], post.Title)
			}
		})
	}
}

func TestPostRepositoryListFiltersByTag(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	goTag := models.Tag{Name: "go"}
	webTag := models.Tag{Name: "web"}
	require.NoError(t, db.Create(&goTag).Error)
	require.NoError(t, db.Create(&webTag).Error)

	require.NoError(t, repo.Create(ctx, &models.Post{Title: "Go post", Tags: []models.Tag{goTag}}))
	require.NoError(t, repo.Create(ctx, &models.Post{Title: "Web post", Tags: []models.Tag{webTag}}))
	require.NoError(t, repo.Create(ctx, &models.Post{Title: "Both", Tags: []models.Tag{goTag, webTag}}))
	require.NoError(t, repo.Create(ctx, &models.Post{Title: "Untagged"}))

	posts, total, err := repo.List(ctx, ListPostsParams{Limit: 10, TagID: goTag.ID})
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	require.Len(t, posts, 2)
	for _, post := range posts {
		assert.Contains(t, []string{"Go post", "Both"}, post.Title)
	}
}

func TestPostRepositorySearch(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	tag := models.Tag{Name: "Golang"}
	require.NoError(t, db.Create(&tag).Error)

	require.NoError(t, repo.Create(ctx, &models.Post{Title: "Weekend Trip"}))
	require.NoError(t, repo.Create(ctx, &models.Post{Title: "Other", Description: "a trip report"}))
	require.NoError(t, repo.Create(ctx, &models.Post{Title: "Pic", Image: strPtr("https://bucket.example/posts/trip.png")}))
	require.NoError(t, repo.Create(ctx, &models.Post{Title: "Tagged", Tags: []models.Tag{tag}}))
	require.NoError(t, repo.Create(ctx, &models.Post{Title: "Unrelated"}))

	tests := []struct {
		name    string
		keyword string
		want    []string
	}{
		{"matches title case-insensitively", "TRIP", []string{"Weekend Trip", "Other", "Pic"}},
		{"matches description", "report", []string{"Other"}},
		{"matches stored image URL", "trip.png", []string{"Pic"}},
		{"matches tag name", "golang", []string{"Tagged"}},
		{"no matches", "nothing-here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := repo.Search(ctx, tt.keyword)
			require.NoError(t, err)
			titles := make([]string, 0, len(posts))
			for _, post := range posts {
				titles = append(titles, post.Title)
			}
			assert.ElementsMatch(t, tt.want, titles)
		})
	}
}

func TestPostRepositorySearchPreloadsTags(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	tag := models.Tag{Name: "go"}
	require.NoError(t, db.Create(&tag).Error)
	require.NoError(t, repo.Create(ctx, &models.Post{Title: "Hello", Tags: []models.Tag{tag}}))

	posts, err := repo.Search(ctx, "hello")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Len(t, posts[0].Tags, 1)
	assert.Equal(t, "go", posts[0].Tags[0].Name)
}

func TestPostRepositoryFindByTagIDsUnion(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	goTag := models.Tag{Name: "go"}
	webTag := models.Tag{Name: "web"}
	require.NoError(t, db.Create(&goTag).Error)
	require.NoError(t, db.Create(&webTag).Error)

	require.NoError(t, repo.Create(ctx, &models.Post{Title: "Go post", Tags: []models.Tag{goTag}}))
	require.NoError(t, repo.Create(ctx, &models.Post{Title: "Both", Tags: []models.Tag{goTag, webTag}}))
	require.NoError(t, repo.Create(ctx, &models.Post{Title: "Untagged"}))

	posts, err := repo.FindByTagIDs(ctx, []uint{goTag.ID, webTag.ID})
	require.NoError(t, err)

	require.Len(t, posts, 2, "a post matching both tags appears once")
	titles := []string{posts[0].Title, posts[1].Title}
	assert.ElementsMatch(t, []string{"Go post", "Both"}, titles)
}

func TestPostRepositoryFindByTagIDsEmptyInput(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	posts, err := repo.FindByTagIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, posts)
}
