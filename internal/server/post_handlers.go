package server

import (
	"io"

	"tagboard/internal/models"
	"tagboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts (multipart form: title, desc, tags,
// optional image file)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()

	in := service.CreatePostInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("desc"),
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		in.RawTags = form.Value["tags"]
	}

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid image upload"))
		}
		content, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid image upload"))
		}
		in.Image = &service.UploadedFile{Filename: fh.Filename, Content: content}
	}

	post, err := s.postService.CreatePost(ctx, in)
	if err != nil {
		// Missing referenced tags at creation time map to 400, not 404.
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts with pagination, sorting and an optional
// single tag filter.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, err := s.postService.ListPosts(c.Context(), parseListQuery(c))
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(page)
}

// SearchPosts handles GET /api/posts/search?keyword=...
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	posts, err := s.postService.SearchPosts(c.Context(), c.Query("keyword"))
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(posts)
}

// FilterPostsByTags handles GET /api/posts/filter?tags=a,b
func (s *Server) FilterPostsByTags(c *fiber.Ctx) error {
	posts, err := s.postService.FilterPostsByTags(c.Context(), c.Query("tags"))
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(posts)
}
