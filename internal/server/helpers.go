package server

import (
	"errors"

	"tagboard/internal/models"
	"tagboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPage        = 1
	defaultSortField   = "createdAt"
	maxPaginationLimit = 100
)

// parseListQuery extracts the page/limit/sort/order/tag query parameters for
// GET /api/posts, applying the documented defaults.
func parseListQuery(c *fiber.Ctx) service.ListPostsInput {
	page := c.QueryInt("page", defaultPage)
	if page < 1 {
		page = defaultPage
	}

	limit := c.QueryInt("limit", service.DefaultPageLimit)
	if limit <= 0 {
		limit = service.DefaultPageLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	tagID := c.QueryInt("tag", 0)
	if tagID < 0 {
		tagID = 0
	}

	return service.ListPostsInput{
		Page:  page,
		Limit: limit,
		Sort:  c.Query("sort", defaultSortField),
		Order: c.Query("order"),
		TagID: uint(tagID),
	}
}

// respondServiceError maps an AppError to its HTTP status. notFoundStatus
// lets callers pick the status for NOT_FOUND: 400 for missing tags at post
// creation, 404 on the filter endpoint.
func respondServiceError(c *fiber.Ctx, err error, notFoundStatus int) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeValidation:
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		case models.CodeNotFound:
			return models.RespondWithError(c, notFoundStatus, err)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}
