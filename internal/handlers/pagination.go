package handlers

import (
	"strconv"

	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

type pageRequest struct {
	page  int
	limit int
}

// parsePageRequest reads ?page and ?limit. ok is false when neither is set,
// in which case list endpoints return every record.
func parsePageRequest(c *fiber.Ctx) (pageRequest, bool) {
	if c.Query("page") == "" && c.Query("limit") == "" {
		return pageRequest{}, false
	}

	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return pageRequest{page: parsePositiveInt(c.Query("page"), 1), limit: limit}, true
}

func paginate[T any](items []T, req pageRequest) ([]T, models.PaginationMeta) {
	total := len(items)
	// Compare before multiplying so a huge page number cannot overflow.
	start := total
	if req.page-1 <= total/req.limit {
		start = min((req.page-1)*req.limit, total)
	}
	end := min(start+req.limit, total)

	return items[start:end], buildPaginationMeta(req.page, req.limit, total)
}

func buildPaginationMeta(page, limit, total int) models.PaginationMeta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return models.PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
