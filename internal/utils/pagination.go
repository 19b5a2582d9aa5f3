package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Pagination struct {
	Offset int
	Limit  int
	Total  int64
}

// ParsePagination handles offset/limit query parameters from Fiber context.
func ParsePagination(c *fiber.Ctx) Pagination {
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return Pagination{Offset: offset, Limit: limit}
}
