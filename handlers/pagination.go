package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// parsePagination reads the page and page_size query parameters. Defaults
// are page=1 and page_size=20; page must be at least 1 and page_size within
// [1,100]. Out-of-range or non-numeric values are rejected before any data
// access happens.
func parsePagination(c *gin.Context) (int, int, error) {
	page := defaultPage
	if raw := c.Query("page"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			return 0, 0, fmt.Errorf("page must be a positive integer")
		}
		page = value
	}

	pageSize := defaultPageSize
	if raw := c.Query("page_size"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 || value > maxPageSize {
			return 0, 0, fmt.Errorf("page_size must be between 1 and %d", maxPageSize)
		}
		pageSize = value
	}

	return page, pageSize, nil
}
