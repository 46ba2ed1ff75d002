package api

import (
	"civic_reports/internal/store" // Query specification
	"strconv"                      // String conversion

	"github.com/gin-gonic/gin" // Gin web framework
)

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

// parseQuerySpec reads filter, sort and pagination query parameters
func parseQuerySpec(c *gin.Context, admin bool) store.QuerySpec {
	spec := store.QuerySpec{
		Category: c.Query("category"),                          // Exact category filter
		Status:   c.Query("status"),                            // Exact status filter
		SortBy:   c.DefaultQuery("sortBy", c.Query("sort_by")), // Sort key
		Order:    c.Query("order"),                             // ASC or DESC
		Admin:    admin,                                        // Selects default sort
	}
	// Check and set page number from query params
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			spec.Page = v // Set page if valid
		}
	}
	// Check and set page size within limits
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= store.MaxPageSize {
			spec.PageSize = v // Set page size if valid
		}
	}
	return spec
}
