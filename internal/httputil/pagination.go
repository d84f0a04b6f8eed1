package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination is the validated pagination window for list endpoints.
// It is constructed at the boundary and handed to use cases as-is.
type Pagination struct {
	Skip  int
	Limit int
}

// ParsePagination safely parses and validates skip and limit query parameters.
// It uses default values of 0 for skip and 10 for limit.
// The limit cannot exceed 100.
func ParsePagination(c *gin.Context) (Pagination, error) {
	// Parse skip query parameter (default: 0)
	skipStr := c.DefaultQuery("skip", "0")
	skip, err := strconv.Atoi(skipStr)
	if err != nil || skip < 0 {
		return Pagination{}, fmt.Errorf("invalid skip parameter: must be a non-negative integer")
	}

	// Parse limit query parameter (default: 10, max: 100)
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 100 {
		return Pagination{}, fmt.Errorf("invalid limit parameter: must be between 1 and 100")
	}

	return Pagination{Skip: skip, Limit: limit}, nil
}
