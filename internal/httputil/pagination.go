package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page bounds for list endpoints.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Page is the window of a list request taken from the offset and limit query parameters.
type Page struct {
	Offset int
	Limit  int
}

// ParsePage reads offset (default 0) and limit (default DefaultLimit, at most MaxLimit).
func ParsePage(c *gin.Context) (Page, error) {
	offset, err := queryInt(c, "offset", 0)
	if err != nil || offset < 0 {
		return Page{}, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, err := queryInt(c, "limit", DefaultLimit)
	if err != nil || limit < 1 || limit > MaxLimit {
		return Page{}, fmt.Errorf("invalid limit parameter: must be between 1 and %d", MaxLimit)
	}

	return Page{Offset: offset, Limit: limit}, nil
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
