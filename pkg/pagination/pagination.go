// Package pagination reads 1-based page requests from query strings.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a clamped page request.
type Params struct {
	Page  int
	Limit int
}

// Parse reads page and limit with the default page size.
func Parse(c *gin.Context) Params {
	return ParseWithDefault(c, DefaultLimit)
}

// ParseWithDefault reads page and limit. Missing, malformed or non-positive values fall
// back to page 1 and def; limit never exceeds MaxLimit.
func ParseWithDefault(c *gin.Context, def int) Params {
	if def < 1 || def > MaxLimit {
		def = DefaultLimit
	}
	p := Params{Page: positive(c.Query("page"), 1), Limit: positive(c.Query("limit"), def)}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset is the number of rows before the page.
func (p Params) Offset() int { return (p.Page - 1) * p.Limit }

// TotalPages is the page count for total rows; zero rows is zero pages.
func (p Params) TotalPages(total int64) int {
	if p.Limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

func positive(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
