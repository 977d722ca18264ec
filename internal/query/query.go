// Package query turns request query parameters into GORM scopes.
//
// Every user-supplied value reaches SQL as a bound parameter. Column names
// and ORDER BY clauses only ever come from the fixed tables in this package
// and its callers.
package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"

	apperrors "nestify/internal/errors"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Scope is a composable GORM query modifier.
type Scope = func(*gorm.DB) *gorm.DB

// Page is a validated page/limit pair.
type Page struct {
	Page  int
	Limit int
}

// ParsePage parses page and limit. Empty values take the defaults, values
// below 1 are raised to 1 and limit is capped at MaxLimit. Non-integers are
// rejected.
func ParsePage(pageStr, limitStr string) (Page, error) {
	p := Page{Page: DefaultPage, Limit: DefaultLimit}

	if s := strings.TrimSpace(pageStr); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Page{}, apperrors.InvalidQuery(fmt.Sprintf("page must be an integer, got %q", pageStr))
		}
		p.Page = max(n, 1)
	}
	if s := strings.TrimSpace(limitStr); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Page{}, apperrors.InvalidQuery(fmt.Sprintf("limit must be an integer, got %q", limitStr))
		}
		p.Limit = min(max(n, 1), MaxLimit)
	}
	return p, nil
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Scope applies OFFSET and LIMIT.
func (p Page) Scope() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}

// Pagination is returned next to every page of results.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination computes the pager block; Pages is never below 1.
func NewPagination(p Page, total int64) Pagination {
	pages := int(math.Ceil(float64(total) / float64(p.Limit)))
	return Pagination{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: max(pages, 1),
	}
}
