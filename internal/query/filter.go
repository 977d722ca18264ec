package query

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "nestify/internal/errors"
)

// PriceRange is an inclusive lower bound and an optional inclusive upper bound.
type PriceRange struct {
	Min decimal.Decimal
	Max *decimal.Decimal
}

// ParsePriceRange parses "min-max" or "min+". An empty string means no
// filter and returns nil. Anything else that does not parse is rejected.
func ParsePriceRange(s string) (*PriceRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	invalid := apperrors.InvalidQuery(fmt.Sprintf("priceRange must look like \"min-max\" or \"min+\", got %q", s))

	if lower, ok := strings.CutSuffix(s, "+"); ok {
		minVal, err := parseBound(lower)
		if err != nil {
			return nil, invalid
		}
		return &PriceRange{Min: minVal}, nil
	}

	lower, upper, ok := strings.Cut(s, "-")
	if !ok {
		return nil, invalid
	}
	minVal, err := parseBound(lower)
	if err != nil {
		return nil, invalid
	}
	maxVal, err := parseBound(upper)
	if err != nil {
		return nil, invalid
	}
	if minVal.GreaterThan(maxVal) {
		return nil, apperrors.InvalidQuery("priceRange minimum is greater than maximum")
	}
	return &PriceRange{Min: minVal, Max: &maxVal}, nil
}

func parseBound(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty bound")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative bound")
	}
	return d, nil
}

// Contains reports whether v lies inside the range.
func (r *PriceRange) Contains(v decimal.Decimal) bool {
	if v.LessThan(r.Min) {
		return false
	}
	return r.Max == nil || !v.GreaterThan(*r.Max)
}

// Scope filters column into the range. A nil range is a no-op.
func (r *PriceRange) Scope(column string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if r == nil {
			return db
		}
		db = db.Where(column+" >= ?", r.Min)
		if r.Max != nil {
			db = db.Where(column+" <= ?", *r.Max)
		}
		return db
	}
}

// ParseBool parses an optional boolean filter.
func ParseBool(name, s string) (*bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, apperrors.InvalidQuery(fmt.Sprintf("%s must be true or false, got %q", name, s))
	}
	return &b, nil
}

// OneOf checks an optional categorical filter against its closed set.
func OneOf(name, value string, allowed []string) error {
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}
	return apperrors.InvalidQuery(fmt.Sprintf("%s must be one of %s", name, strings.Join(allowed, ", ")))
}
