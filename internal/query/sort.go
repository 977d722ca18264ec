package query

import (
	"fmt"
	"slices"
	"strings"

	"gorm.io/gorm"

	apperrors "nestify/internal/errors"
)

// NaturalOrder is used when no sortBy is given: most recent first.
const NaturalOrder = "created_at DESC"

// Sorts maps public sortBy keys to ORDER BY clauses.
type Sorts map[string]string

// PropertySorts are the sort keys accepted by property listings.
var PropertySorts = Sorts{
	"price_asc":  "rent ASC, created_at DESC",
	"price_desc": "rent DESC, created_at DESC",
	"popular":    "views DESC, created_at DESC",
	"newest":     "created_at DESC",
	"oldest":     "created_at ASC",
}

// RecencySorts are the sort keys accepted by user and room-request listings.
var RecencySorts = Sorts{
	"newest": "created_at DESC",
	"oldest": "created_at ASC",
}

// Order resolves key to an ORDER BY clause. An empty key yields NaturalOrder.
func (s Sorts) Order(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return NaturalOrder, nil
	}
	order, ok := s[key]
	if !ok {
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return "", apperrors.InvalidQuery(fmt.Sprintf("sortBy must be one of %s", strings.Join(keys, ", ")))
	}
	return order, nil
}

// OrderScope applies a clause returned by Sorts.Order.
func OrderScope(order string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if order == "" {
			order = NaturalOrder
		}
		return db.Order(order)
	}
}
