package query

import (
	"strings"

	"gorm.io/gorm"
)

// likeEscape is the ESCAPE character used in every LIKE clause.
const likeEscape = '!'

// EscapeLike escapes the LIKE metacharacters (%, _ and the escape char
// itself) so that the result matches s literally.
func EscapeLike(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '%', '_', likeEscape:
			b.WriteRune(likeEscape)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ContainsPattern returns the case-folded, escaped %term% pattern.
func ContainsPattern(term string) string {
	return "%" + EscapeLike(strings.ToLower(term)) + "%"
}

// Search matches term as a case-insensitive substring of any of columns.
// A blank term leaves the query untouched.
func Search(term string, columns ...string) Scope {
	term = strings.TrimSpace(term)
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := ContainsPattern(term)
		clauses := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ? ESCAPE '" + string(likeEscape) + "'"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// Equals filters column = value unless value is the zero string.
func Equals(column, value string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}

// EqualsFold filters LOWER(column) = LOWER(value) unless value is empty.
func EqualsFold(column, value string) Scope {
	value = strings.TrimSpace(value)
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where("LOWER("+column+") = ?", strings.ToLower(value))
	}
}

// Bool filters column = *value when value is set.
func Bool(column string, value *bool) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if value == nil {
			return db
		}
		return db.Where(column+" = ?", *value)
	}
}
