package query

import (
	"strings"

	"gorm.io/gorm"
)

// Scope is a composable query predicate, applied with db.Scopes(...).
type Scope = func(db *gorm.DB) *gorm.DB

// matchAll leaves the query untouched, the equivalent of an always-true
// predicate for absent filter inputs.
func matchAll(db *gorm.DB) *gorm.DB { return db }

// likeEscaper neutralizes LIKE metacharacters in user input. '!' is used as
// the escape character because it needs no quoting in either MySQL or SQLite.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// PrefixMatch returns a case-insensitive "starts with value" predicate on
// column. An empty value matches everything.
func PrefixMatch(column, value string) Scope {
	if value == "" {
		return matchAll
	}
	pattern := likeEscaper.Replace(value) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER("+column+") LIKE LOWER(?) ESCAPE '!'", pattern)
	}
}

// ExactMatch returns an equality predicate on column. An empty value matches
// everything.
func ExactMatch(column, value string) Scope {
	if value == "" {
		return matchAll
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", value)
	}
}

// MembershipMatch returns a set-membership predicate on column. A nil or
// empty list matches everything.
func MembershipMatch(column string, values []string) Scope {
	if len(values) == 0 {
		return matchAll
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" IN ?", values)
	}
}

// ToArray normalizes a scalar into a single-element slice; slices pass
// through unchanged. Empty scalars normalize to an empty slice so they keep
// behaving as "no filter".
func ToArray(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Sort builds an ordering scope from a "column" / "-column" token. Only
// whitelisted columns are accepted; anything else leaves the query unordered.
func Sort(sortBy string, allowed map[string]bool) Scope {
	if sortBy == "" {
		return matchAll
	}
	column := sortBy
	direction := "ASC"
	if strings.HasPrefix(sortBy, "-") {
		column = sortBy[1:]
		direction = "DESC"
	}
	if !allowed[column] {
		return matchAll
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(column + " " + direction)
	}
}
