package repository

import "strings"

// DefaultPageLimit applies when a caller asks for zero or fewer items.
const DefaultPageLimit = 20

// Page represents a simple limit/offset window for listing operations.
type Page struct {
	Limit  int
	Offset int
}

// Normalize fills in the default limit and clamps a negative offset.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// PageResult carries a slice of items and the total count matching the query.
type PageResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// TeamKey is the lookup key stores use for a team name.
func TeamKey(team string) string {
	return strings.ToLower(strings.TrimSpace(team))
}
