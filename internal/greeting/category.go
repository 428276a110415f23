package greeting

import (
	"fmt"
	"strings"
)

// Category is the closed set of greeting styles
type Category string

const (
	// CategoryFormal addresses the user with salutation and title
	CategoryFormal Category = "formal"

	// CategoryCasual is the default style
	CategoryCasual Category = "casual"

	// CategoryFriendly is a warm, informal style
	CategoryFriendly Category = "friendly"

	// CategoryHumorous is a playful style
	CategoryHumorous Category = "humorous"

	// CategoryCustom carries caller-registered templates
	CategoryCustom Category = "custom"
)

// Categories returns every category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryFormal,
		CategoryCasual,
		CategoryFriendly,
		CategoryHumorous,
		CategoryCustom,
	}
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryFormal, CategoryCasual, CategoryFriendly, CategoryHumorous, CategoryCustom:
		return true
	}
	return false
}

// ParseCategory parses a category name case-insensitively. An empty name
// yields the empty (unspecified) category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "" || c.Valid() {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
