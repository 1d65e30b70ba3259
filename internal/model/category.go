package model

import "strings"

// MaxPoints is the upper bound of the category point scale.
const MaxPoints = 10

// StarGlyph is the glyph repeated once per point in the wallet view.
const StarGlyph = "★"

// Category is one entry of the category table.
type Category struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// Category keys.
const (
	CategoryPlasticBottle  = "plastic_bottle"
	CategoryPlasticWrapper = "plastic_wrapper"
	CategoryPlasticCan     = "plastic_can"
	CategoryPlasticBag     = "plastic_bag"
	CategoryOtherPlastic   = "other_plastic"
)

// categories is the fixed category table in display order. Every entry must
// stay within [0, MaxPoints].
var categories = []Category{
	{Key: CategoryPlasticBottle, Label: "Plastic bottle", Points: 4},
	{Key: CategoryPlasticWrapper, Label: "Plastic wrapper", Points: 7},
	{Key: CategoryPlasticCan, Label: "Plastic can", Points: 9},
	{Key: CategoryPlasticBag, Label: "Plastic bag", Points: 8},
	{Key: CategoryOtherPlastic, Label: "Other plastic", Points: 5},
}

var categoryIndex = func() map[string]Category {
	m := make(map[string]Category, len(categories))
	for _, c := range categories {
		m[c.Key] = c
	}
	return m
}()

// Categories returns a copy of the category table in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// LookupCategory returns the category for key.
func LookupCategory(key string) (Category, bool) {
	c, ok := categoryIndex[key]
	return c, ok
}

// ValidCategory reports whether key is in the category table.
func ValidCategory(key string) bool {
	_, ok := categoryIndex[key]
	return ok
}

// CategoryPoints returns the points for key, or 0 for unknown keys.
func CategoryPoints(key string) int {
	return categoryIndex[key].Points
}

// CategoryLabel returns a human-readable label, falling back to the key.
func CategoryLabel(key string) string {
	if c, ok := categoryIndex[key]; ok {
		return c.Label
	}
	return key
}

// Stars renders points as a row of star glyphs, clamped to [0, max].
func Stars(points, max int) string {
	if points < 0 {
		points = 0
	}
	if points > max {
		points = max
	}
	return strings.Repeat(StarGlyph, points)
}
