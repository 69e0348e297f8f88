package models

import (
	"sort"
	"strings"
)

// Category is a named food/place category with its emoji and search keywords.
type Category struct {
	Name     string   `json:"name"`
	Emoji    string   `json:"emoji"`
	Keywords []string `json:"keywords"`
}

// Terms returns the category name followed by its keywords.
func (c Category) Terms() []string {
	terms := make([]string, 0, len(c.Keywords)+1)
	terms = append(terms, c.Name)
	return append(terms, c.Keywords...)
}

// Categories maps category keys to categories. Names and keywords are unique
// across the map, compared case-insensitively.
var Categories = map[int]Category{
	1:  {Name: "Pizza", Emoji: "🍕", Keywords: []string{"pizzeria", "calzone"}},
	2:  {Name: "Burger", Emoji: "🍔", Keywords: []string{"hamburger", "cheeseburger"}},
	3:  {Name: "Sushi", Emoji: "🍣", Keywords: []string{"japanese", "ramen"}},
	4:  {Name: "Coffee", Emoji: "☕", Keywords: []string{"cafe", "espresso"}},
	5:  {Name: "Bar", Emoji: "🍺", Keywords: []string{"pub", "brewery"}},
	6:  {Name: "Bakery", Emoji: "🥐", Keywords: []string{"pastry", "bagel"}},
	7:  {Name: "Mexican", Emoji: "🌮", Keywords: []string{"taco", "burrito"}},
	8:  {Name: "Restaurant", Emoji: "🍽️", Keywords: []string{"diner", "bistro"}},
	9:  {Name: "Dessert", Emoji: "🍦", Keywords: []string{"ice cream", "gelato"}},
	10: {Name: "Vegan", Emoji: "🥗", Keywords: []string{"vegetarian", "salad"}},
}

// ValidCategoryKeys returns every key of Categories in ascending order.
func ValidCategoryKeys() []int {
	keys := make([]int, 0, len(Categories))
	for k := range Categories {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// IsValidCategoryKey reports whether key is present in Categories.
func IsValidCategoryKey(key int) bool {
	_, ok := Categories[key]
	return ok
}

var categoriesByTerm = buildCategoriesByTerm()

func buildCategoriesByTerm() map[string]Category {
	byTerm := make(map[string]Category)
	for _, key := range ValidCategoryKeys() {
		c := Categories[key]
		for _, term := range c.Terms() {
			byTerm[strings.ToLower(term)] = c
		}
	}
	return byTerm
}

// CategoryForTerm resolves a category name or keyword to its category.
func CategoryForTerm(term string) (Category, bool) {
	c, ok := categoriesByTerm[strings.ToLower(strings.TrimSpace(term))]
	return c, ok
}
