package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryTermsAreUnique(t *testing.T) {
	seen := make(map[string]int)
	for key, c := range Categories {
		for _, term := range c.Terms() {
			lower := strings.ToLower(term)
			if other, dup := seen[lower]; dup {
				t.Errorf("term %q used by categories %d and %d", term, other, key)
			}
			seen[lower] = key
		}
	}
}

func TestValidCategoryKeys(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ValidCategoryKeys())
	assert.True(t, IsValidCategoryKey(4))
	assert.False(t, IsValidCategoryKey(0))
	assert.False(t, IsValidCategoryKey(11))
}

func TestCategoryForTerm(t *testing.T) {
	tests := []struct {
		term string
		want string
		ok   bool
	}{
		{"Coffee", "Coffee", true},
		{"  espresso ", "Coffee", true},
		{"ICE CREAM", "Dessert", true},
		{"bar", "Bar", true},
		{"laundromat", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.term, func(t *testing.T) {
			c, ok := CategoryForTerm(tc.term)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, c.Name)
		})
	}
}
