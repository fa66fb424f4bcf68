package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitIngredients(t *testing.T) {
	got := SplitIngredients("chicken thighs, tomatoes\n onions,  , garlic")
	assert.Equal(t, []string{"chicken thighs", "tomatoes", "onions", "garlic"}, got)

	assert.Empty(t, SplitIngredients("  ,\n, "))
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeWhitespace("  a \t b\n\nc "))
	assert.Equal(t, "", NormalizeWhitespace("   "))
}
