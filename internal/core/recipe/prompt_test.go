package recipe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(GenerateRequest{
		Ingredients: []string{"chicken", "rice", "soy sauce"},
		Avoid:       "dairy",
		Servings:    4,
		RecipeCount: 2,
	})

	assert.Contains(t, prompt, "User ingredients: chicken, rice, soy sauce")
	assert.Contains(t, prompt, "Allergens/diet to avoid (besides gluten): dairy")
	assert.Contains(t, prompt, "Servings: 4")
	assert.Contains(t, prompt, "Create 2 distinct gluten-free recipe OPTIONS")
	assert.Contains(t, prompt, "100% gluten-free")
}

func TestBuildPromptDefaults(t *testing.T) {
	prompt := BuildPrompt(GenerateRequest{
		Ingredients: []string{"rice"},
		Avoid:       "   ",
	})

	assert.Contains(t, prompt, "Allergens/diet to avoid (besides gluten): None specified")
	assert.Contains(t, prompt, "Servings: 2")
	assert.Contains(t, prompt, "Create 1 distinct gluten-free recipe OPTIONS")
	assert.False(t, strings.Contains(prompt, "Servings: 0"))
}
