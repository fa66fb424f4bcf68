package recipe

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the gluten-free instruction prompt for the model.
func BuildPrompt(req GenerateRequest) string {
	avoid := strings.TrimSpace(req.Avoid)
	if avoid == "" {
		avoid = "None specified"
	}
	servings := req.Servings
	if servings <= 0 {
		servings = 2
	}
	count := req.RecipeCount
	if count <= 0 {
		count = 1
	}

	return fmt.Sprintf(`You are a culinary assistant specialized in gluten-free cooking. Ensure every recipe is 100%% gluten-free.
If any provided ingredient contains gluten, automatically swap it for safe alternatives and mention the swap.

User ingredients: %s
Allergens/diet to avoid (besides gluten): %s
Servings: %d

TASK: Create %d distinct gluten-free recipe OPTIONS that primarily use the user's ingredients.
Each option must follow EXACTLY this Markdown format:

# Recipe Title
Servings: <number>
Prep: <minutes> | Cook: <minutes>

## Ingredients
- <bullet list of GF ingredients only>

## Method
1. <step>
2. <step>
3. <step>

## Substitutions & Notes
- <list any swaps or GF cautions>
- <tips for variations or storage>

Keep it concise but practical. Avoid brand names. Always ensure substitutes are safe for celiac/gluten intolerance.`,
		strings.Join(req.Ingredients, ", "),
		avoid,
		servings,
		count,
	)
}
