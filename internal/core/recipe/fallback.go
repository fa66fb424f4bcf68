package recipe

import (
	"strings"
	"unicode"
)

// FallbackEntry is one offline recipe, matched by keyword overlap against
// the submitted ingredients when the live inference call has failed.
type FallbackEntry struct {
	Name     string
	Keywords []string
	Text     string
}

// FallbackDataset is the static offline recipe set.
type FallbackDataset struct {
	entries []FallbackEntry
}

// NewFallbackDataset returns the built-in offline dataset.
func NewFallbackDataset() *FallbackDataset {
	return &FallbackDataset{entries: defaultFallbackEntries}
}

// Lookup returns the entry with the highest keyword overlap against the
// ingredients. Keywords match whole words only, so "rice" does not count
// against "licorice". Ties keep the earliest entry; zero overlap reports no
// match.
func (d *FallbackDataset) Lookup(ingredients []string) (*FallbackEntry, bool) {
	tokenized := make([][]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		tokenized = append(tokenized, tokenize(ingredient))
	}

	best := -1
	bestScore := 0
	for i, entry := range d.entries {
		score := 0
		for _, keyword := range entry.Keywords {
			phrase := tokenize(keyword)
			for _, tokens := range tokenized {
				if containsPhrase(tokens, phrase) {
					score++
					break
				}
			}
		}
		if score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 {
		return nil, false
	}
	return &d.entries[best], true
}

// tokenize lower-cases and splits on anything that is not a letter or digit.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// containsPhrase reports whether phrase appears as consecutive whole tokens.
func containsPhrase(tokens, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		match := true
		for j, word := range phrase {
			if tokens[i+j] != word {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// Len returns the number of offline recipes.
func (d *FallbackDataset) Len() int {
	return len(d.entries)
}

var defaultFallbackEntries = []FallbackEntry{
	{
		Name:     "Chicken and Rice Skillet",
		Keywords: []string{"chicken", "rice", "onion", "garlic", "tomato"},
		Text: `# Chicken and Rice Skillet
Servings: 2
Prep: 10 | Cook: 25

## Ingredients
- 2 chicken thighs, diced
- 1 cup rice
- 1 onion, chopped
- 2 cloves garlic, minced
- 1 cup chopped tomatoes
- 2 cups stock (check GF certified)

## Method
1. Brown the chicken in a little oil, then set aside.
2. Soften the onion and garlic, stir in the rice and tomatoes.
3. Return the chicken, add the stock and simmer covered for 18-20 minutes.

## Substitutions & Notes
- Use tamari instead of soy sauce for seasoning.
- Leftovers keep for 2 days refrigerated.`,
	},
	{
		Name:     "Rice Noodle Stir-Fry",
		Keywords: []string{"noodles", "soy sauce", "vegetable", "pepper", "carrot", "egg"},
		Text: `# Rice Noodle Stir-Fry
Servings: 2
Prep: 10 | Cook: 10

## Ingredients
- 200g rice noodles
- Mixed vegetables (pepper, carrot, spinach)
- 2 tbsp tamari (gluten-free)
- 1 egg, beaten
- 1 tsp sesame oil

## Method
1. Soak the rice noodles per the packet instructions and drain.
2. Stir-fry the vegetables on high heat, push aside and scramble the egg.
3. Toss in the noodles with tamari and sesame oil for 2 minutes.

## Substitutions & Notes
- Tamari replaces soy sauce to stay gluten-free.
- Coconut aminos work as a soy-free option.`,
	},
	{
		Name:     "Quinoa Vegetable Bowl",
		Keywords: []string{"quinoa", "spinach", "tomato", "chickpea", "lemon", "couscous", "bulgur"},
		Text: `# Quinoa Vegetable Bowl
Servings: 2
Prep: 10 | Cook: 15

## Ingredients
- 1 cup quinoa, rinsed
- 1 can chickpeas, drained
- Handful of spinach
- Cherry tomatoes, halved
- Juice of 1 lemon, olive oil

## Method
1. Simmer the quinoa in 2 cups of water for 15 minutes.
2. Fold in the chickpeas and spinach while the quinoa is hot.
3. Dress with lemon juice and olive oil, top with tomatoes.

## Substitutions & Notes
- Quinoa stands in for couscous or bulgur, which contain gluten.
- Add feta or avocado for richness.`,
	},
	{
		Name:     "Corn Tortilla Tacos",
		Keywords: []string{"tortilla", "beef", "beans", "cheese", "lettuce", "avocado"},
		Text: `# Corn Tortilla Tacos
Servings: 2
Prep: 10 | Cook: 12

## Ingredients
- 6 corn tortillas (check GF certified)
- 250g minced beef or black beans
- Shredded lettuce, grated cheese
- 1 avocado, sliced
- Ground cumin and paprika

## Method
1. Brown the beef (or warm the beans) with cumin and paprika.
2. Warm the corn tortillas in a dry pan.
3. Fill the tortillas and top with lettuce, cheese and avocado.

## Substitutions & Notes
- Corn tortillas replace wheat tortillas to stay gluten-free.
- Skip the cheese for a dairy-free version.`,
	},
	{
		Name:     "Baked Salmon with Potatoes",
		Keywords: []string{"salmon", "fish", "potato", "lemon", "butter", "herbs"},
		Text: `# Baked Salmon with Potatoes
Servings: 2
Prep: 10 | Cook: 30

## Ingredients
- 2 salmon fillets
- 400g baby potatoes, halved
- 1 lemon, sliced
- Butter or olive oil
- Fresh herbs (dill or parsley)

## Method
1. Roast the potatoes at 200C for 20 minutes.
2. Add the salmon and lemon slices to the tray.
3. Bake for a further 10-12 minutes until the fish flakes.

## Substitutions & Notes
- Naturally gluten-free; check any seasoning blends for malt.
- Olive oil keeps it dairy-free.`,
	},
}
