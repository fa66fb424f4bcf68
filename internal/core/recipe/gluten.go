package recipe

import (
	"sort"
	"strings"

	"singlu/internal/core/affiliate"
)

// substitutions maps gluten-containing ingredient keywords to safe swaps.
var substitutions = map[string]string{
	"wheat flour": "gluten-free all-purpose flour or rice flour",
	"flour":       "gluten-free all-purpose flour",
	"breadcrumbs": "gluten-free breadcrumbs or crushed cornflakes",
	"soy sauce":   "tamari (gluten-free) or coconut aminos",
	"pasta":       "gluten-free pasta (rice/corn/quinoa)",
	"noodles":     "rice noodles or glass noodles",
	"tortilla":    "corn tortilla (check GF certified)",
	"barley":      "brown rice or quinoa",
	"rye":         "buckwheat groats (naturally GF)",
	"couscous":    "quinoa or millet",
	"bulgur":      "quinoa or cauliflower rice",
	"semolina":    "rice flour or cornmeal",
	"malt":        "omit or use maple syrup (for flavoring)",
	"beer":        "gluten-free beer or stock",
}

// FlagIngredients scans the submitted ingredients for gluten-containing
// keywords and pairs each hit with its substitute. When the table carries a
// link for the substitute in the region, the flag includes it. Keywords are
// reported in sorted order so output is deterministic.
func FlagIngredients(ingredients []string, region string, table *affiliate.Table) []GlutenFlag {
	text := strings.ToLower(strings.Join(ingredients, "\n"))

	keywords := make([]string, 0, len(substitutions))
	for k := range substitutions {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)

	var flags []GlutenFlag
	for _, keyword := range keywords {
		if !strings.Contains(text, keyword) {
			continue
		}
		flag := GlutenFlag{
			Ingredient: keyword,
			Substitute: substitutions[keyword],
		}
		if table != nil {
			if link, ok := table.Link(flag.Substitute, region); ok {
				flag.Link = link
			}
		}
		flags = append(flags, flag)
	}

	return flags
}

// Substitute returns the gluten-free swap for an ingredient keyword.
func Substitute(keyword string) (string, bool) {
	sub, ok := substitutions[strings.ToLower(keyword)]
	return sub, ok
}
