package recipe

// GenerateRequest is one user submission. Immutable once built; discarded
// after the response is rendered.
type GenerateRequest struct {
	Ingredients []string
	Avoid       string
	Servings    int
	RecipeCount int
	Region      string
	Model       string
}

// Result sources.
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

// Result is the generated recipe. Source records whether the text came
// from the model or from the offline dataset.
type Result struct {
	Text     string `json:"text"`
	Model    string `json:"model,omitempty"`
	Source   string `json:"source"`
	CacheHit bool   `json:"cache_hit,omitempty"`
}

// GlutenFlag pairs a gluten-containing ingredient with its suggested
// substitute and, when available, an affiliate link for the substitute.
type GlutenFlag struct {
	Ingredient string `json:"ingredient"`
	Substitute string `json:"substitute"`
	Link       string `json:"link,omitempty"`
}
