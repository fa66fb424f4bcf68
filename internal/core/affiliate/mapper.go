package affiliate

import "strings"

// ProductLink is a product keyword matched in recipe text together with its
// regional affiliate link.
type ProductLink struct {
	Product string `json:"product"`
	URL     string `json:"url"`
}

// Match scans text for known product keywords and returns the region's
// links for every hit, in sorted keyword order. Pure function of its
// inputs: unknown regions and unmatched keywords simply produce no entries.
func (t *Table) Match(text, region string) []ProductLink {
	lower := strings.ToLower(text)

	var matches []ProductLink
	for _, product := range t.Products() {
		if !strings.Contains(lower, product) {
			continue
		}
		url, ok := t.Link(product, region)
		if !ok {
			continue
		}
		matches = append(matches, ProductLink{Product: product, URL: url})
	}

	return matches
}
