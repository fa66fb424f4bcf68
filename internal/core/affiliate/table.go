package affiliate

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"singlu/internal/pkg/common"

	"go.uber.org/zap"
)

// Table is the read-only product-link table: product keyword to region to
// purchase URL, plus the per-region affiliate tag appended to every link.
// Loaded once at startup and passed explicitly to its consumers.
type Table struct {
	links map[string]map[string]string
	tags  map[string]string
}

// NewEmpty returns a table with no products. Used when the link file is
// missing so product features degrade instead of failing.
func NewEmpty() *Table {
	return &Table{
		links: map[string]map[string]string{},
		tags:  map[string]string{},
	}
}

// NewTable builds a table from an explicit mapping. Keys are lower-cased.
func NewTable(links map[string]map[string]string, tags map[string]string) *Table {
	normalized := make(map[string]map[string]string, len(links))
	for product, regions := range links {
		byRegion := make(map[string]string, len(regions))
		for region, url := range regions {
			byRegion[strings.ToLower(region)] = url
		}
		normalized[strings.ToLower(product)] = byRegion
	}
	if tags == nil {
		tags = map[string]string{}
	}
	return &Table{links: normalized, tags: tags}
}

// Load reads the product-link JSON file. A missing or malformed file
// returns an empty table together with a CONFIG_MISSING error; callers log
// and continue.
func Load(path string, tags map[string]string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewEmpty(), common.WrapError(common.ErrConfigMissing,
			fmt.Errorf("failed to read product links: %w", err))
	}

	var links map[string]map[string]string
	if err := common.ParseJSONBytes(data, &links); err != nil {
		return NewEmpty(), common.WrapError(common.ErrConfigMissing,
			fmt.Errorf("failed to parse product links: %w", err))
	}

	table := NewTable(links, tags)

	common.LogInfo("product link table loaded",
		zap.String("path", path),
		zap.Int("products", len(table.links)),
	)

	return table, nil
}

// Link returns the affiliate link for a product in a region, with the
// region tag appended when configured.
func (t *Table) Link(product, region string) (string, bool) {
	regions, ok := t.links[strings.ToLower(product)]
	if !ok {
		return "", false
	}
	base, ok := regions[strings.ToLower(region)]
	if !ok {
		return "", false
	}
	if tag := t.tags[strings.ToLower(region)]; tag != "" {
		return base + "?tag=" + tag, true
	}
	return base, true
}

// Products returns the product keywords in sorted order.
func (t *Table) Products() []string {
	products := make([]string, 0, len(t.links))
	for product := range t.links {
		products = append(products, product)
	}
	sort.Strings(products)
	return products
}

// Len returns the number of products in the table.
func (t *Table) Len() int {
	return len(t.links)
}
