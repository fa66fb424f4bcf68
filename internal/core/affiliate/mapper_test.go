package affiliate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapperTable() *Table {
	return NewTable(map[string]map[string]string{
		"soy sauce":         {"uk": "https://example.co.uk/soy", "es": "https://example.es/soy"},
		"gluten-free pasta": {"uk": "https://example.co.uk/pasta"},
		"tamari":            {"es": "https://example.es/tamari"},
	}, map[string]string{"uk": "singlu-21"})
}

func TestMatchScansRecipeText(t *testing.T) {
	table := mapperTable()
	text := "Season with Soy Sauce, then serve the gluten-free pasta hot."

	matches := table.Match(text, "uk")
	require.Len(t, matches, 2)
	assert.Equal(t, "gluten-free pasta", matches[0].Product)
	assert.Equal(t, "https://example.co.uk/pasta?tag=singlu-21", matches[0].URL)
	assert.Equal(t, "soy sauce", matches[1].Product)
	assert.Equal(t, "https://example.co.uk/soy?tag=singlu-21", matches[1].URL)
}

func TestMatchIsPure(t *testing.T) {
	table := mapperTable()
	text := "Stir in tamari and soy sauce."

	first := table.Match(text, "es")
	second := table.Match(text, "es")
	assert.Equal(t, first, second)
}

func TestMatchUnknownRegionIsEmpty(t *testing.T) {
	table := mapperTable()

	matches := table.Match("soy sauce everywhere", "fr")
	assert.Empty(t, matches)
}

func TestMatchRegionWithoutProductOmitted(t *testing.T) {
	table := mapperTable()

	// tamari has no uk link; silently omitted.
	matches := table.Match("a splash of tamari", "uk")
	assert.Empty(t, matches)
}

func TestMatchNoKeywords(t *testing.T) {
	table := mapperTable()

	matches := table.Match("plain rice and vegetables", "uk")
	assert.Empty(t, matches)
}
