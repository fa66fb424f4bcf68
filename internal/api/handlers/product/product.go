package product

import (
	"net/http"
	"strings"

	"singlu/internal/core/affiliate"

	"github.com/gin-gonic/gin"
)

// Handler serves region product links from the affiliate table.
type Handler struct {
	table *affiliate.Table
}

// NewHandler creates the product handler.
func NewHandler(table *affiliate.Table) *Handler {
	return &Handler{table: table}
}

// HandleList returns every product with a link in the requested region.
// Unknown regions yield an empty list.
func (h *Handler) HandleList(c *gin.Context) {
	region := strings.ToLower(strings.TrimSpace(c.DefaultQuery("region", "uk")))

	links := make([]affiliate.ProductLink, 0)
	for _, product := range h.table.Products() {
		if url, ok := h.table.Link(product, region); ok {
			links = append(links, affiliate.ProductLink{Product: product, URL: url})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"region":   region,
		"products": links,
	})
}
