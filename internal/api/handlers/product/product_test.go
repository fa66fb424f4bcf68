package product

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"singlu/internal/core/affiliate"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(table *affiliate.Table) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/v1/products", NewHandler(table).HandleList)
	return router
}

func TestHandleList(t *testing.T) {
	table := affiliate.NewTable(map[string]map[string]string{
		"tamari": {"uk": "https://example.co.uk/tamari", "es": "https://example.es/tamari"},
		"quinoa": {"uk": "https://example.co.uk/quinoa"},
	}, nil)
	router := newTestRouter(table)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?region=es", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Region   string                  `json:"region"`
		Products []affiliate.ProductLink `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "es", resp.Region)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "tamari", resp.Products[0].Product)
}

func TestHandleListUnknownRegion(t *testing.T) {
	table := affiliate.NewTable(map[string]map[string]string{
		"tamari": {"uk": "https://example.co.uk/tamari"},
	}, nil)
	router := newTestRouter(table)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?region=fr", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"products":[]`)
}

func TestHandleListDefaultRegion(t *testing.T) {
	router := newTestRouter(affiliate.NewEmpty())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"region":"uk"`)
}
