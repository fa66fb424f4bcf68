package recipe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"singlu/internal/core/affiliate"
	recipeService "singlu/internal/core/recipe"
	"singlu/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	result *recipeService.Result
	err    error
	got    recipeService.GenerateRequest
}

func (s *stubService) Generate(ctx context.Context, req recipeService.GenerateRequest) (*recipeService.Result, error) {
	s.got = req
	return s.result, s.err
}

func testTable() *affiliate.Table {
	return affiliate.NewTable(map[string]map[string]string{
		"soy sauce": {"uk": "https://www.amazon.co.uk/dp/B0834Q7M9H"},
		"gluten-free all-purpose flour or rice flour": {"uk": "https://www.amazon.co.uk/dp/B00E4R6W9K"},
	}, map[string]string{"uk": "singlu-21"})
}

func newTestRouter(svc Generator, table *affiliate.Table) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(svc, table)
	router.POST("/api/v1/recipe/generate", handler.HandleGenerate)
	return router
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipe/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleGenerateScenario(t *testing.T) {
	// Recipe text mentions soy sauce, so the UK link attaches.
	svc := &stubService{result: &recipeService.Result{
		Text:   "# Stir-Fry\nUse gluten-free soy sauce and rice.",
		Model:  "test/model",
		Source: recipeService.SourceModel,
	}}
	router := newTestRouter(svc, testTable())

	w := postJSON(router, `{"ingredients":["wheat flour","soy sauce"],"region":"UK"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Contains(t, resp.Recipe, "Stir-Fry")
	assert.Equal(t, "model", resp.Source)
	assert.Equal(t, "uk", svc.got.Region)

	// wheat flour flagged with a gluten-free flour substitution and link.
	var flourFlag *recipeService.GlutenFlag
	for i := range resp.GlutenFlags {
		if resp.GlutenFlags[i].Ingredient == "wheat flour" {
			flourFlag = &resp.GlutenFlags[i]
		}
	}
	require.NotNil(t, flourFlag)
	assert.Contains(t, flourFlag.Substitute, "gluten-free all-purpose flour")
	assert.Equal(t, "https://www.amazon.co.uk/dp/B00E4R6W9K?tag=singlu-21", flourFlag.Link)

	require.Len(t, resp.Products, 1)
	assert.Equal(t, "soy sauce", resp.Products[0].Product)
	assert.Equal(t, "https://www.amazon.co.uk/dp/B0834Q7M9H?tag=singlu-21", resp.Products[0].URL)
}

func TestHandleGenerateFreeTextIngredients(t *testing.T) {
	svc := &stubService{result: &recipeService.Result{Text: "recipe", Source: recipeService.SourceModel}}
	router := newTestRouter(svc, affiliate.NewEmpty())

	w := postJSON(router, `{"ingredients_text":"chicken, rice\nspinach","region":"es"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"chicken", "rice", "spinach"}, svc.got.Ingredients)
}

func TestHandleGenerateDefaultsRegion(t *testing.T) {
	svc := &stubService{result: &recipeService.Result{Text: "recipe", Source: recipeService.SourceModel}}
	router := newTestRouter(svc, affiliate.NewEmpty())

	w := postJSON(router, `{"ingredients":["rice"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "uk", svc.got.Region)
}

func TestHandleGenerateEmptyIngredients(t *testing.T) {
	router := newTestRouter(&stubService{}, affiliate.NewEmpty())

	w := postJSON(router, `{"ingredients":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), common.ErrCodeInvalidRequest)
}

func TestHandleGenerateInvalidBody(t *testing.T) {
	router := newTestRouter(&stubService{}, affiliate.NewEmpty())

	w := postJSON(router, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGenerateUpstreamErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        *common.CustomError
		wantStatus int
	}{
		{"rate limited", common.ErrRateLimited, http.StatusServiceUnavailable},
		{"unreachable", common.ErrUpstreamUnreachable, http.StatusBadGateway},
		{"invalid output", common.ErrInvalidModelOutput, http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&stubService{err: tc.err}, affiliate.NewEmpty())

			w := postJSON(router, `{"ingredients":["rice"]}`)
			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.err.Code)
			assert.Contains(t, w.Body.String(), tc.err.Message)
		})
	}
}

func TestHandleGenerateSetsRequestID(t *testing.T) {
	svc := &stubService{result: &recipeService.Result{Text: "recipe", Source: recipeService.SourceModel}}
	router := newTestRouter(svc, affiliate.NewEmpty())

	w := postJSON(router, `{"ingredients":["rice"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
