package recipe

import (
	"context"
	"net/http"
	"strings"

	"singlu/internal/core/affiliate"
	recipeService "singlu/internal/core/recipe"
	"singlu/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenerateRequest is the wire form of one submission. Ingredients may come
// as a list or as free text separated by commas/newlines.
type GenerateRequest struct {
	Ingredients     []string `json:"ingredients,omitempty"`
	IngredientsText string   `json:"ingredients_text,omitempty"`
	Avoid           string   `json:"avoid,omitempty"`
	Servings        int      `json:"servings,omitempty"`
	RecipeCount     int      `json:"recipe_count,omitempty"`
	Region          string   `json:"region,omitempty"`
	Model           string   `json:"model,omitempty"`
}

// GenerateResponse carries the recipe text with its gluten flags and
// matched affiliate products.
type GenerateResponse struct {
	Recipe      string                     `json:"recipe"`
	Model       string                     `json:"model,omitempty"`
	Source      string                     `json:"source"`
	GlutenFlags []recipeService.GlutenFlag `json:"gluten_flags"`
	Products    []affiliate.ProductLink    `json:"products"`
}

// Generator is the recipe requester contract the handler depends on.
type Generator interface {
	Generate(ctx context.Context, req recipeService.GenerateRequest) (*recipeService.Result, error)
}

// Handler serves recipe generation.
type Handler struct {
	service Generator
	table   *affiliate.Table
}

// NewHandler creates the recipe handler.
func NewHandler(service Generator, table *affiliate.Table) *Handler {
	return &Handler{
		service: service,
		table:   table,
	}
}

// HandleGenerate runs the pipeline: collect input, request the recipe,
// attach gluten flags and region product links.
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("invalid request format",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(common.ErrInvalidRequest.Status, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrInvalidRequest.Code,
		})
		return
	}

	ingredients := req.Ingredients
	if len(ingredients) == 0 && req.IngredientsText != "" {
		ingredients = common.SplitIngredients(req.IngredientsText)
	}
	if len(ingredients) == 0 {
		c.JSON(common.ErrInvalidRequest.Status, gin.H{
			"error": "Please enter some ingredients first",
			"code":  common.ErrInvalidRequest.Code,
		})
		return
	}

	region := strings.ToLower(strings.TrimSpace(req.Region))
	if region == "" {
		region = "uk"
	}

	common.LogInfo("processing recipe generation request",
		zap.String("request_id", requestID),
		zap.Int("ingredients", len(ingredients)),
		zap.String("region", region),
		zap.String("client_ip", c.ClientIP()),
	)

	result, err := h.service.Generate(c.Request.Context(), recipeService.GenerateRequest{
		Ingredients: ingredients,
		Avoid:       req.Avoid,
		Servings:    req.Servings,
		RecipeCount: req.RecipeCount,
		Region:      region,
		Model:       req.Model,
	})
	if err != nil {
		if common.IsValidationError(err) {
			c.JSON(common.ErrInvalidRequest.Status, gin.H{
				"error": err.Error(),
				"code":  common.ErrInvalidRequest.Code,
			})
			return
		}
		common.LogError("recipe generation failed",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("code", common.ErrorCode(err)),
		)
		c.JSON(common.ErrorStatus(err), gin.H{
			"error": userMessage(err),
			"code":  common.ErrorCode(err),
		})
		return
	}

	flags := recipeService.FlagIngredients(ingredients, region, h.table)
	products := h.table.Match(result.Text, region)

	c.JSON(http.StatusOK, GenerateResponse{
		Recipe:      result.Text,
		Model:       result.Model,
		Source:      result.Source,
		GlutenFlags: flags,
		Products:    products,
	})
}

// userMessage prefers the predefined message over wrapped detail.
func userMessage(err error) string {
	switch common.ErrorCode(err) {
	case common.ErrCodeRateLimited:
		return common.ErrRateLimited.Message
	case common.ErrCodeUpstreamUnreachable:
		return common.ErrUpstreamUnreachable.Message
	case common.ErrCodeInvalidModelOutput:
		return common.ErrInvalidModelOutput.Message
	}
	return err.Error()
}
