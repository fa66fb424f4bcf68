package recipe

import (
	"context"
	"fmt"

	aiservice "singlu/internal/core/ai/service"
	"singlu/internal/infrastructure/config"
	"singlu/internal/pkg/common"

	"go.uber.org/zap"
)

// Generator produces completions for prompts. Satisfied by the AI service;
// tests substitute a stub.
type Generator interface {
	ProcessRequest(ctx context.Context, prompt, model string) (*aiservice.Response, error)
}

// Service is the recipe requester: prompt construction, inference call and
// offline fallback.
type Service struct {
	config   *config.Config
	ai       Generator
	fallback *FallbackDataset
}

// NewService creates the recipe service.
func NewService(cfg *config.Config, ai Generator, fallback *FallbackDataset) *Service {
	return &Service{
		config:   cfg,
		ai:       ai,
		fallback: fallback,
	}
}

// Generate returns a recipe for the request, either from the model or,
// when the endpoint stays throttled or unreachable, from the offline
// dataset by ingredient overlap. Exactly one of the result and the error is
// set.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	if len(req.Ingredients) == 0 {
		return nil, common.NewValidationError("ingredient list must not be empty")
	}

	prompt := BuildPrompt(req)

	resp, err := s.ai.ProcessRequest(ctx, prompt, req.Model)
	if err != nil {
		if s.shouldFallback(err) {
			if entry, ok := s.fallback.Lookup(req.Ingredients); ok {
				common.LogWarn("serving offline fallback recipe",
					zap.String("entry", entry.Name),
					zap.String("reason", common.ErrorCode(err)),
				)
				return &Result{
					Text:   entry.Text,
					Source: SourceFallback,
				}, nil
			}
			common.LogWarn("no fallback entry matched ingredients",
				zap.Int("ingredients", len(req.Ingredients)),
			)
		}
		return nil, err
	}

	if resp == nil || resp.Content == "" {
		return nil, common.WrapError(common.ErrInvalidModelOutput,
			fmt.Errorf("empty completion"))
	}

	model := req.Model
	if model == "" {
		model = s.config.HuggingFace.Model
	}

	return &Result{
		Text:     resp.Content,
		Model:    model,
		Source:   SourceModel,
		CacheHit: resp.CacheHit,
	}, nil
}

// shouldFallback limits the offline dataset to failures of the endpoint
// itself; an unusable model answer is surfaced instead.
func (s *Service) shouldFallback(err error) bool {
	if !s.config.Fallback.Enabled || s.fallback == nil {
		return false
	}
	return common.IsCode(err, common.ErrCodeRateLimited) ||
		common.IsCode(err, common.ErrCodeUpstreamUnreachable)
}
