package service

import (
	"context"

	"singlu/internal/core/ai/cache"
	"singlu/internal/core/ai/huggingface"
	"singlu/internal/core/ai/queue"
	"singlu/internal/infrastructure/config"
	"singlu/internal/pkg/common"
)

// Response is a completion produced by the inference pipeline.
type Response struct {
	Content  string
	CacheHit bool
}

// Service runs prompts through cache, queue and the inference client.
type Service struct {
	config *config.Config
	client *huggingface.Client
	queue  *queue.Manager
	store  cache.Store
}

// NewService wires the inference pipeline.
func NewService(cfg *config.Config, store cache.Store) (*Service, error) {
	client := huggingface.NewClient(cfg)
	q := queue.NewManager(cfg, client)

	return &Service{
		config: cfg,
		client: client,
		queue:  q,
		store:  store,
	}, nil
}

// ProcessRequest returns the completion for the prompt, serving from cache
// when possible. Prompt whitespace is normalized first so equivalent
// submissions share a cache key.
func (s *Service) ProcessRequest(ctx context.Context, prompt, model string) (*Response, error) {
	prompt = common.NormalizeWhitespace(prompt)

	if s.store != nil {
		if val, err := s.store.Get(ctx, prompt); err == nil && val != "" {
			return &Response{Content: val, CacheHit: true}, nil
		}
	}

	content, err := s.queue.Submit(ctx, prompt, model)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		_ = s.store.Set(ctx, prompt, content)
	}

	return &Response{Content: content}, nil
}

// QueueStatus exposes the request queue snapshot for health reporting.
func (s *Service) QueueStatus() *queue.Status {
	return s.queue.GetStatus()
}

// Close stops the queue workers.
func (s *Service) Close() {
	s.queue.Close()
}
