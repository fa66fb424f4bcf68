package huggingface

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"singlu/internal/infrastructure/config"
	"singlu/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client talks to the Hugging Face router chat-completion endpoint.
type Client struct {
	config *config.Config
	client *resty.Client
}

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the chat-completion request body.
type Request struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

// Response is the chat-completion response body.
type Response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// retryable reports whether the attempt should be retried: throttling and
// unavailability statuses, plus transport errors. The attempt budget itself
// comes from config, not from here.
func retryable(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	return r.StatusCode() == http.StatusTooManyRequests ||
		r.StatusCode() == http.StatusServiceUnavailable
}

// NewClient creates a client with the configured retry budget. MaxAttempts
// counts the first call, so the retry count is one less.
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.HuggingFace.BaseURL).
		SetTimeout(cfg.HuggingFace.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.HuggingFace.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(cfg.HuggingFace.MaxAttempts - 1).
		SetRetryWaitTime(cfg.HuggingFace.RetryWait).
		SetRetryMaxWaitTime(cfg.HuggingFace.RetryMaxWait).
		AddRetryCondition(retryable)

	return &Client{
		config: cfg,
		client: client,
	}
}

// Generate sends the prompt and returns the completion text. The model
// argument overrides the configured model when non-empty. Failures map to
// the pipeline error kinds: RateLimited, UpstreamUnreachable,
// InvalidModelOutput.
func (c *Client) Generate(ctx context.Context, prompt, model string) (content string, err error) {
	if model == "" {
		model = c.config.HuggingFace.Model
	}

	start := time.Now()
	defer func() { common.LogModelCall(model, time.Since(start), err) }()

	req := &Request{
		Model: model,
		Messages: []Message{
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: c.config.HuggingFace.MaxTokens,
	}

	common.LogInfo("sending request to inference endpoint",
		zap.String("model", model),
		zap.Int("prompt_length", len(prompt)),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")

	if err != nil {
		common.LogError("inference endpoint unreachable",
			zap.Error(err),
			zap.String("model", model),
		)
		return "", common.WrapError(common.ErrUpstreamUnreachable, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		common.LogWarn("inference endpoint throttled after retries",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", model),
		)
		return "", common.WrapError(common.ErrRateLimited,
			fmt.Errorf("endpoint returned status %d after %d attempts", resp.StatusCode(), c.config.HuggingFace.MaxAttempts))
	default:
		common.LogError("inference endpoint returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", model),
			zap.String("response", truncate(resp.String(), 500)),
		)
		return "", common.WrapError(common.ErrUpstreamUnreachable,
			fmt.Errorf("endpoint returned status %d: %s", resp.StatusCode(), truncate(resp.String(), 500)))
	}

	var result Response
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", common.WrapError(common.ErrInvalidModelOutput,
			fmt.Errorf("failed to parse response: %w", err))
	}

	if len(result.Choices) == 0 {
		return "", common.WrapError(common.ErrInvalidModelOutput,
			fmt.Errorf("no choices in response"))
	}

	content = result.Choices[0].Message.Content
	if content == "" {
		return "", common.WrapError(common.ErrInvalidModelOutput,
			fmt.Errorf("empty content in response"))
	}

	common.LogInfo("inference endpoint responded",
		zap.String("model", model),
		zap.Int("content_length", len(content)),
		zap.Int("total_tokens", result.Usage.TotalTokens),
	)

	return content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
