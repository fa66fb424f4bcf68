package queue

import (
	"context"
	"sync"
	"sync/atomic"

	"singlu/internal/infrastructure/config"
	"singlu/internal/pkg/common"

	"go.uber.org/zap"
)

// Generator produces a completion for a prompt. Satisfied by the Hugging
// Face client.
type Generator interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
}

// Request is a queued inference request.
type Request struct {
	Context context.Context
	Prompt  string
	Model   string
	Result  chan Result
}

// Result is the outcome of a queued request.
type Result struct {
	Content string
	Error   error
}

// Status is a queue snapshot for health reporting.
type Status struct {
	QueueLength    int `json:"queue_length"`
	ProcessedCount int `json:"processed_count"`
	MaxQueueSize   int `json:"max_queue_size"`
	Workers        int `json:"workers"`
}

// Manager serializes calls to the inference endpoint through a bounded
// queue. With the default single worker at most one upstream request is in
// flight at a time.
type Manager struct {
	config    *config.Config
	generator Generator
	queue     chan *Request
	done      chan struct{}
	processed int64
	closeOnce sync.Once
}

// NewManager creates the queue and starts its workers.
func NewManager(cfg *config.Config, generator Generator) *Manager {
	m := &Manager{
		config:    cfg,
		generator: generator,
		queue:     make(chan *Request, cfg.Queue.MaxSize),
		done:      make(chan struct{}),
	}

	for i := 0; i < cfg.Queue.Workers; i++ {
		go m.worker(i)
	}

	common.LogInfo("request queue started",
		zap.Int("workers", cfg.Queue.Workers),
		zap.Int("max_size", cfg.Queue.MaxSize),
	)

	return m
}

func (m *Manager) worker(id int) {
	for {
		select {
		case req, ok := <-m.queue:
			if !ok {
				return
			}
			content, err := m.generator.Generate(req.Context, req.Prompt, req.Model)
			atomic.AddInt64(&m.processed, 1)
			req.Result <- Result{Content: content, Error: err}
		case <-m.done:
			return
		}
	}
}

// Submit enqueues a request and waits for its result, honoring ctx.
func (m *Manager) Submit(ctx context.Context, prompt, model string) (string, error) {
	req := &Request{
		Context: ctx,
		Prompt:  prompt,
		Model:   model,
		Result:  make(chan Result, 1),
	}

	select {
	case m.queue <- req:
	default:
		common.LogWarn("request queue full",
			zap.Int("queue_length", len(m.queue)),
			zap.Int("max_queue_size", m.config.Queue.MaxSize),
		)
		return "", common.ErrQueueFull
	}

	select {
	case res := <-req.Result:
		return res.Content, res.Error
	case <-ctx.Done():
		return "", ctx.Err()
	case <-m.done:
		return "", common.ErrQueueFull
	}
}

// GetStatus returns a queue snapshot.
func (m *Manager) GetStatus() *Status {
	return &Status{
		QueueLength:    len(m.queue),
		ProcessedCount: int(atomic.LoadInt64(&m.processed)),
		MaxQueueSize:   m.config.Queue.MaxSize,
		Workers:        m.config.Queue.Workers,
	}
}

// Close stops the workers. Pending requests are abandoned.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
	})
}
