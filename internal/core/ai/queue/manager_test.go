package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"singlu/internal/infrastructure/config"
	"singlu/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	mu      sync.Mutex
	content string
	err     error
	block   chan struct{}
	calls   int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt, model string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.block != nil {
		<-s.block
	}
	return s.content, s.err
}

func queueConfig(workers, maxSize int) *config.Config {
	return &config.Config{
		Queue: config.QueueConfig{Workers: workers, MaxSize: maxSize},
	}
}

func TestSubmitReturnsResult(t *testing.T) {
	gen := &stubGenerator{content: "a recipe"}
	m := NewManager(queueConfig(1, 10), gen)
	defer m.Close()

	content, err := m.Submit(context.Background(), "prompt", "model")
	require.NoError(t, err)
	assert.Equal(t, "a recipe", content)
	assert.Equal(t, 1, m.GetStatus().ProcessedCount)
}

func TestSubmitPropagatesError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("boom")}
	m := NewManager(queueConfig(1, 10), gen)
	defer m.Close()

	_, err := m.Submit(context.Background(), "prompt", "")
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
}

func TestSubmitQueueFull(t *testing.T) {
	gen := &stubGenerator{content: "ok", block: make(chan struct{})}
	m := NewManager(queueConfig(1, 1), gen)
	defer m.Close()

	// First request occupies the worker, second fills the queue.
	go m.Submit(context.Background(), "one", "")
	go m.Submit(context.Background(), "two", "")
	time.Sleep(50 * time.Millisecond)

	_, err := m.Submit(context.Background(), "three", "")
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.ErrCodeQueueFull))

	close(gen.block)
}

func TestSubmitHonorsContext(t *testing.T) {
	gen := &stubGenerator{content: "ok", block: make(chan struct{})}
	m := NewManager(queueConfig(1, 10), gen)
	defer m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := m.Submit(ctx, "prompt", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(gen.block)
}

func TestStatusSnapshot(t *testing.T) {
	m := NewManager(queueConfig(2, 5), &stubGenerator{content: "ok"})
	defer m.Close()

	status := m.GetStatus()
	assert.Equal(t, 2, status.Workers)
	assert.Equal(t, 5, status.MaxQueueSize)
}
