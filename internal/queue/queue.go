package queue

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue delivers to subscribers synchronously, retrying failed
// handlers up to MaxRetries times.
type InMemoryQueue struct {
	mu         sync.Mutex
	handlers   map[string][]func(payload any) error
	MaxRetries int
	Backoff    time.Duration
	Logger     *zap.Logger
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue(logger *zap.Logger) *InMemoryQueue {
	return &InMemoryQueue{
		handlers:   make(map[string][]func(payload any) error),
		MaxRetries: 3,
		Backoff:    500 * time.Millisecond,
		Logger:     logger,
	}
}

// Publish hands payload to every subscriber of topic before returning.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := append([]func(payload any) error(nil), q.handlers[topic]...)
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	var failed int
	for _, handler := range handlers {
		if err := q.deliver(topic, handler, payload); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d subscribers failed on topic %s", failed, len(handlers), topic)
	}
	return nil
}

// deliver handles retries with linear backoff
func (q *InMemoryQueue) deliver(topic string, handler func(payload any) error, payload any) error {
	var err error
	for attempt := 0; attempt <= q.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * q.Backoff)
		}
		if err = handler(payload); err == nil {
			return nil
		}
		q.Logger.Warn("subscriber failed",
			zap.String("topic", topic), zap.Int("attempt", attempt+1), zap.Int("max_retries", q.MaxRetries), zap.Error(err))
	}
	q.Logger.Error("subscriber permanently failed", zap.String("topic", topic), zap.Error(err))
	return err
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

var _ Queue = (*InMemoryQueue)(nil)
