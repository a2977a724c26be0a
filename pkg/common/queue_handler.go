package common

import (
	"iter"
	"slices"
	"sync"
	"time"
)

// QueueProcessor is a function that processes a batch of items from the queue.
type QueueProcessor[V any] func(items []V)

// QueueHandler is a generic queue handler that processes items in the background.
type QueueHandler[V any] struct {
	mu        sync.Mutex
	queue     []V
	processor QueueProcessor[V]
	chunkSize int
	interval  time.Duration
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewQueueHandler creates a new QueueHandler that flushes at most chunkSize
// items every interval.
func NewQueueHandler[V any](processor QueueProcessor[V], chunkSize int, interval time.Duration) *QueueHandler[V] {
	if interval <= 0 {
		interval = time.Second
	}
	q := &QueueHandler[V]{
		queue:     make([]V, 0),
		processor: processor,
		chunkSize: max(chunkSize, 1),
		interval:  interval,
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	go q.processQueue()
	return q
}

// Add adds an item to the queue.
func (h *QueueHandler[V]) Add(item ...V) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queue = append(h.queue, item...)
}

func (h *QueueHandler[V]) AddIter(item iter.Seq[V]) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.queue = append(h.queue, slices.Collect(item)...)
}

func (h *QueueHandler[V]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queue)
}

func (h *QueueHandler[V]) next() []V {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.queue) == 0 {
		return nil
	}
	items := h.queue[:min(h.chunkSize, len(h.queue))]
	h.queue = h.queue[len(items):]
	return items
}

func (h *QueueHandler[V]) drain() {
	for items := h.next(); items != nil; items = h.next() {
		h.processor(items)
	}
}

func (h *QueueHandler[V]) processQueue() {
	defer close(h.stopped)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-h.done:
			h.drain()
			return
		case <-ticker.C:
			if items := h.next(); items != nil {
				h.processor(items)
			}
		}
	}
}

// Close processes what is left in the queue and stops the worker.
func (h *QueueHandler[V]) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
	<-h.stopped
}
