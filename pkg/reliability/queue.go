package reliability

import "sync"

// Queue is an append-only dead-letter queue. It is safe for concurrent use.
type Queue struct {
	mu    sync.Mutex
	items []string
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Append adds payload to the end of the queue.
func (q *Queue) Append(payload string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, payload)
}

// Snapshot returns a copy of the queued payloads in arrival order.
func (q *Queue) Snapshot() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of queued payloads.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
