// Package toast holds per-client transient notifications.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notification.
type Kind string

const (
	// Success marks a confirmation of a completed operation.
	Success Kind = "success"
	// Error marks a failed operation.
	Error Kind = "error"
)

// Toast is one transient notification. Toasts auto-dismiss at ExpiresAt or
// earlier by user action.
type Toast struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Queue is the process-wide notification surface, partitioned by client.
// Insertion order is preserved and identical messages are never deduplicated.
type Queue struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	byClient map[string][]Toast
}

// NewQueue creates a queue whose toasts live for ttl.
func NewQueue(ttl time.Duration) *Queue {
	return &Queue{
		ttl:      ttl,
		now:      time.Now,
		byClient: make(map[string][]Toast),
	}
}

// Push appends a notification for a client and returns it.
func (q *Queue) Push(clientID string, kind Kind, message string) Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	t := Toast{
		ID:        uuid.New().String(),
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(q.ttl),
	}
	q.byClient[clientID] = append(q.byClient[clientID], t)
	return t
}

// Active returns a client's live notifications in insertion order, dropping
// any that have expired.
func (q *Queue) Active(clientID string) []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	live := q.byClient[clientID][:0]
	for _, t := range q.byClient[clientID] {
		if t.ExpiresAt.After(now) {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		delete(q.byClient, clientID)
		return nil
	}
	q.byClient[clientID] = live

	out := make([]Toast, len(live))
	copy(out, live)
	return out
}

// Dismiss removes one notification by ID. It reports whether the
// notification was present.
func (q *Queue) Dismiss(clientID, id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	toasts := q.byClient[clientID]
	for i, t := range toasts {
		if t.ID == id {
			q.byClient[clientID] = append(toasts[:i], toasts[i+1:]...)
			return true
		}
	}
	return false
}
