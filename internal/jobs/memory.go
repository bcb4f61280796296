package jobs

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryQueue is the in-process Queue used when no Redis address is set.
type MemoryQueue struct {
	mu     sync.Mutex
	jobs   map[uuid.UUID]Job
	recent []uuid.UUID
	ready  chan uuid.UUID
}

// NewMemoryQueue buffers up to size pending jobs; Enqueue blocks beyond that.
func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 256
	}
	return &MemoryQueue{
		jobs:  make(map[uuid.UUID]Job),
		ready: make(chan uuid.UUID, size),
	}
}

var _ Queue = (*MemoryQueue)(nil)

func (q *MemoryQueue) Close() error {
	return nil
}

// Enqueue records job and hands its ID to the ready channel. The record is
// made first so a worker never pops an ID it cannot look up, and is rolled
// back when ctx ends before a slot frees up.
func (q *MemoryQueue) Enqueue(ctx context.Context, job *Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	q.mu.Lock()
	q.jobs[job.ID] = *job
	q.recent = append([]uuid.UUID{job.ID}, q.recent...)
	q.mu.Unlock()

	select {
	case q.ready <- job.ID:
	case <-ctx.Done():
		q.forget(job.ID)
		return ctx.Err()
	}

	q.mu.Lock()
	q.trim()
	q.mu.Unlock()
	return nil
}

// forget drops a job that never reached the ready channel.
func (q *MemoryQueue) forget(id uuid.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.jobs, id)
	q.recent = slices.DeleteFunc(q.recent, func(r uuid.UUID) bool { return r == id })
}

// trim caps the recent list, dropping finished jobs that fall off its end.
// Pending jobs keep their records until a worker is done with them.
func (q *MemoryQueue) trim() {
	if len(q.recent) <= recentLimit {
		return
	}
	for _, old := range q.recent[recentLimit:] {
		if j, ok := q.jobs[old]; ok && j.Status != StatusPending {
			delete(q.jobs, old)
		}
	}
	q.recent = q.recent[:recentLimit]
}

func (q *MemoryQueue) Update(_ context.Context, job *Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.jobs[job.ID]; !ok {
		return ErrNotFound
	}
	q.jobs[job.ID] = *job
	return nil
}

func (q *MemoryQueue) Get(_ context.Context, id uuid.UUID) (*Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	j, ok := q.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &j, nil
}

func (q *MemoryQueue) List(_ context.Context, limit int) ([]Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if limit <= 0 || limit > len(q.recent) {
		limit = len(q.recent)
	}
	out := make([]Job, 0, limit)
	for _, id := range q.recent[:limit] {
		if j, ok := q.jobs[id]; ok {
			out = append(out, j)
		}
	}
	return out, nil
}

func (q *MemoryQueue) Pop(ctx context.Context) (uuid.UUID, error) {
	select {
	case id := <-q.ready:
		return id, nil
	case <-ctx.Done():
		return uuid.Nil, ctx.Err()
	}
}
