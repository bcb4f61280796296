// Package jobs queues background content generation for tracked keywords.
package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/kumar045/seo-website/internal/model"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// ErrNotFound is returned when no job has the requested id.
var ErrNotFound = errors.New("job not found")

// recentLimit caps the recent-jobs list.
const recentLimit = 50

// Job is one request to generate content for a keyword.
type Job struct {
	ID         uuid.UUID           `json:"id"`
	Keyword    string              `json:"keyword"`
	Surface    model.TargetSurface `json:"surface"`
	Status     Status              `json:"status"`
	Slug       string              `json:"slug,omitempty"`
	Error      string              `json:"error,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	FinishedAt *time.Time          `json:"finished_at,omitempty"`
}

func NewJob(keyword string, surface model.TargetSurface) Job {
	return Job{
		ID:        uuid.New(),
		Keyword:   keyword,
		Surface:   surface,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
}

// Queue stores jobs and hands pending ones to workers.
type Queue interface {
	// Enqueue records job and makes it available to Pop.
	Enqueue(ctx context.Context, job *Job) error
	Get(ctx context.Context, id uuid.UUID) (*Job, error)
	// List returns the most recently enqueued jobs, newest first.
	List(ctx context.Context, limit int) ([]Job, error)
	// Update overwrites the stored record without re-queueing it.
	Update(ctx context.Context, job *Job) error
	// Pop blocks until a job id is available or ctx is done.
	Pop(ctx context.Context) (uuid.UUID, error)
	Close() error
}
