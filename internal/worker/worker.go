package worker

import (
	"context"
	"errors"
	"time"

	"github.com/kumar045/seo-website/internal/jobs"
	"github.com/kumar045/seo-website/internal/metrics"
	"github.com/kumar045/seo-website/internal/model"
	"github.com/kumar045/seo-website/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Generator produces content records for a keyword.
// This allows us to mock the provider calls in tests.
type Generator interface {
	GenerateArticle(ctx context.Context, keyword string) (model.Article, error)
	GenerateLandingPage(ctx context.Context, keyword string) (model.LandingPage, error)
}

type Worker struct {
	queue     jobs.Queue
	store     store.Store
	generator Generator
	logger    *zap.Logger
}

func NewWorker(queue jobs.Queue, st store.Store, generator Generator, logger *zap.Logger) *Worker {
	return &Worker{
		queue:     queue,
		store:     st,
		generator: generator,
		logger:    logger,
	}
}

// Start runs the worker loop until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Worker started. Waiting for jobs...")

	for {
		// Wait for job (blocking)
		id, err := w.queue.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				w.logger.Info("Worker shutting down")
				return
			}
			w.logger.Error("Queue error", zap.Error(err))
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				w.logger.Info("Worker shutting down")
				return
			}
			continue
		}

		w.processJob(ctx, id)
	}
}

func (w *Worker) processJob(ctx context.Context, id uuid.UUID) {
	logger := w.logger.With(zap.String("job_id", id.String()))
	logger.Info("Processing started")

	job, err := w.queue.Get(ctx, id)
	if err != nil {
		logger.Error("Job failed: record not found", zap.Error(err))
		return
	}
	logger = logger.With(zap.String("keyword", job.Keyword), zap.Stringer("surface", job.Surface))

	slug, err := w.generate(ctx, job)
	if err != nil {
		logger.Error("Generation failed", zap.Error(err))
		w.failJob(ctx, job, err)
		return
	}

	now := time.Now()
	job.Status = jobs.StatusDone
	job.Slug = slug
	job.FinishedAt = &now
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to save result", zap.Error(err))
	}
	metrics.JobsProcessed.WithLabelValues(job.Surface.String(), string(jobs.StatusDone)).Inc()

	logger.Info("Generation complete", zap.String("slug", slug))
}

// generate runs the pipeline for the job's surface and stores the result.
func (w *Worker) generate(ctx context.Context, job *jobs.Job) (string, error) {
	switch job.Surface {
	case model.SurfaceLanding:
		page, err := w.generator.GenerateLandingPage(ctx, job.Keyword)
		if err != nil {
			return "", err
		}
		return page.Slug, w.store.AddLandingPage(ctx, page)
	case model.SurfaceBlog:
		article, err := w.generator.GenerateArticle(ctx, job.Keyword)
		if err != nil {
			return "", err
		}
		return article.Slug, w.store.AddArticle(ctx, article)
	}
	return "", errors.New("unknown surface " + job.Surface.String())
}

func (w *Worker) failJob(ctx context.Context, job *jobs.Job, cause error) {
	now := time.Now()
	job.Status = jobs.StatusFailed
	job.Error = cause.Error()
	job.FinishedAt = &now
	if err := w.queue.Update(ctx, job); err != nil {
		w.logger.Error("Failed to record job failure", zap.String("job_id", job.ID.String()), zap.Error(err))
	}
	metrics.JobsProcessed.WithLabelValues(job.Surface.String(), string(jobs.StatusFailed)).Inc()
}
