package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kumar045/seo-website/internal/jobs"
	"github.com/kumar045/seo-website/internal/model"
	"github.com/kumar045/seo-website/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockGenerator struct {
	ShouldFail bool
}

// GenerateArticle simulates a pipeline run
func (m *MockGenerator) GenerateArticle(_ context.Context, keyword string) (model.Article, error) {
	if m.ShouldFail {
		return model.Article{}, fmt.Errorf("simulated generation error")
	}
	return model.NewArticle("Guide to "+keyword, "A short summary", "Body", 1, nil, "", time.Now()), nil
}

func (m *MockGenerator) GenerateLandingPage(_ context.Context, keyword string) (model.LandingPage, error) {
	if m.ShouldFail {
		return model.LandingPage{}, fmt.Errorf("simulated generation error")
	}
	return model.LandingPage{Slug: model.Slugify(keyword), Title: keyword, Status: model.StatusPublished}, nil
}

// runBriefly starts the worker and stops it once waitFor reports true.
func runBriefly(t *testing.T, w *Worker, waitFor func() bool) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, waitFor, 2*time.Second, 10*time.Millisecond)
	cancel()
	<-done
}

// TestWorker_ProcessJob checks that a queued blog job ends up in the store
// and the job is marked done.
func TestWorker_ProcessJob(t *testing.T) {
	// Spin up fake Redis
	mr := miniredis.RunT(t)
	q, err := jobs.NewRedisQueue(context.Background(), mr.Addr())
	require.NoError(t, err)
	defer q.Close()

	st := store.NewMemory()
	w := NewWorker(q, st, &MockGenerator{}, zap.NewNop())

	// Seed a pending job
	job := jobs.NewJob("Coffee", model.SurfaceBlog)
	require.NoError(t, q.Enqueue(context.Background(), &job))

	runBriefly(t, w, func() bool {
		j, err := q.Get(context.Background(), job.ID)
		return err == nil && j.Status != jobs.StatusPending
	})

	updated, err := q.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, jobs.StatusDone, updated.Status)
	assert.Equal(t, "guide-to-coffee", updated.Slug)
	assert.NotNil(t, updated.FinishedAt)

	article, err := st.Article(context.Background(), "guide-to-coffee")
	require.NoError(t, err)
	assert.Equal(t, "Guide to Coffee", article.Title)
}

func TestWorker_LandingJob(t *testing.T) {
	q := jobs.NewMemoryQueue(4)
	st := store.NewMemory()
	w := NewWorker(q, st, &MockGenerator{}, zap.NewNop())

	job := jobs.NewJob("Solar Panels", model.SurfaceLanding)
	require.NoError(t, q.Enqueue(context.Background(), &job))

	runBriefly(t, w, func() bool {
		j, _ := q.Get(context.Background(), job.ID)
		return j != nil && j.Status == jobs.StatusDone
	})

	_, err := st.LandingPage(context.Background(), "solar-panels")
	assert.NoError(t, err)
}

// TestWorker_HandlesGenerationFailure checks that a failing pipeline marks
// the job failed with the error message.
func TestWorker_HandlesGenerationFailure(t *testing.T) {
	q := jobs.NewMemoryQueue(4)
	st := store.NewMemory()
	w := NewWorker(q, st, &MockGenerator{ShouldFail: true}, zap.NewNop())

	job := jobs.NewJob("broken", model.SurfaceBlog)
	require.NoError(t, q.Enqueue(context.Background(), &job))

	runBriefly(t, w, func() bool {
		j, _ := q.Get(context.Background(), job.ID)
		return j != nil && j.Status != jobs.StatusPending
	})

	saved, err := q.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, jobs.StatusFailed, saved.Status)
	assert.Equal(t, "simulated generation error", saved.Error)

	articles, _ := st.Articles(context.Background())
	assert.Empty(t, articles)
}

func TestWorker_SlugCollisionFailsJob(t *testing.T) {
	q := jobs.NewMemoryQueue(4)
	st := store.NewMemory()
	w := NewWorker(q, st, &MockGenerator{}, zap.NewNop())

	existing := model.NewArticle("Guide to Tea", "", "Body", 1, nil, "", time.Now())
	require.NoError(t, st.AddArticle(context.Background(), existing))

	job := jobs.NewJob("Tea", model.SurfaceBlog)
	require.NoError(t, q.Enqueue(context.Background(), &job))

	runBriefly(t, w, func() bool {
		j, _ := q.Get(context.Background(), job.ID)
		return j != nil && j.Status != jobs.StatusPending
	})

	saved, _ := q.Get(context.Background(), job.ID)
	assert.Equal(t, jobs.StatusFailed, saved.Status)
	assert.Equal(t, store.ErrSlugTaken.Error(), saved.Error)
}
