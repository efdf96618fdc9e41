package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/jd-resume-matcher/internal/models"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) SweepExpired(ttl time.Duration) int {
	s.calls.Add(1)
	return 0
}

func TestWorker_RunsEnqueuedSubmission(t *testing.T) {
	analyzer := &fakeAnalyzer{payload: mustPayload(t, matchPayload)}
	session := newTestSession(analyzer)
	selectBoth(t, session)

	w := NewWorker(nil, WorkerOptions{Concurrency: 2, QueueSize: 4})
	w.Start(context.Background())
	defer w.Stop()

	submission, err := session.Begin()
	require.NoError(t, err)
	require.True(t, w.EnqueueJob(SubmissionJob{Session: session, Submission: submission}))

	assert.Eventually(t, func() bool {
		return session.Status() == models.StatusSucceeded
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, analyzer.callCount())
}

func TestWorker_RejectsWhenQueueFull(t *testing.T) {
	session := newTestSession(&fakeAnalyzer{})

	// Not started, so nothing drains the queue.
	w := NewWorker(nil, WorkerOptions{QueueSize: 1})

	assert.True(t, w.EnqueueJob(SubmissionJob{Session: session}))
	assert.False(t, w.EnqueueJob(SubmissionJob{Session: session}))
}

func TestWorker_RejectsAfterStop(t *testing.T) {
	session := newTestSession(&fakeAnalyzer{})
	w := NewWorker(nil, WorkerOptions{Concurrency: 1})
	w.Start(context.Background())

	w.Stop()
	w.Stop()

	assert.False(t, w.EnqueueJob(SubmissionJob{Session: session}))
}

func TestWorker_SweepsSessions(t *testing.T) {
	sweeper := &countingSweeper{}
	w := NewWorker(sweeper, WorkerOptions{
		Concurrency:   1,
		SessionTTL:    time.Minute,
		SweepInterval: 10 * time.Millisecond,
	})
	w.Start(context.Background())
	defer w.Stop()

	assert.Eventually(t, func() bool {
		return sweeper.calls.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
}
