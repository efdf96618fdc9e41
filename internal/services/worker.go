package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// SubmissionJob is a begun submission waiting for a worker.
type SubmissionJob struct {
	Session    UploadController
	Submission *Submission
}

// SessionSweeper drops sessions idle for longer than ttl.
type SessionSweeper interface {
	SweepExpired(ttl time.Duration) int
}

type Worker interface {
	Start(ctx context.Context)
	Stop()
	// EnqueueJob reports false when the queue is full or the worker stopped.
	EnqueueJob(job SubmissionJob) bool
}

type WorkerOptions struct {
	Concurrency   int
	QueueSize     int
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

type worker struct {
	sweeper  SessionSweeper
	opts     WorkerOptions
	jobQueue chan SubmissionJob
	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewWorker(sweeper SessionSweeper, opts WorkerOptions) Worker {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 100
	}
	return &worker{
		sweeper:  sweeper,
		opts:     opts,
		jobQueue: make(chan SubmissionJob, opts.QueueSize),
		stopChan: make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.opts.Concurrency)

	for i := 0; i < w.opts.Concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	if w.sweeper != nil && w.opts.SweepInterval > 0 && w.opts.SessionTTL > 0 {
		w.wg.Add(1)
		go w.sweepSessions()
	}

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Worker stopped")
	})
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(job SubmissionJob) bool {
	select {
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue session %s\n", job.Session.ID())
		return false
	default:
	}

	select {
	case w.jobQueue <- job:
		log.Printf("📥 Session %s enqueued\n", job.Session.ID())
		return true
	default:
		log.Printf("⚠️  Job queue full, rejecting session %s\n", job.Session.ID())
		return false
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing jobs\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case job := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing session %s\n", workerID, job.Session.ID())
			if err := job.Session.Run(ctx, job.Submission); err != nil {
				log.Printf("❌ Worker #%d session %s: %v\n", workerID, job.Session.ID(), err)
			} else {
				log.Printf("✅ Worker #%d completed session %s\n", workerID, job.Session.ID())
			}
		}
	}
}

func (w *worker) sweepSessions() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.opts.SweepInterval)
	defer ticker.Stop()

	log.Println("🔄 Starting idle session sweeper")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Idle session sweeper stopped")
			return
		case <-ticker.C:
			if removed := w.sweeper.SweepExpired(w.opts.SessionTTL); removed > 0 {
				log.Printf("🧹 Removed %d idle sessions\n", removed)
			}
		}
	}
}
