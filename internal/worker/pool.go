package worker

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/userdirectory/internal/logger"
)

type Job interface {
	Run(context.Context) error
	Name() string
}

// Pool runs jobs on a fixed number of goroutines fed by a bounded queue.
type Pool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	cancel  context.CancelFunc
	log     *logger.Logger

	mu      sync.RWMutex
	stopped bool
}

func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 8
	}
	log := logger.Default().WithPrefix("worker-pool")
	log.Debug("creating worker pool with %d workers and queue size %d", workers, queueSize)
	return &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		log:     log,
	}
}

func (p *Pool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.log.Info("starting worker pool with %d workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			workerLog := p.log.WithField("worker_id", id)
			workerLog.Debug("worker started")

			for {
				select {
				case <-ctx.Done():
					workerLog.Debug("worker shutting down (context cancelled)")
					return
				case job, ok := <-p.jobs:
					if !ok {
						workerLog.Debug("worker shutting down (queue closed)")
						return
					}
					p.run(logger.NewContext(ctx, workerLog.WithField("job", job.Name())), job)
				}
			}
		}(i + 1)
	}
}

func (p *Pool) run(ctx context.Context, job Job) {
	log := logger.FromContext(ctx)
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("job panicked after %v: %v", time.Since(start), rec)
		}
	}()

	if err := job.Run(ctx); err != nil {
		log.Error("job failed after %v: %v", time.Since(start), err)
		return
	}
	log.Debug("job completed in %v", time.Since(start))
}

// Stop cancels running workers and waits for them. Further submissions are dropped.
func (p *Pool) Stop() {
	p.log.Info("stopping worker pool")
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	p.log.Info("worker pool stopped")
}

// Submit enqueues job without blocking. It reports false when the queue is
// full or the pool has been stopped.
func (p *Pool) Submit(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		p.log.Warn("pool stopped, dropping job: %s", job.Name())
		return false
	}
	select {
	case p.jobs <- job:
		p.log.Debug("submitted job: %s", job.Name())
		return true
	default:
		p.log.Warn("queue full, dropping job: %s", job.Name())
		return false
	}
}

// Every submits a job from newJob each interval until ctx is done. The
// returned channel is closed when the ticker goroutine exits.
func (p *Pool) Every(ctx context.Context, interval time.Duration, newJob func() Job) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.Submit(newJob())
			}
		}
	}()
	return done
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}
