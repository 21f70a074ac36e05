package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/userdirectory/internal/worker"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type funcJob struct {
	name string
	fn   func(context.Context) error
}

func (j funcJob) Name() string                  { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

type fakePruner struct {
	calls atomic.Int32
	err   error
}

func (f *fakePruner) PruneExpired(context.Context) (int64, error) {
	f.calls.Add(1)
	return 3, f.err
}

func TestPool_RunsSubmittedJobs(t *testing.T) {
	pool := worker.NewPool(2, 4)
	pool.Start(context.Background())

	done := make(chan struct{}, 3)
	for i := 0; i < 3; i++ {
		require.True(t, pool.Submit(funcJob{name: "count", fn: func(context.Context) error {
			done <- struct{}{}
			return nil
		}}))
	}

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("job did not run")
		}
	}
	pool.Stop()
}

func TestPool_SurvivesFailingAndPanickingJobs(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())

	ran := make(chan struct{})
	pool.Submit(funcJob{name: "fails", fn: func(context.Context) error { return errors.New("nope") }})
	pool.Submit(funcJob{name: "panics", fn: func(context.Context) error { panic("boom") }})
	pool.Submit(funcJob{name: "after", fn: func(context.Context) error { close(ran); return nil }})

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("worker died before the last job")
	}
	pool.Stop()
}

func TestPool_SubmitAfterStopIsDropped(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start(context.Background())
	pool.Stop()
	pool.Stop()

	assert.False(t, pool.Submit(funcJob{name: "late", fn: func(context.Context) error { return nil }}))
}

func TestPool_SubmitWhenFullIsDropped(t *testing.T) {
	pool := worker.NewPool(1, 1)

	job := funcJob{name: "queued", fn: func(context.Context) error { return nil }}
	assert.True(t, pool.Submit(job))
	assert.False(t, pool.Submit(job))
	assert.Equal(t, 1, pool.QueueSize())

	pool.Start(context.Background())
	pool.Stop()
}

func TestPool_EverySchedulesPruneJob(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())

	pruner := &fakePruner{}
	ctx, cancel := context.WithCancel(context.Background())
	stopped := pool.Every(ctx, 10*time.Millisecond, func() worker.Job {
		return &worker.PrunePagesJob{Pruner: pruner}
	})

	assert.Eventually(t, func() bool { return pruner.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	<-stopped
	pool.Stop()
}

func TestPrunePagesJob_PropagatesError(t *testing.T) {
	job := &worker.PrunePagesJob{Pruner: &fakePruner{err: errors.New("locked")}}
	assert.Equal(t, "prune_pages", job.Name())
	assert.EqualError(t, job.Run(context.Background()), "locked")
}
