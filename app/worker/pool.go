package worker

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/factory"
	"golang.org/x/sync/semaphore"
)

type Task func(ctx context.Context)

// Pool runs fire-and-forget tasks in the background. Submit never blocks:
// each task gets its own goroutine which waits on the semaphore, so at
// most size tasks execute at once.
type Pool struct {
	ctx    context.Context
	cancel context.CancelFunc
	sem    *semaphore.Weighted
	wg     sync.WaitGroup
	logger logrus.FieldLogger

	mu     sync.RWMutex
	closed bool
}

func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		ctx:    ctx,
		cancel: cancel,
		sem:    semaphore.NewWeighted(int64(size)),
		logger: factory.NewModuleLogger("worker-pool"),
	}
}

// Submit schedules task and returns false when the pool is shut down.
func (p *Pool) Submit(name string, task Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}

	p.wg.Add(1)
	go p.run(name, task)
	return true
}

func (p *Pool) run(name string, task Task) {
	defer p.wg.Done()

	if err := p.sem.Acquire(p.ctx, 1); err != nil {
		p.logger.WithField("task", name).Warn("Task dropped, pool is shutting down")
		return
	}
	defer p.sem.Release(1)

	defer func() {
		if r := recover(); r != nil {
			p.logger.WithField("task", name).WithField("panic", r).Error("Task panicked")
		}
	}()

	task(p.ctx)
}

// Shutdown stops accepting tasks and waits for running ones. When ctx
// expires first, the pool context is cancelled so tasks abandon their
// remaining work, and ctx.Err() is returned once they have exited.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		<-done
		return ctx.Err()
	}
}
