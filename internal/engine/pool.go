package engine

import (
	"errors"
	"runtime"
	"sync"
)

// ErrPoolClosed is returned by Submit after Close.
var ErrPoolClosed = errors.New("engine: worker pool closed")

// Job is a unit of work. worker is the index of the goroutine running it.
type Job func(worker int)

// WorkerPool runs submitted jobs on a fixed number of goroutines.
// Submit never blocks: the queue grows as needed and callers apply their
// own backpressure by checking Pending.
type WorkerPool struct {
	mu      sync.Mutex
	work    *sync.Cond // queue non-empty or closed
	idle    *sync.Cond // no queued or running jobs
	queue   []Job
	running int
	closed  bool

	size int
	wg   sync.WaitGroup
}

// NewWorkerPool starts a pool with n workers. n <= 0 uses runtime.NumCPU().
func NewWorkerPool(n int) *WorkerPool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	p := &WorkerPool{size: n}
	p.work = sync.NewCond(&p.mu)
	p.idle = sync.NewCond(&p.mu)

	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.run(i)
	}
	return p
}

// Submit queues job for execution.
func (p *WorkerPool) Submit(job Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.queue = append(p.queue, job)
	p.work.Signal()
	return nil
}

// Pending is the number of jobs queued but not yet picked up by a worker.
func (p *WorkerPool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// Size returns the number of workers.
func (p *WorkerPool) Size() int {
	return p.size
}

// Wait blocks until every submitted job has finished.
func (p *WorkerPool) Wait() {
	p.mu.Lock()
	for len(p.queue) > 0 || p.running > 0 {
		p.idle.Wait()
	}
	p.mu.Unlock()
}

// Close lets queued jobs finish, then stops the workers.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.work.Broadcast()
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *WorkerPool) run(id int) {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.work.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		job := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.running++
		p.mu.Unlock()

		job(id)

		p.mu.Lock()
		p.running--
		if p.running == 0 && len(p.queue) == 0 {
			p.idle.Broadcast()
		}
		p.mu.Unlock()
	}
}
