// Package pool runs submitted units of work on a fixed set of worker goroutines.
package pool

import (
	"fmt"
	"runtime"
	"sync"

	"dircmp/internal/apperr"
)

// MinWorkers is the floor applied to the default worker count.
const MinWorkers = 4

// Handle tracks a single submitted unit.
type Handle struct {
	done chan struct{}
	err  error
}

// Done is closed once the unit has run.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the unit has run. It returns an error only if the unit panicked.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

type task struct {
	fn     func()
	handle *Handle
}

// Pool is a fixed-size worker pool with an unbounded FIFO queue.
type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []task
	closed bool

	size      int
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New starts a pool with the given number of workers. A non-positive count
// means one worker per CPU, but never fewer than MinWorkers.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < MinWorkers {
			workers = MinWorkers
		}
	}

	p := &Pool{size: workers}
	p.cond = sync.NewCond(&p.mu)

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Submit enqueues fn. It never blocks on queue capacity and fails with
// apperr.ErrPoolClosed once Close has been called.
func (p *Pool) Submit(fn func()) (*Handle, error) {
	h := &Handle{done: make(chan struct{})}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, apperr.ErrPoolClosed
	}
	p.queue = append(p.queue, task{fn: fn, handle: h})
	p.mu.Unlock()

	p.cond.Signal()
	return h, nil
}

// Close stops admission, lets queued and running units finish, then waits
// for every worker to exit. Safe to call more than once.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		p.cond.Broadcast()
	})
	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			// closed and drained
			p.mu.Unlock()
			return
		}
		t := p.queue[0]
		p.queue[0] = task{}
		p.queue = p.queue[1:]
		p.mu.Unlock()

		run(t)
	}
}

func run(t task) {
	defer close(t.handle.done)
	defer func() {
		if r := recover(); r != nil {
			t.handle.err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	t.fn()
}
