package journal

import "sync"

// pool runs submitted jobs on a fixed set of workers. Close drains the queue.
type pool struct {
	jobs   chan func()
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

func newPool(n, backlog int) *pool {
	if n < 1 {
		n = 1
	}
	if backlog < n {
		backlog = n * 2
	}
	p := &pool{jobs: make(chan func(), backlog)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *pool) worker() {
	defer p.wg.Done()
	for f := range p.jobs {
		if f != nil {
			f()
		}
	}
}

// trySubmit queues f without blocking. It reports false when the pool is
// closed or the backlog is full.
func (p *pool) trySubmit(f func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.jobs <- f:
		return true
	default:
		return false
	}
}

func (p *pool) close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
