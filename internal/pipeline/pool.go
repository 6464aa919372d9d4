package pipeline

import (
	"sync"
)

// Pool runs transforms on a fixed number of worker goroutines. Jobs are
// submitted up front into a buffered queue; results arrive on Results in
// completion order, which is not submission order and not stable across
// runs. A panicking transform is converted into an ERROR result for that
// job only — sibling jobs and the pool itself are unaffected.
//
// There is no cancellation: Close drains every submitted job, and a stuck
// transform stalls shutdown indefinitely.
type Pool struct {
	jobs    chan Job
	results chan Result
	wg      sync.WaitGroup
}

// NewPool starts workers goroutines executing fn. queueCap must be at least
// the number of jobs that will be submitted; Submit never blocks as long as
// that holds.
func NewPool(workers, queueCap int, fn Transform) *Pool {
	p := &Pool{
		jobs:    make(chan Job, queueCap),
		results: make(chan Result, queueCap),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(fn)
	}
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
	return p
}

// Submit enqueues one job. Must not be called after Close.
func (p *Pool) Submit(job Job) {
	p.jobs <- job
}

// Close marks the queue complete. Workers finish the remaining jobs and the
// results channel closes once the last in-flight job completes (graceful
// drain, not cancel).
func (p *Pool) Close() {
	close(p.jobs)
}

// Results returns the completion-order result stream. After Close, the
// channel closes once every submitted job has produced exactly one result.
func (p *Pool) Results() <-chan Result {
	return p.results
}

func (p *Pool) worker(fn Transform) {
	defer p.wg.Done()
	for job := range p.jobs {
		p.results <- runJob(fn, job)
	}
}

// runJob executes one transform, converting a panic into an ERROR result so
// a misbehaving transform cannot take down its worker.
func runJob(fn Transform, job Job) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Errorf(job, "panic: %v", r)
		}
	}()
	return fn(job)
}
