// Package parallel runs independent render jobs on a fixed set of workers.
package parallel

import (
	"runtime"
	"sync"
)

// Pool feeds jobs to a fixed number of goroutines. With a single worker jobs
// run inline on the caller's goroutine.
type Pool struct {
	wg    sync.WaitGroup
	work  chan func()
	close func()
	size  int
}

// Start launches numWorkers workers; values below 1 mean GOMAXPROCS.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{size: numWorkers, close: func() {}}
	if numWorkers == 1 {
		return p
	}

	p.work = make(chan func(), numWorkers)
	for range numWorkers {
		p.wg.Go(func() {
			for f := range p.work {
				f()
			}
		})
	}
	p.close = sync.OnceFunc(func() { close(p.work) })
	return p
}

// Size reports the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Do schedules f. It blocks while every worker is busy and the queue is full.
// Do must not be called after Wait.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// Wait stops accepting work and blocks until every scheduled job returns.
func (p *Pool) Wait() {
	p.close()
	p.wg.Wait()
}
