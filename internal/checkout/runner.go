package checkout

import (
	"log"
	"sync"
)

// Runner executes best-effort side effects on a small fixed pool. Submit
// never blocks the checkout path: when the queue is full the task is
// dropped with a log line, which is acceptable for notifications and feed
// broadcasts.
type Runner struct {
	tasks chan task
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

type task struct {
	name string
	fn   func() error
}

func NewRunner(workers, queue int) *Runner {
	if workers <= 0 {
		workers = 2
	}
	if queue <= 0 {
		queue = 64
	}
	r := &Runner{tasks: make(chan task, queue)}
	r.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go r.worker()
	}
	return r
}

func (r *Runner) worker() {
	defer r.wg.Done()
	for t := range r.tasks {
		r.run(t)
	}
}

func (r *Runner) run(t task) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("[checkout] task %s panicked: %v", t.name, p)
		}
	}()
	if err := t.fn(); err != nil {
		log.Printf("[checkout] task %s failed: %v", t.name, err)
	}
}

func (r *Runner) Submit(name string, fn func() error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		log.Printf("[checkout] task %s dropped: runner closed", name)
		return
	}
	select {
	case r.tasks <- task{name: name, fn: fn}:
	default:
		log.Printf("[checkout] task %s dropped: queue full", name)
	}
}

// Close stops accepting tasks and waits for queued ones to finish.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.tasks)
	r.mu.Unlock()
	r.wg.Wait()
}
