package render

import "sync"

// Queue hands work from loader goroutines to the game loop. Post is safe
// from any goroutine; Drain runs on the UI thread from Update.
type Queue struct {
	mu  sync.Mutex
	fns []func()
}

// Post schedules fn for the next Drain.
func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.fns = append(q.fns, fn)
	q.mu.Unlock()
}

// Drain runs everything posted so far in posting order and reports how
// many ran. Work posted while draining waits for the next call.
func (q *Queue) Drain() int {
	q.mu.Lock()
	fns := q.fns
	q.fns = nil
	q.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Len is the number of pending functions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.fns)
}
