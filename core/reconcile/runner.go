package reconcile

import "sync/atomic"

// Runner allows at most one reconciliation at a time. A request made while a
// run is in flight is rejected with ErrBusy, never queued.
type Runner struct {
	running atomic.Bool
	last    atomic.Pointer[Result]
}

// NewRunner creates an idle runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes fn synchronously. On success the result becomes Last.
func (r *Runner) Run(fn func() (*Result, error)) (*Result, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer r.running.Store(false)

	result, err := fn()
	if err != nil {
		return nil, err
	}
	r.last.Store(result)
	return result, nil
}

// Start executes fn on a new goroutine and passes the complete outcome to done.
// It returns ErrBusy without starting anything when a run is in flight.
func (r *Runner) Start(fn func() (*Result, error), done func(*Result, error)) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrBusy
	}

	go func() {
		result, err := fn()
		if err == nil {
			r.last.Store(result)
		}
		r.running.Store(false)
		if done != nil {
			done(result, err)
		}
	}()
	return nil
}

// Running reports whether a reconciliation is in flight.
func (r *Runner) Running() bool {
	return r.running.Load()
}

// Last returns the most recent successful result, or nil.
func (r *Runner) Last() *Result {
	return r.last.Load()
}
