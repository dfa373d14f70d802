package workers

import "context"

// Workers runs a set of background workers as one unit.
type Workers struct {
	workers []Worker
}

// New returns a Workers aggregate over the given workers.
func New(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker in registration order.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// Stop stops workers in reverse registration order, so later workers that
// depend on earlier ones shut down first.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
