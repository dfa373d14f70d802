// Package workers provides abstractions for managing and running
// background workers in the client daemon.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run is expected to return quickly, spawning goroutines internally; Stop
// blocks until the worker's goroutines have finished.
type Worker interface {
	// Run starts the worker. The worker stops when ctx is cancelled or
	// Stop is called.
	Run(ctx context.Context)

	// Stop terminates the worker and waits for it to finish.
	Stop()
}

// Runner is the aggregate lifecycle contract exposed by [Workers].
type Runner interface {
	Run(ctx context.Context)
	Stop()
}
