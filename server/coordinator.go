package server

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/pokerlabs/holdemd/domain"
)

// Coordinator serializes access to tables. Each table gets one worker
// goroutine fed by a FIFO job queue, so at most one engine call is in
// flight per table at any instant and jobs run in arrival order. Jobs on
// different tables run in parallel.
type Coordinator struct {
	registry *Registry
	logger   logrus.FieldLogger

	mu      sync.Mutex
	runners map[string]*tableRunner
}

// tableRunner guards its queue with a mutex so a submission can never race
// the queue being closed.
type tableRunner struct {
	mu     sync.Mutex
	closed bool
	jobs   chan job
}

type job struct {
	fn   func(*domain.Table) error
	done chan error
}

// enqueue submits a job unless the runner has been shut down.
func (r *tableRunner) enqueue(j job) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}
	r.jobs <- j
	return true
}

// shutdown closes the queue exactly once. Queued jobs still run before the
// worker exits.
func (r *tableRunner) shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	close(r.jobs)
}

// NewCoordinator creates a coordinator over the given registry.
func NewCoordinator(registry *Registry, logger logrus.FieldLogger) *Coordinator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Coordinator{
		registry: registry,
		logger:   logger,
		runners:  make(map[string]*tableRunner),
	}
}

// Do runs fn against the table with exclusive access, blocking until the
// job has been executed. The returned error is whatever fn returned, or
// ErrUnknownTable when the table does not exist or was closed.
func (c *Coordinator) Do(tableID string, fn func(*domain.Table) error) error {
	table, err := c.registry.Get(tableID)
	if err != nil {
		return err
	}

	runner := c.runnerFor(tableID, table)

	j := job{fn: fn, done: make(chan error, 1)}
	if !runner.enqueue(j) {
		return ErrUnknownTable
	}
	return <-j.done
}

// CloseTable stops the table's worker and removes the table from the
// registry. Queued jobs still run before the worker exits.
func (c *Coordinator) CloseTable(tableID string) {
	c.mu.Lock()
	runner, ok := c.runners[tableID]
	if ok {
		delete(c.runners, tableID)
	}
	c.mu.Unlock()

	if ok {
		runner.shutdown()
	}
	c.registry.Remove(tableID)
}

func (c *Coordinator) runnerFor(tableID string, table *domain.Table) *tableRunner {
	c.mu.Lock()
	defer c.mu.Unlock()

	if runner, ok := c.runners[tableID]; ok {
		return runner
	}

	runner := &tableRunner{jobs: make(chan job, 64)}
	c.runners[tableID] = runner

	go func() {
		for j := range runner.jobs {
			j.done <- j.fn(table)
		}
	}()

	c.logger.WithField("table", tableID).Debug("table worker started")
	return runner
}
