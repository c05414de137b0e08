// Package concurrent runs independent router fetches in parallel and
// gathers their results in submission order.
package concurrent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Task is one unit of work, executed in parallel with its peers.
type Task struct {
	ID   int
	Name string
	Work func(ctx context.Context) (interface{}, error)
}

// Result pairs a task with its outcome.
type Result struct {
	ID      int
	Name    string
	Value   interface{}
	Err     error
	Elapsed time.Duration
}

// TimeoutError reports how many tasks had finished when the deadline
// hit.
type TimeoutError struct {
	Timeout  time.Duration
	Received int
	Total    int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("fetch timed out after %s: %d of %d tasks finished", e.Timeout, e.Received, e.Total)
}

// WorkerPool fans tasks out to a fixed number of goroutines. The pool
// context derives from the context passed to NewWorkerPool, so caller
// cancellation reaches running work.
type WorkerPool struct {
	workers    int
	taskChan   chan Task
	resultChan chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewWorkerPool creates a pool of the given size.
func NewWorkerPool(ctx context.Context, workers int) *WorkerPool {
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool{
		workers:    workers,
		taskChan:   make(chan Task, workers*2),
		resultChan: make(chan Result, workers*2),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start launches the workers.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Stop cancels the pool and waits for the workers to exit.
func (wp *WorkerPool) Stop() {
	wp.cancel()
	wp.wg.Wait()
	close(wp.resultChan)
}

// Submit queues a task. It gives up when the pool is stopped.
func (wp *WorkerPool) Submit(task Task) {
	select {
	case wp.taskChan <- task:
	case <-wp.ctx.Done():
	}
}

// Results returns the channel tasks report on.
func (wp *WorkerPool) Results() <-chan Result {
	return wp.resultChan
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case task := <-wp.taskChan:
			start := time.Now()
			value, err := task.Work(wp.ctx)
			result := Result{
				ID:      task.ID,
				Name:    task.Name,
				Value:   value,
				Err:     err,
				Elapsed: time.Since(start),
			}
			select {
			case wp.resultChan <- result:
			case <-wp.ctx.Done():
				return
			}
		case <-wp.ctx.Done():
			return
		}
	}
}

// Run executes tasks in parallel and returns their results in task
// order. Individual task failures are reported per Result; Run itself
// fails only when ctx is cancelled or timeout passes before every task
// finished.
func Run(ctx context.Context, tasks []Task, timeout time.Duration) ([]Result, error) {
	if len(tasks) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	pool := NewWorkerPool(ctx, min(len(tasks), 4))
	pool.Start()
	defer pool.Stop()

	go func() {
		for i, task := range tasks {
			task.ID = i
			pool.Submit(task)
		}
	}()

	results := make([]Result, len(tasks))
	received := 0
	for received < len(tasks) {
		select {
		case result := <-pool.Results():
			results[result.ID] = result
			received++
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, &TimeoutError{Timeout: timeout, Received: received, Total: len(tasks)}
			}
			return nil, ctx.Err()
		}
	}
	return results, nil
}

// FirstError returns the first task error in task order, or nil when
// every task succeeded.
func FirstError(results []Result) error {
	for _, result := range results {
		if result.Err != nil {
			return fmt.Errorf("%s: %w", result.Name, result.Err)
		}
	}
	return nil
}
