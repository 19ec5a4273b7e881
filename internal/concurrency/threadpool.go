// File: internal/concurrency/threadpool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SimplePool runs fire-and-forget tasks on a fixed number of workers fed from
// one unbounded FIFO queue. A single mutex guards the queue and the running
// flag; workers block on a condition variable while the queue is empty.

package concurrency

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"
	"github.com/momentics/concur/api"
)

// TaskFunc is a unit of work to execute.
type TaskFunc func()

// SimplePool is a fixed-size worker pool. It is single-use: once Shutdown
// has started it never accepts or dispatches work again.
type SimplePool struct {
	stateChanged *sync.Cond
	queueMu      sync.Mutex
	queue        *queue.Queue // of TaskFunc
	running      bool

	workMu  sync.Mutex
	workers []*worker

	logger   api.Logger
	observer Observer
	cpus     []uint

	// statistics
	submitted atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	cleared   atomic.Int64
}

var _ api.TaskPool = (*SimplePool)(nil)

// worker is one dispatch loop. done is closed when the loop has stopped for
// good, i.e. after it observed running == false.
type worker struct {
	id   int
	pool *SimplePool
	done chan struct{}
}

// NewSimplePool starts size workers and returns once all of them have been
// spawned. logger may be nil. size < 1 fails without spawning anything.
func NewSimplePool(size int, logger api.Logger, opts ...Option) (*SimplePool, error) {
	if size < 1 {
		return nil, api.WrapError(api.ErrCodeInvalidArgument, api.ErrEmptyPool).
			WithContext("size", size)
	}

	p := &SimplePool{
		queue:    queue.New(),
		running:  true,
		logger:   logger,
		observer: NopObserver{},
	}
	p.stateChanged = sync.NewCond(&p.queueMu)
	for _, opt := range opts {
		opt(p)
	}

	p.workMu.Lock()
	defer p.workMu.Unlock()
	p.workers = make([]*worker, size)
	for i := range p.workers {
		w := &worker{id: i, pool: p, done: make(chan struct{})}
		p.workers[i] = w
		go w.run()
	}
	return p, nil
}

// NewDefaultSimplePool starts one worker per logical CPU.
func NewDefaultSimplePool(logger api.Logger, opts ...Option) (*SimplePool, error) {
	return NewSimplePool(HardwareConcurrency(), logger, opts...)
}

// Submit appends task to the queue and wakes one idle worker. It never blocks
// on load. A nil task leaves the queue untouched.
func (p *SimplePool) Submit(task func()) error {
	if task == nil {
		return api.WrapError(api.ErrCodeInvalidArgument, api.ErrInvalidTask)
	}

	p.queueMu.Lock()
	defer p.queueMu.Unlock()
	if !p.running {
		return api.WrapError(api.ErrCodeClosed, api.ErrPoolClosed)
	}
	p.queue.Add(TaskFunc(task))
	// Counted before any worker can dequeue the task, so completed never
	// runs ahead of submitted.
	p.submitted.Add(1)
	p.observer.TaskSubmitted()
	p.stateChanged.Signal()
	return nil
}

// Clear drops every queued task that no worker has dequeued yet. Running
// tasks are not affected.
func (p *SimplePool) Clear() {
	p.queueMu.Lock()
	n := p.queue.Length()
	p.queue = queue.New()
	p.queueMu.Unlock()

	p.cleared.Add(int64(n))
	p.observer.QueueCleared(n)
}

// QueueSize returns the number of queued tasks. The value is advisory.
func (p *SimplePool) QueueSize() int {
	p.queueMu.Lock()
	defer p.queueMu.Unlock()
	return p.queue.Length()
}

// Size returns the number of workers.
func (p *SimplePool) Size() int {
	p.workMu.Lock()
	defer p.workMu.Unlock()
	return len(p.workers)
}

// Shutdown stops the workers and waits for each of them. Tasks still queued
// are abandoned; running tasks finish first. Calling it from inside a task
// deadlocks. A second call returns ErrPoolClosed.
func (p *SimplePool) Shutdown() error {
	p.queueMu.Lock()
	if !p.running {
		p.queueMu.Unlock()
		return api.WrapError(api.ErrCodeClosed, api.ErrPoolClosed)
	}
	p.running = false
	p.stateChanged.Broadcast()
	p.queueMu.Unlock()

	p.workMu.Lock()
	workers := p.workers
	p.workMu.Unlock()
	for _, w := range workers {
		<-w.done
	}
	return nil
}

// Stats returns basic pool counters.
func (p *SimplePool) Stats() map[string]int64 {
	return map[string]int64{
		"submitted": p.submitted.Load(),
		"completed": p.completed.Load(),
		"failed":    p.failed.Load(),
		"cleared":   p.cleared.Load(),
		"queued":    int64(p.QueueSize()),
		"workers":   int64(p.Size()),
	}
}

// next blocks until a task is available or the pool stops. ok is false once
// the worker must exit.
func (p *SimplePool) next() (task TaskFunc, ok bool) {
	p.queueMu.Lock()
	defer p.queueMu.Unlock()
	for p.running && p.queue.Length() == 0 {
		p.stateChanged.Wait()
	}
	if !p.running {
		return nil, false
	}
	return p.queue.Remove().(TaskFunc), true
}

// run is the dispatch loop. If a task ends the goroutine through
// runtime.Goexit, or an Observer callback panics, the loop is restarted on a
// fresh goroutine so the pool stays fully staffed.
func (w *worker) run() {
	stopped := false
	defer func() {
		if stopped {
			close(w.done)
			return
		}
		if r := recover(); r != nil {
			w.pool.logError(describePanic(r))
		} else {
			w.pool.logError("task exited its worker goroutine")
		}
		go w.run()
	}()

	w.pin()
	for {
		task, ok := w.pool.next()
		if !ok {
			stopped = true
			return
		}
		w.pool.execute(task)
	}
}

// pin binds the worker's OS thread when CPU affinity was requested. The
// thread stays locked until the goroutine exits, which retires it.
func (w *worker) pin() {
	cpus := w.pool.cpus
	if len(cpus) == 0 {
		return
	}
	runtime.LockOSThread()
	cpu := cpus[w.id%len(cpus)]
	w.pool.observer.WorkerPinned(w.id, cpu, SetAffinity(CurrentThreadID(), cpu))
}

// execute runs task, converting a panic into a logger call. A task that
// calls runtime.Goexit is counted as failed before its goroutine unwinds.
func (p *SimplePool) execute(task TaskFunc) {
	start := time.Now()
	returned := false
	defer func() {
		r := recover()
		failed := !returned
		if failed {
			p.failed.Add(1)
		}
		p.completed.Add(1)
		p.observer.TaskFinished(time.Since(start), failed)
		if r != nil {
			p.logError(describePanic(r))
		}
	}()
	task()
	returned = true
}

// logError hands msg to the logger. A panicking logger is ignored.
func (p *SimplePool) logError(msg string) {
	if p.logger == nil {
		return
	}
	defer func() { _ = recover() }()
	p.logger(msg)
}

// describePanic renders a recovered value as text. Error and String methods
// that panic themselves yield "unknown error".
func describePanic(r any) (msg string) {
	defer func() {
		if recover() != nil || msg == "" {
			msg = "unknown error"
		}
	}()
	switch v := r.(type) {
	case error:
		msg = v.Error()
	case string:
		msg = v
	case fmt.Stringer:
		msg = v.String()
	default:
		msg = fmt.Sprintf("%v", v)
	}
	return msg
}

// IsClosed reports whether err signals a pool that has been shut down.
func IsClosed(err error) bool {
	return errors.Is(err, api.ErrPoolClosed)
}
