/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package startStop wraps a pair of blocking start/stop functions into a
// restartable, concurrency-safe runner: Start launches the start function in
// its own goroutine and returns immediately, Stop cancels it and waits for it
// to unwind.
package startStop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// FuncStart is run in its own goroutine by Start and is expected to block
// until ctx is done.
type FuncStart func(ctx context.Context) error

// FuncStop is run synchronously by Stop once the start function's goroutine
// has returned.
type FuncStop func(ctx context.Context) error

// StartStop is a restartable background task: Start/Stop/Restart manage its
// lifecycle, the rest report on it.
type StartStop interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Restart(ctx context.Context) error
	IsRunning() bool
	Uptime() time.Duration
	ErrorsLast() error
	ErrorsList() []error
}

func New(start FuncStart, stop FuncStop) StartStop {
	return &runner{
		fnStart: start,
		fnStop:  stop,
	}
}

type runner struct {
	fnStart FuncStart
	fnStop  FuncStop

	// mu serializes Start/Stop/Restart so only one structural transition
	// (launching or tearing down the background goroutine) happens at a time.
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	running atomic.Bool
	started atomic.Value // time.Time

	errMu sync.Mutex
	errs  []error
}

func (r *runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked(ctx)
	r.clearErrors()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	r.cancel = cancel
	r.done = done
	r.running.Store(true)
	r.started.Store(time.Now())

	go r.run(runCtx, done)

	return nil
}

func (r *runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked(ctx)
	return nil
}

func (r *runner) Restart(ctx context.Context) error {
	r.mu.Lock()
	r.stopLocked(ctx)
	r.mu.Unlock()

	return r.Start(ctx)
}

// stopLocked tears down the current run, if any. Callers must hold r.mu.
func (r *runner) stopLocked(ctx context.Context) {
	if r.cancel == nil {
		return
	}

	cancel := r.cancel
	done := r.done
	r.cancel = nil
	r.done = nil

	cancel()
	<-done

	if r.fnStop == nil {
		r.addError(errInvalidStopFunc)
		return
	}

	if err := r.callStop(ctx); err != nil {
		r.addError(err)
	}
}

func (r *runner) IsRunning() bool {
	return r.running.Load()
}

func (r *runner) Uptime() time.Duration {
	if !r.running.Load() {
		return 0
	}

	started, ok := r.started.Load().(time.Time)
	if !ok || started.IsZero() {
		return 0
	}

	return time.Since(started)
}
