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

package tcp

import (
	"runtime"
	"sync"
)

// CompletionQueue is the kernel-backed, multi-producer/multi-consumer
// queue spec.md §2 describes, realized as a buffered Go channel: posting
// an operation spawns a goroutine that performs the blocking Read/Write
// and then posts its result here as a Completion.
type CompletionQueue struct {
	ch chan Completion
}

func newCompletionQueue(size int) *CompletionQueue {
	return &CompletionQueue{ch: make(chan Completion, size)}
}

// Post enqueues a completion produced by a posted operation's goroutine.
func (q *CompletionQueue) Post(c Completion) {
	q.ch <- c
}

// stop enqueues one sentinel completion (nil token), spec.md §4.1's
// "worker stop" signal.
func (q *CompletionQueue) stop() {
	q.ch <- Completion{}
}

// workerCount follows spec.md §5: two workers per core, capped at 64.
func workerCount() int {
	n := 2 * runtime.NumCPU()
	if n > 64 {
		n = 64
	}
	if n < 2 {
		n = 2
	}
	return n
}

// WorkerPool is the fixed pool of goroutines spec.md §2/§5 calls the
// "Worker Pool": each one repeatedly pulls a completion from the queue
// and invokes its token's dispatch method. Safety across connections
// comes from each Connection's own rx_inflight/tx_inflight guards, not
// from locking here.
type WorkerPool struct {
	cq *CompletionQueue
	n  int
	wg sync.WaitGroup
}

func newWorkerPool(cq *CompletionQueue) *WorkerPool {
	return &WorkerPool{cq: cq, n: workerCount()}
}

func (p *WorkerPool) start() {
	for i := 0; i < p.n; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *WorkerPool) run() {
	defer p.wg.Done()

	for comp := range p.cq.ch {
		if comp.Token == nil {
			return
		}
		comp.Token.run(comp)
	}
}

// stop posts one sentinel per worker and waits for all of them to exit.
func (p *WorkerPool) stop() {
	for i := 0; i < p.n; i++ {
		p.cq.stop()
	}
	p.wg.Wait()
}
