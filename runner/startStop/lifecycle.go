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

package startStop

import (
	"context"
	"fmt"
	"time"
)

// run executes fnStart on its own goroutine. It owns done and is the only
// writer of r.running/r.started once launched.
func (r *runner) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer func() {
		r.running.Store(false)
		r.started.Store(time.Time{})
	}()
	defer func() {
		if rec := recover(); rec != nil {
			r.addError(fmt.Errorf("start function panic: %v", rec))
		}
	}()

	if r.fnStart == nil {
		r.addError(errInvalidStartFunc)
		return
	}

	if err := r.fnStart(ctx); err != nil {
		r.addError(err)
	}
}

// callStop runs fnStop, converting a panic into an error instead of letting
// it cross into the caller of Stop/Restart.
func (r *runner) callStop(ctx context.Context) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("stop function panic: %v", rec)
		}
	}()

	return r.fnStop(ctx)
}
