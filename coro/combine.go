// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/atomix"
)

// whenAllState is shared between the parent and its driver tasks. It lives
// in the parent's frame and outlives every driver borrow.
type whenAllState struct {
	remaining atomix.Uint32
	parent    *Coroutine
}

// WhenAll runs all tasks concurrently on the current frame's driver tree
// and returns after the last one completes. The parent is resumed exactly
// once, by the driver that observes the final completion.
func WhenAll(co *Coroutine, tasks ...*Task[struct{}]) {
	if len(tasks) == 0 {
		return
	}
	st := &whenAllState{}
	st.remaining.Add(uint32(len(tasks)))

	drivers := make([]*Task[struct{}], len(tasks))
	for i, task := range tasks {
		task := task
		drivers[i] = New(func(d *Coroutine) struct{} {
			Await(d, task)
			if st.remaining.Add(^uint32(0)) == 0 {
				if p := st.parent; p != nil && d.from != p {
					p.step(d)
				}
			}
			return struct{}{}
		})
	}
	for _, d := range drivers {
		d.co.step(co)
	}
	if st.remaining.Load() == 0 {
		return
	}
	st.parent = co
	for st.remaining.Load() != 0 {
		co.suspend(parkPoll)
		if st.remaining.Load() == 0 {
			break
		}
		for _, d := range drivers {
			if st.remaining.Load() == 0 {
				break
			}
			if !d.co.done.Load() && (!d.co.started || d.co.kind != parkBlocked) {
				d.co.step(co)
			}
		}
	}
	st.parent = nil
}

// whenAnyState mirrors whenAllState with a claim word: the first driver to
// win the CAS becomes the winner and resumes the parent; losers complete
// silently and their tasks are never cancelled. The claim word packs the
// done flag and the winner index as index+1, so the parent never observes
// a claim without its index.
type whenAnyState struct {
	claim  atomix.Uint32
	parent *Coroutine
}

// WhenAny runs all tasks concurrently and returns the index of the first
// task to complete. The parent is resumed exactly once. Losing tasks keep
// running to their own completion whenever something resumes them; callers
// arrange cooperative cancellation (a shared flag or Event) if losers must
// stop.
func WhenAny(co *Coroutine, tasks ...*Task[struct{}]) int {
	if len(tasks) == 0 {
		return 0
	}
	st := &whenAnyState{}

	drivers := make([]*Task[struct{}], len(tasks))
	for i, task := range tasks {
		i, task := i, task
		drivers[i] = New(func(d *Coroutine) struct{} {
			Await(d, task)
			if st.claim.CompareAndSwap(0, uint32(i)+1) {
				if p := st.parent; p != nil && d.from != p {
					p.step(d)
				}
			}
			return struct{}{}
		})
	}
	for _, d := range drivers {
		d.co.step(co)
	}
	if v := st.claim.Load(); v != 0 {
		return int(v - 1)
	}
	st.parent = co
	for st.claim.Load() == 0 {
		co.suspend(parkPoll)
		if st.claim.Load() != 0 {
			break
		}
		for _, d := range drivers {
			if st.claim.Load() != 0 {
				break
			}
			if !d.co.done.Load() && (!d.co.started || d.co.kind != parkBlocked) {
				d.co.step(co)
			}
		}
	}
	st.parent = nil
	return int(st.claim.Load() - 1)
}
