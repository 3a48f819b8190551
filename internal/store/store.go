// Package store holds the client state slices: session, complaints,
// notifications and dashboard. Each slice guards its state with a
// mutex, exposes a snapshot, a set of operations and a subscription
// for re-render. Subscribers are notified synchronously at every
// transition of an async operation (start, success, failure) and on
// every local mutation.
//
// Overlapping calls to the same operation are not fenced: the last
// response to resolve wins. That matches the shipped behavior and is
// a documented limitation rather than a guarantee.
package store

import "sync"

// subscriberHub fans state-change signals out to registered
// listeners. Listeners run synchronously, outside the state lock.
type subscriberHub struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// Subscribe registers fn and returns its unsubscribe function.
func (h *subscriberHub) Subscribe(fn func()) func() {
	h.mu.Lock()
	if h.subs == nil {
		h.subs = make(map[int]func())
	}
	id := h.next
	h.next++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

func (h *subscriberHub) notify() {
	h.mu.Lock()
	fns := make([]func(), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// PaginationPatch carries a partial pagination update; nil fields keep
// their previous value. Pointers are needed because zero is a valid
// page number.
type PaginationPatch struct {
	Page       *int
	Size       *int
	Total      *int
	TotalPages *int
}
