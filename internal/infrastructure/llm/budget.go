package llm

import "sync/atomic"

// Budget is the process-wide daily call counter shared by every remote
// completion path. Requests reserve a slot with TryAcquire before calling
// out and give it back with Release on failure, so the counter only keeps
// successful calls. The increment-and-compare loop makes the gate safe
// under concurrent requests: callers racing for the last slot cannot all
// pass a stale check while their calls are still in flight.
type Budget struct {
	count atomic.Int64
	limit int64
}

// NewBudget creates a budget with the given daily call limit
func NewBudget(limit int) *Budget {
	return &Budget{limit: int64(limit)}
}

// Allow reports whether another remote call fits within the limit. It is a
// read-only hint; callers about to spend the quota must use TryAcquire.
func (b *Budget) Allow() bool {
	return b.count.Load() < b.limit
}

// TryAcquire reserves one call slot, reporting whether a slot was free.
// The reservation counts against the limit immediately; a failed call must
// hand it back with Release.
func (b *Budget) TryAcquire() bool {
	for {
		n := b.count.Load()
		if n >= b.limit {
			return false
		}
		if b.count.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Release returns a previously acquired slot after a failed call
func (b *Budget) Release() {
	for {
		n := b.count.Load()
		if n <= 0 {
			return
		}
		if b.count.CompareAndSwap(n, n-1) {
			return
		}
	}
}

// Used returns the number of slots currently counted: completed successful
// calls plus in-flight reservations.
func (b *Budget) Used() int {
	return int(b.count.Load())
}

// Remaining returns how many calls are left in the budget
func (b *Budget) Remaining() int {
	r := b.limit - b.count.Load()
	if r < 0 {
		return 0
	}
	return int(r)
}
