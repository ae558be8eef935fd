package airports

import "sync"

// CallBudget tracks how many primary metadata API calls the process may still
// make. The free tier of the lookup API is tight, so the budget is an explicit
// object rather than a free-floating counter; it resets only on bulk refresh.
type CallBudget struct {
	mu        sync.Mutex
	remaining int
}

// NewCallBudget creates a budget with the given number of calls.
func NewCallBudget(calls int) *CallBudget {
	return &CallBudget{remaining: calls}
}

// Take consumes one call. It returns false when the budget is exhausted.
func (b *CallBudget) Take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.remaining <= 0 {
		return false
	}
	b.remaining--
	return true
}

// Remaining returns how many calls are left.
func (b *CallBudget) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.remaining
}

// Reset restores the budget to the given number of calls.
func (b *CallBudget) Reset(calls int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.remaining = calls
}
