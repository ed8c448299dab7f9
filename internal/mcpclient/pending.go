package mcpclient

import (
	"sync"
	"time"

	"github.com/netmcp/netmcp/internal/wire"
)

// pollInterval bounds the wake-up latency of wait. The wait contract is
// polling-based: a timeout is observed no later than one interval after the
// deadline.
const pollInterval = 20 * time.Millisecond

// pendingTable holds responses that have arrived but not yet been consumed.
// The reader goroutine is the only inserter; the waiting caller is the only
// remover. Ids whose wait already timed out are marked abandoned so a late
// reply is dropped instead of accumulating forever.
type pendingTable struct {
	mu        sync.Mutex
	byID      map[int64]*wire.Response
	abandoned map[int64]struct{}
}

func newPendingTable() *pendingTable {
	return &pendingTable{
		byID:      make(map[int64]*wire.Response),
		abandoned: make(map[int64]struct{}),
	}
}

func (t *pendingTable) put(id int64, resp *wire.Response) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, dead := t.abandoned[id]; dead {
		delete(t.abandoned, id)
		return
	}
	t.byID[id] = resp
}

func (t *pendingTable) take(id int64) (*wire.Response, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	resp, ok := t.byID[id]
	if ok {
		delete(t.byID, id)
	}
	return resp, ok
}

func (t *pendingTable) abandon(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, arrived := t.byID[id]; arrived {
		// Raced with the reader; drop the entry instead of marking.
		delete(t.byID, id)
		return
	}
	t.abandoned[id] = struct{}{}
}

// wait polls for id until it is consumed or the deadline passes. The entry,
// if present, is removed exactly once.
func (t *pendingTable) wait(id int64, timeout time.Duration) (*wire.Response, bool) {
	deadline := time.Now().Add(timeout)
	for {
		if resp, ok := t.take(id); ok {
			return resp, true
		}
		if !time.Now().Before(deadline) {
			t.abandon(id)
			return nil, false
		}
		time.Sleep(pollInterval)
	}
}
