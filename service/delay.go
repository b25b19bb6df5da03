package service

import (
	"context"
	"time"
)

// sleep waits for d or until ctx is done, whichever comes first
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// taskGroup tracks cancellable background tasks keyed by entity id
type taskGroup struct {
	root    context.Context
	cancels map[string]map[uint64]context.CancelFunc
	next    uint64
}

func newTaskGroup(root context.Context) *taskGroup {
	return &taskGroup{root: root, cancels: make(map[string]map[uint64]context.CancelFunc)}
}

// start returns a context for a new task under key and a func that must be
// called when the task ends. Callers hold their own lock.
func (g *taskGroup) start(key string) (context.Context, func()) {
	ctx, cancel := context.WithCancel(g.root)
	g.next++
	n := g.next
	if g.cancels[key] == nil {
		g.cancels[key] = make(map[uint64]context.CancelFunc)
	}
	g.cancels[key][n] = cancel
	return ctx, func() {
		cancel()
		if m, ok := g.cancels[key]; ok {
			delete(m, n)
			if len(m) == 0 {
				delete(g.cancels, key)
			}
		}
	}
}

// cancel stops every task under key
func (g *taskGroup) cancel(key string) {
	for _, cancel := range g.cancels[key] {
		cancel()
	}
	delete(g.cancels, key)
}

func (g *taskGroup) pending(key string) int {
	return len(g.cancels[key])
}
