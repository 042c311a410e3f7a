package application

import (
	"context"
	"sync"

	"github.com/Apurer/contractor-dashboard/internal/domains/dashboard/domain"
	"github.com/Apurer/contractor-dashboard/internal/domains/dashboard/ports"
)

// Coordinator applies last-request-wins to aggregations sharing a session key.
// Starting a run cancels the in-flight run for the same key, and a replaced
// run reports ErrSuperseded instead of its result. Nothing is retained once a
// run returns.
type Coordinator struct {
	service ports.Service

	mu       sync.Mutex
	seq      uint64
	inflight map[runKey]run
}

// runKey scopes a session to the viewer that owns it.
type runKey struct {
	viewer  domain.ViewerID
	session string
}

type run struct {
	seq    uint64
	cancel context.CancelFunc
}

func NewCoordinator(service ports.Service) *Coordinator {
	return &Coordinator{service: service, inflight: map[runKey]run{}}
}

// Run aggregates for viewer under session. Sessions are scoped to the viewer,
// so a run only ever replaces an earlier run of the same viewer. An empty
// session groups all of the viewer's session-less runs together.
func (c *Coordinator) Run(ctx context.Context, session string, viewer domain.ViewerID) (*domain.Overview, error) {
	key := runKey{viewer: viewer, session: session}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	seq := c.start(key, cancel)
	overview, err := c.service.Aggregate(ctx, viewer)
	if !c.finish(key, seq) {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	return overview, nil
}

// InFlight reports how many session keys have a run in progress.
func (c *Coordinator) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.inflight)
}

func (c *Coordinator) start(key runKey, cancel context.CancelFunc) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	if previous, ok := c.inflight[key]; ok {
		previous.cancel()
	}
	c.inflight[key] = run{seq: c.seq, cancel: cancel}
	return c.seq
}

// finish releases the slot and reports whether this run was still the latest.
func (c *Coordinator) finish(key runKey, seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	current, ok := c.inflight[key]
	if !ok || current.seq != seq {
		return false
	}
	delete(c.inflight, key)
	return true
}
