package reconciler

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/focuslock/internal/api"
	"github.com/dmitrijs2005/focuslock/internal/client/agent"
	"github.com/dmitrijs2005/focuslock/internal/client/models"
)

var errBoom = errors.New("boom")

type fakeAuthoritative struct {
	list []*api.Schedule
	err  error

	// block waits for ctx to end, simulating a hung server.
	block bool
}

func (f *fakeAuthoritative) ListSchedules(ctx context.Context) ([]*api.Schedule, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.list, f.err
}

type fakePresets struct {
	list []*models.Preset
	err  error
}

func (f *fakePresets) List(context.Context) ([]*models.Preset, error) { return f.list, f.err }

type fakeAdhoc struct {
	list []*models.Schedule
	err  error
}

func (f *fakeAdhoc) List(context.Context) ([]*models.Schedule, error) { return f.list, f.err }

type memCache struct {
	list       []*models.Schedule
	loadErr    error
	replaceErr error
	replaces   int
}

func (c *memCache) Load(context.Context) ([]*models.Schedule, error) {
	if c.loadErr != nil {
		return nil, c.loadErr
	}
	return slices.Clone(c.list), nil
}

func (c *memCache) Replace(_ context.Context, list []*models.Schedule) error {
	c.replaces++
	if c.replaceErr != nil {
		return c.replaceErr
	}
	c.list = slices.Clone(list)
	return nil
}

type fakeSettings struct {
	s   models.Settings
	err error
}

func (f *fakeSettings) Load(context.Context) (models.Settings, error) { return f.s, f.err }

// recordingAgent records schedule and cancel calls. Restore calls are
// counted separately.
type recordingAgent struct {
	mu        sync.Mutex
	scheduled []agent.EnforcementRequest
	cancelled []string
	restores  int
	failIDs   map[string]bool

	// inflight tracks concurrently running calls.
	inflight    int
	maxInflight int
	delay       time.Duration
}

func (a *recordingAgent) enter() {
	a.mu.Lock()
	a.inflight++
	if a.inflight > a.maxInflight {
		a.maxInflight = a.inflight
	}
	a.mu.Unlock()
	if a.delay > 0 {
		time.Sleep(a.delay)
	}
}

func (a *recordingAgent) leave() {
	a.mu.Lock()
	a.inflight--
	a.mu.Unlock()
}

func (a *recordingAgent) ScheduleEnforcement(_ context.Context, req agent.EnforcementRequest) error {
	a.enter()
	defer a.leave()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.scheduled = append(a.scheduled, req)
	if a.failIDs[req.ID] {
		return errBoom
	}
	return nil
}

func (a *recordingAgent) CancelEnforcement(_ context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelled = append(a.cancelled, id)
	if a.failIDs[id] {
		return errBoom
	}
	return nil
}

func (a *recordingAgent) RestoreCurrentState(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.restores++
	return nil
}

func (a *recordingAgent) IsActive(context.Context) (bool, error)                   { return false, nil }
func (a *recordingAgent) RemainingDuration(context.Context) (time.Duration, error) { return 0, nil }
func (a *recordingAgent) StopImmediate(context.Context) error                      { return nil }
func (a *recordingAgent) StopAllActive(context.Context) ([]string, error)          { return nil, nil }
func (a *recordingAgent) StartImmediate(context.Context, string, models.Mode, []string, time.Duration) error {
	return nil
}

func (a *recordingAgent) calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.scheduled) + len(a.cancelled)
}

func (a *recordingAgent) reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.scheduled = nil
	a.cancelled = nil
	a.restores = 0
}

func (a *recordingAgent) scheduledIDs() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	var ids []string
	for _, r := range a.scheduled {
		ids = append(ids, r.ID)
	}
	return ids
}
