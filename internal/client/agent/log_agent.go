package agent

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/focuslock/internal/client/models"
	"github.com/dmitrijs2005/focuslock/internal/clock"
	"github.com/dmitrijs2005/focuslock/internal/common"
	"github.com/dmitrijs2005/focuslock/internal/logging"
	"github.com/dmitrijs2005/focuslock/internal/window"
)

type scheduled struct {
	req EnforcementRequest
	win window.Window
}

type session struct {
	label string
	mode  models.Mode
	apps  []string
	until time.Time
}

// LogAgent is safe for concurrent use.
type LogAgent struct {
	mu    sync.Mutex
	clock clock.Clock
	log   logging.Logger

	schedules map[string]*scheduled
	// applied is the set of schedule ids enforced by the last restore.
	applied map[string]bool
	// stopped holds schedules lifted by StopAllActive until their window ends.
	stopped   map[string]time.Time
	immediate *session
}

func NewLogAgent(c clock.Clock, logger logging.Logger) *LogAgent {
	return &LogAgent{
		clock:     c,
		log:       logger.With("module", "agent"),
		schedules: make(map[string]*scheduled),
		applied:   make(map[string]bool),
		stopped:   make(map[string]time.Time),
	}
}

func (a *LogAgent) ScheduleEnforcement(ctx context.Context, req EnforcementRequest) error {
	if req.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRequest)
	}
	days, err := window.ParseDays(strings.Join(req.Days, ""))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	enc, err := window.Encode(req.Start, req.End, days)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	win, err := window.Parse(enc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.schedules[req.ID] = &scheduled{req: req, win: win}
	delete(a.stopped, req.ID)
	a.log.Info(ctx, "enforcement scheduled",
		"id", req.ID, "label", req.Label, "window", enc, "mode", req.Mode,
		"prevent_removal", req.PreventRemoval, "lead_minutes", req.PreLeadMinutes)
	return nil
}

func (a *LogAgent) CancelEnforcement(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.schedules[id]; !ok {
		return nil
	}
	delete(a.schedules, id)
	delete(a.stopped, id)
	if a.applied[id] {
		delete(a.applied, id)
		a.log.Info(ctx, "restriction lifted", "id", id)
	}
	a.log.Info(ctx, "enforcement cancelled", "id", id)
	return nil
}

func (a *LogAgent) RestoreCurrentState(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()
	want := a.coveringLocked(now)

	for id := range a.applied {
		if !slices.Contains(want, id) {
			delete(a.applied, id)
			a.log.Info(ctx, "restriction lifted", "id", id)
		}
	}
	for _, id := range want {
		if !a.applied[id] {
			a.applied[id] = true
			s := a.schedules[id]
			a.log.Info(ctx, "restriction applied", "id", id, "label", s.req.Label, "mode", s.req.Mode)
		}
	}
	return nil
}

func (a *LogAgent) IsActive(ctx context.Context) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()
	return a.immediateActiveLocked(now) || len(a.coveringLocked(now)) > 0, nil
}

// RemainingDuration returns how long the longest running restriction still
// lasts, zero when nothing is active.
func (a *LogAgent) RemainingDuration(ctx context.Context) (time.Duration, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()
	var longest time.Duration
	if a.immediateActiveLocked(now) {
		longest = a.immediate.until.Sub(now)
	}
	for _, id := range a.coveringLocked(now) {
		if d := windowEnd(a.schedules[id].win, now).Sub(now); d > longest {
			longest = d
		}
	}
	return longest, nil
}

func (a *LogAgent) StopImmediate(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.immediate != nil {
		a.log.Info(ctx, "immediate restriction stopped", "label", a.immediate.label)
		a.immediate = nil
	}
	return nil
}

func (a *LogAgent) StopAllActive(ctx context.Context) ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()
	var ids []string
	if a.immediateActiveLocked(now) {
		ids = append(ids, ImmediateID)
	}
	a.immediate = nil

	for _, id := range a.coveringLocked(now) {
		a.stopped[id] = windowEnd(a.schedules[id].win, now)
		delete(a.applied, id)
		ids = append(ids, id)
	}
	a.log.Info(ctx, "all restrictions stopped", "ids", ids)
	return ids, nil
}

func (a *LogAgent) StartImmediate(ctx context.Context, label string, mode models.Mode, apps []string, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidRequest)
	}
	if mode == models.ModeAppList && len(apps) == 0 {
		return fmt.Errorf("%w: app_list mode without apps", ErrInvalidRequest)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.immediate = &session{label: label, mode: mode, apps: apps, until: a.clock.Now().Add(d)}
	a.log.Info(ctx, "immediate restriction started", "label", label, "mode", mode, "duration", d.String())
	return nil
}

func (a *LogAgent) immediateActiveLocked(now time.Time) bool {
	return a.immediate != nil && now.Before(a.immediate.until)
}

// coveringLocked returns the sorted ids of scheduled enforcements whose
// window covers now and that were not stopped by hand.
func (a *LogAgent) coveringLocked(now time.Time) []string {
	var ids []string
	for id, s := range a.schedules {
		if until, ok := a.stopped[id]; ok {
			if now.Before(until) {
				continue
			}
			delete(a.stopped, id)
		}
		if s.win.Covers(now) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// windowEnd returns the instant the occurrence of w covering now closes.
func windowEnd(w window.Window, now time.Time) time.Time {
	local := now.In(common.PolicyZone)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, common.PolicyZone)
	end := midnight.Add(time.Duration(w.End) * time.Minute)
	current := local.Hour()*60 + local.Minute()
	if w.End < w.Start && current >= w.Start {
		end = end.AddDate(0, 0, 1)
	}
	return end
}
