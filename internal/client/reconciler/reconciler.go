// Package reconciler computes the effective restriction schedule set from the
// authoritative server list, the user's presets and redeemed ad-hoc
// schedules, and drives the enforcement agent through the delta against the
// last persisted set.
package reconciler

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/focuslock/internal/api"
	"github.com/dmitrijs2005/focuslock/internal/client/agent"
	"github.com/dmitrijs2005/focuslock/internal/client/models"
	"github.com/dmitrijs2005/focuslock/internal/clock"
	"github.com/dmitrijs2005/focuslock/internal/logging"
)

// DefaultFetchTimeout bounds each source fetch when Options leaves it unset.
const DefaultFetchTimeout = 10 * time.Second

type AuthoritativeSource interface {
	ListSchedules(ctx context.Context) ([]*api.Schedule, error)
}

type PresetSource interface {
	List(ctx context.Context) ([]*models.Preset, error)
}

type AdhocSource interface {
	List(ctx context.Context) ([]*models.Schedule, error)
}

type Cache interface {
	Load(ctx context.Context) ([]*models.Schedule, error)
	Replace(ctx context.Context, list []*models.Schedule) error
}

type SettingsSource interface {
	Load(ctx context.Context) (models.Settings, error)
}

// Sources bundles the collaborators a pass reads from and writes to.
type Sources struct {
	Authoritative AuthoritativeSource
	Presets       PresetSource
	Adhoc         AdhocSource
	Cache         Cache
	Settings      SettingsSource
}

type Options struct {
	// DeviceKey scopes the serialization guard.
	DeviceKey string
	// UserID is the current identity; authoritative schedules it did not
	// create are read-only.
	UserID       string
	FetchTimeout time.Duration
	Merge        MergePolicy
}

// Report summarizes one pass.
type Report struct {
	Merged    int
	Scheduled int
	Cancelled int
	Failed    int
	// CarriedForward lists origins whose fetch failed and whose cached
	// schedules were kept instead.
	CarriedForward []models.Origin
	PersistFailed  bool
}

type Reconciler struct {
	src   Sources
	agent agent.Agent
	guard *Guard
	clock clock.Clock
	log   logging.Logger
	opts  Options

	mu      sync.Mutex
	lastRun time.Time
}

func New(src Sources, a agent.Agent, guard *Guard, c clock.Clock, logger logging.Logger, opts Options) *Reconciler {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if guard == nil {
		guard = NewGuard()
	}
	return &Reconciler{
		src:   src,
		agent: a,
		guard: guard,
		clock: c,
		log:   logger.With("module", "reconciler"),
		opts:  opts,
	}
}

// LastRun returns when the last pass finished, zero before the first one.
func (r *Reconciler) LastRun() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRun
}

// Run performs one reconciliation pass. Source, agent and cache failures are
// logged and reflected in the report; the only error returned is ctx ending
// while waiting for a concurrent pass.
func (r *Reconciler) Run(ctx context.Context) (Report, error) {
	var rep Report
	err := r.guard.Do(ctx, r.opts.DeviceKey, func(ctx context.Context) error {
		rep = r.run(ctx)
		return nil
	})
	return rep, err
}

func (r *Reconciler) run(ctx context.Context) Report {
	var rep Report

	previous, err := r.src.Cache.Load(ctx)
	if err != nil {
		r.log.Error(ctx, "failed to load schedule cache, diffing against empty set", "error", err)
		previous = nil
	}

	authoritative, ok := r.fetchAuthoritative(ctx)
	if !ok {
		authoritative = withOrigin(previous, models.OriginAuthoritative)
		rep.CarriedForward = append(rep.CarriedForward, models.OriginAuthoritative)
	}
	presets, ok := r.fetchPresets(ctx)
	if !ok {
		presets = withOrigin(previous, models.OriginPreset)
		rep.CarriedForward = append(rep.CarriedForward, models.OriginPreset)
	}
	adhoc, ok := r.fetchAdhoc(ctx)
	if !ok {
		adhoc = withOrigin(previous, models.OriginAdhoc)
		rep.CarriedForward = append(rep.CarriedForward, models.OriginAdhoc)
	}

	merged := r.opts.Merge.Merge(authoritative, presets, adhoc)
	rep.Merged = len(merged)

	settings, err := r.src.Settings.Load(ctx)
	if err != nil {
		r.log.Warn(ctx, "failed to load settings, using defaults", "error", err)
		settings = models.DefaultSettings()
	}

	for _, a := range Diff(previous, merged) {
		if err := r.apply(ctx, a, settings); err != nil {
			rep.Failed++
			r.log.Error(ctx, "agent call failed", "action", a.Kind.String(), "id", a.ID, "error", err)
			continue
		}
		if a.Kind == ActionSchedule {
			rep.Scheduled++
		} else {
			rep.Cancelled++
		}
	}

	if err := r.src.Cache.Replace(ctx, merged); err != nil {
		rep.PersistFailed = true
		r.log.Error(ctx, "failed to persist schedule cache", "error", err)
	}

	if err := r.agent.RestoreCurrentState(ctx); err != nil {
		r.log.Error(ctx, "failed to restore current state", "error", err)
	}

	r.mu.Lock()
	r.lastRun = r.clock.Now()
	r.mu.Unlock()

	r.log.Info(ctx, "reconciled",
		"merged", rep.Merged, "scheduled", rep.Scheduled, "cancelled", rep.Cancelled,
		"failed", rep.Failed, "carried_forward", len(rep.CarriedForward))
	return rep
}

// Replay re-issues every active cached schedule to the agent and restores the
// current state. Agents that keep no state across restarts need this once at
// startup, since an unchanged cache makes Run issue no calls.
func (r *Reconciler) Replay(ctx context.Context) error {
	return r.guard.Do(ctx, r.opts.DeviceKey, func(ctx context.Context) error {
		cached, err := r.src.Cache.Load(ctx)
		if err != nil {
			return err
		}
		settings, err := r.src.Settings.Load(ctx)
		if err != nil {
			r.log.Warn(ctx, "failed to load settings, using defaults", "error", err)
			settings = models.DefaultSettings()
		}
		for _, s := range cached {
			if !s.Active {
				continue
			}
			if err := r.agent.ScheduleEnforcement(ctx, agent.RequestFor(s, settings)); err != nil {
				r.log.Error(ctx, "agent call failed", "action", "schedule", "id", s.ID, "error", err)
			}
		}
		return r.agent.RestoreCurrentState(ctx)
	})
}

func (r *Reconciler) apply(ctx context.Context, a Action, settings models.Settings) error {
	if a.Kind == ActionSchedule {
		return r.agent.ScheduleEnforcement(ctx, agent.RequestFor(a.Schedule, settings))
	}
	return r.agent.CancelEnforcement(ctx, a.ID)
}

func (r *Reconciler) fetchAuthoritative(ctx context.Context) ([]*models.Schedule, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.FetchTimeout)
	defer cancel()

	remote, err := r.src.Authoritative.ListSchedules(ctx)
	if err != nil {
		r.log.Warn(ctx, "authoritative fetch failed, keeping cached schedules", "error", err)
		return nil, false
	}

	out := make([]*models.Schedule, 0, len(remote))
	for _, s := range remote {
		m, err := fromAuthoritative(s, r.opts.UserID)
		if err != nil {
			r.log.Warn(ctx, "skipping authoritative schedule", "error", err)
			continue
		}
		out = append(out, m)
	}
	return out, true
}

func (r *Reconciler) fetchPresets(ctx context.Context) ([]*models.Schedule, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.FetchTimeout)
	defer cancel()

	presets, err := r.src.Presets.List(ctx)
	if err != nil {
		r.log.Warn(ctx, "preset fetch failed, keeping cached schedules", "error", err)
		return nil, false
	}
	return scheduledPresets(presets), true
}

func (r *Reconciler) fetchAdhoc(ctx context.Context) ([]*models.Schedule, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.FetchTimeout)
	defer cancel()

	list, err := r.src.Adhoc.List(ctx)
	if err != nil {
		r.log.Warn(ctx, "ad-hoc fetch failed, keeping cached schedules", "error", err)
		return nil, false
	}
	return list, true
}
