// Package agent defines the enforcement agent the reconciler drives, plus
// LogAgent, a platform-neutral implementation that tracks enforcement state in
// memory and reports every transition through the logger.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrijs2005/focuslock/internal/client/models"
)

var ErrInvalidRequest = errors.New("invalid enforcement request")

// ImmediateID is reported by StopAllActive for a session started with
// StartImmediate.
const ImmediateID = "immediate"

// EnforcementRequest is one scheduled restriction handed to the agent.
// Days are local weekday symbols; AppList is EncodeAppList output.
type EnforcementRequest struct {
	ID             string
	Start          string
	End            string
	Days           []string
	Mode           models.Mode
	Label          string
	AppList        string
	PreventRemoval bool
	PreLeadMinutes int
}

// Agent enforces restrictions on the device.
type Agent interface {
	// ScheduleEnforcement registers or replaces the enforcement with req.ID.
	ScheduleEnforcement(ctx context.Context, req EnforcementRequest) error
	// CancelEnforcement removes the enforcement with id. Unknown ids are
	// not an error.
	CancelEnforcement(ctx context.Context, id string) error
	// RestoreCurrentState re-evaluates what should be active right now and
	// applies it.
	RestoreCurrentState(ctx context.Context) error
	IsActive(ctx context.Context) (bool, error)
	RemainingDuration(ctx context.Context) (time.Duration, error)
	StopImmediate(ctx context.Context) error
	// StopAllActive lifts everything currently enforced and returns the ids
	// that were stopped.
	StopAllActive(ctx context.Context) ([]string, error)
	StartImmediate(ctx context.Context, label string, mode models.Mode, apps []string, d time.Duration) error
}

// EncodeAppList renders apps the way platform agents expect them: a JSON
// array, "[]" when empty.
func EncodeAppList(apps []string) string {
	if apps == nil {
		apps = []string{}
	}
	b, _ := json.Marshal(apps)
	return string(b)
}

// RequestFor builds the enforcement request for s with the device settings
// applied.
func RequestFor(s *models.Schedule, settings models.Settings) EnforcementRequest {
	return EnforcementRequest{
		ID:             s.ID,
		Start:          s.Start,
		End:            s.End,
		Days:           s.Days,
		Mode:           s.Mode,
		Label:          s.Name,
		AppList:        EncodeAppList(s.Apps),
		PreventRemoval: settings.PreventRemoval,
		PreLeadMinutes: settings.NotificationLeadMinutes,
	}
}
