package reconciler

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/focuslock/internal/api"
	"github.com/dmitrijs2005/focuslock/internal/client/models"
	"github.com/dmitrijs2005/focuslock/internal/window"
)

// fromAuthoritative converts a server schedule to the local model. Days are
// translated from server codes to local symbols; the schedule is read-only
// unless userID created it.
func fromAuthoritative(s *api.Schedule, userID string) (*models.Schedule, error) {
	days, err := window.ServerToLocal(s.Days)
	if err != nil {
		return nil, fmt.Errorf("schedule %s: %w", s.ID, err)
	}
	return &models.Schedule{
		ID:          s.ID,
		Name:        s.Name,
		Start:       s.StartTime,
		End:         s.EndTime,
		Days:        days,
		Mode:        models.Mode(strings.ToLower(s.Mode)),
		Apps:        s.Apps,
		Active:      s.Active,
		Origin:      models.OriginAuthoritative,
		ExternalKey: s.ID,
		ReadOnly:    userID == "" || s.CreatorID != userID,
	}, nil
}

func scheduledPresets(presets []*models.Preset) []*models.Schedule {
	var out []*models.Schedule
	for _, p := range presets {
		if p.Kind == models.PresetScheduled {
			out = append(out, p.Schedule())
		}
	}
	return out
}

func withOrigin(list []*models.Schedule, origin models.Origin) []*models.Schedule {
	var out []*models.Schedule
	for _, s := range list {
		if s.Origin == origin {
			out = append(out, s)
		}
	}
	return out
}
