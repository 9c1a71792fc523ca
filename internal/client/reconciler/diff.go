package reconciler

import "github.com/dmitrijs2005/focuslock/internal/client/models"

type ActionKind int

const (
	ActionSchedule ActionKind = iota
	ActionCancel
)

func (k ActionKind) String() string {
	if k == ActionSchedule {
		return "schedule"
	}
	return "cancel"
}

// Action is one enforcement-agent call. Schedule is nil for cancellations of
// ids that disappeared.
type Action struct {
	Kind     ActionKind
	ID       string
	Schedule *models.Schedule
}

// Diff computes the agent calls that move enforcement from previous to next.
// Removed ids are cancelled first, in previous order. Every schedule in next
// that is new or differs in enforcement terms is then scheduled when active
// and cancelled when not. Unchanged schedules produce nothing.
func Diff(previous, next []*models.Schedule) []Action {
	prevByID := make(map[string]*models.Schedule, len(previous))
	for _, s := range previous {
		prevByID[s.ID] = s
	}
	nextIDs := make(map[string]bool, len(next))
	for _, s := range next {
		nextIDs[s.ID] = true
	}

	var actions []Action
	for _, s := range previous {
		if !nextIDs[s.ID] {
			actions = append(actions, Action{Kind: ActionCancel, ID: s.ID})
		}
	}

	for _, s := range next {
		old, ok := prevByID[s.ID]
		if ok && old.SameEnforcement(s) {
			continue
		}
		kind := ActionCancel
		if s.Active {
			kind = ActionSchedule
		}
		actions = append(actions, Action{Kind: kind, ID: s.ID, Schedule: s})
	}
	return actions
}
