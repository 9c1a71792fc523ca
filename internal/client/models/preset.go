package models

// PresetKind separates presets that run on a timetable from ones started by
// hand.
type PresetKind string

const (
	PresetScheduled PresetKind = "scheduled"
	PresetInstant   PresetKind = "instant"
)

// Preset is a user-owned restriction template.
type Preset struct {
	ID              string
	Name            string
	Kind            PresetKind
	Start           string
	End             string
	Days            []string
	Mode            Mode
	Apps            []string
	DurationMinutes int
	Active          bool
}

// Schedule converts a scheduled preset into a schedule of OriginPreset.
func (p *Preset) Schedule() *Schedule {
	return &Schedule{
		ID:          p.ID,
		Name:        p.Name,
		Start:       p.Start,
		End:         p.End,
		Days:        p.Days,
		Mode:        p.Mode,
		Apps:        p.Apps,
		Active:      p.Active,
		Origin:      OriginPreset,
		ExternalKey: p.ID,
	}
}
