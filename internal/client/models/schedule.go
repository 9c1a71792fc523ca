// Package models defines the agent's local data models.
package models

import "slices"

// Origin says which source a schedule came from. Declaration order is merge
// precedence.
type Origin string

const (
	OriginAuthoritative Origin = "authoritative"
	OriginPreset        Origin = "preset"
	OriginAdhoc         Origin = "adhoc"
)

// Mode says what an enforcement blocks.
type Mode string

const (
	ModeFullDevice Mode = "full_device"
	ModeAppList    Mode = "app_list"
)

// Schedule is a recurring restriction as the agent enforces it. Days holds
// local weekday symbols in the order the source gave them; empty means every
// day.
type Schedule struct {
	ID     string
	Name   string
	Start  string
	End    string
	Days   []string
	Mode   Mode
	Apps   []string
	Active bool

	Origin Origin
	// ExternalKey identifies the record in its source (server schedule id,
	// preset id, token id).
	ExternalKey string
	// ReadOnly is set for authoritative schedules the current identity did
	// not create.
	ReadOnly bool
}

// SameEnforcement reports whether applying s and other would produce the same
// enforcement call. Days and apps compare in order.
func (s *Schedule) SameEnforcement(other *Schedule) bool {
	return s.Active == other.Active &&
		s.Start == other.Start &&
		s.End == other.End &&
		slices.Equal(s.Days, other.Days) &&
		s.Mode == other.Mode &&
		slices.Equal(s.Apps, other.Apps)
}
