package models

import (
	"strings"
	"time"
)

// Mode says what a restriction blocks.
type Mode string

const (
	ModeFullDevice Mode = "full_device"
	ModeAppList    Mode = "app_list"
)

// Purpose categorizes a policy. Purposes are free-form; anything mentioning
// attendance ("attendance", "class_attendance") triggers attendance recording.
type Purpose string

func (p Purpose) IncludesAttendance() bool {
	return strings.Contains(strings.ToLower(string(p)), "attendance")
}

// RestrictionPolicy is immutable once created.
type RestrictionPolicy struct {
	ID              string
	Name            string
	Purpose         Purpose
	DurationMinutes int
	BlockedApps     []string
	AllowedApps     []string
	// Window is an encoded time window (see package window); empty means always.
	Window        string
	OncePerDevice bool
	// CreatedBy is nil for self-issued policies.
	CreatedBy *string
	CreatedAt time.Time
}

// Mode is derived from the app list: no blocked apps locks the whole device.
func (p *RestrictionPolicy) Mode() Mode {
	if len(p.BlockedApps) == 0 {
		return ModeFullDevice
	}
	return ModeAppList
}

// Scheduled reports whether the policy carries a recurring window.
func (p *RestrictionPolicy) Scheduled() bool {
	return strings.TrimSpace(p.Window) != ""
}
