// Package models defines server-side data models persisted in the database.
package models

import "time"

// Platform is the enforcement-agent family a device belongs to.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

func (p Platform) Valid() bool {
	return p == PlatformAndroid || p == PlatformIOS
}

// Device is a registered receiving device. Devices are never deleted.
type Device struct {
	ID         string
	HardwareID string
	Platform   Platform
	// UsageAccessGranted is the permission Android agents need.
	UsageAccessGranted bool
	// ScreenTimeGranted is the permission iOS agents need.
	ScreenTimeGranted bool
	LastSeenAt        time.Time
	CreatedAt         time.Time
}

// PermissionGranted reports whether the flag relevant to the device's
// platform is set.
func (d *Device) PermissionGranted() bool {
	switch d.Platform {
	case PlatformAndroid:
		return d.UsageAccessGranted
	case PlatformIOS:
		return d.ScreenTimeGranted
	default:
		return false
	}
}
