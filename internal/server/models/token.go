package models

import "time"

// LockToken references a policy and is read-only after creation. It stops
// being usable at ExpiresAt but is not deleted.
type LockToken struct {
	ID        string
	PolicyID  string
	IssuerID  *string
	Signature string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// UsageRecord marks a single-use token as redeemed by a device.
type UsageRecord struct {
	TokenID  string
	DeviceID string
	UsedAt   time.Time
}

// AttendanceRecord is written when an attendance-class policy is redeemed.
type AttendanceRecord struct {
	TokenID    string
	DeviceID   string
	AttendedOn time.Time
	RecordedAt time.Time
}
