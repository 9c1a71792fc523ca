package models

import "time"

// Schedule is a guardian-managed recurring restriction, stored with server
// day codes ("MON,WED").
type Schedule struct {
	ID        string
	OwnerID   string
	CreatorID string
	Name      string
	StartTime string
	EndTime   string
	Days      string
	Mode      Mode
	Apps      []string
	Active    bool
	UpdatedAt time.Time
}
