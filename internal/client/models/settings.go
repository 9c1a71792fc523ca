package models

// Settings are the device-local options passed along with enforcement calls.
type Settings struct {
	// PreventRemoval asks the agent to block uninstalling itself while a
	// restriction is active.
	PreventRemoval bool
	// NotificationLeadMinutes is how long before a scheduled start the user
	// is warned.
	NotificationLeadMinutes int
}

// DefaultSettings is used until the user changes anything.
func DefaultSettings() Settings {
	return Settings{NotificationLeadMinutes: 5}
}
