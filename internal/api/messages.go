// Package api defines the focuslock.v1.LockService wire contract: message
// types, the service descriptor and a client stub.
package api

// Redemption outcomes reported in RedeemTokenResponse.Outcome.
const (
	OutcomeOK                 = "ok"
	OutcomeMalformedPayload   = "malformed_payload"
	OutcomeInvalidSignature   = "invalid_signature"
	OutcomeExpired            = "expired"
	OutcomeDeviceNotFound     = "device_not_found"
	OutcomePermissionRequired = "permission_required"
	OutcomePolicyNotFound     = "policy_not_found"
	OutcomeOutOfWindow        = "out_of_window"
	OutcomeMalformedWindow    = "malformed_window"
	OutcomeAlreadyUsed        = "already_used"
)

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterDeviceRequest struct {
	HardwareID string `json:"hardwareId"`
	Platform   string `json:"platform"`
}

type RegisterDeviceResponse struct {
	DeviceID string `json:"deviceId"`
}

type HeartbeatRequest struct {
	DeviceID           string `json:"deviceId"`
	UsageAccessGranted bool   `json:"usageAccessGranted"`
	ScreenTimeGranted  bool   `json:"screenTimeGranted"`
}

type HeartbeatResponse struct {
	PermissionGranted bool `json:"permissionGranted"`
}

type IssueTokenRequest struct {
	Name            string   `json:"name,omitempty"`
	Purpose         string   `json:"purpose"`
	DurationMinutes int      `json:"durationMinutes"`
	BlockedApps     []string `json:"blockedApps,omitempty"`
	AllowedApps     []string `json:"allowedApps,omitempty"`
	WindowStart     string   `json:"windowStart,omitempty"`
	WindowEnd       string   `json:"windowEnd,omitempty"`
	// Days uses the local weekday symbols.
	Days          string `json:"days,omitempty"`
	OncePerDevice bool   `json:"oncePerDevice,omitempty"`
}

type IssueTokenResponse struct {
	TokenID string `json:"tokenId"`
	// Payload is the scannable token content.
	Payload   string `json:"payload"`
	ExpiresAt int64  `json:"expiresAt"`
}

type RedeemTokenRequest struct {
	Payload  string `json:"payload"`
	DeviceID string `json:"deviceId"`
}

type RedeemTokenResponse struct {
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
	// Platform is set for OutcomePermissionRequired.
	Platform string  `json:"platform,omitempty"`
	Policy   *Policy `json:"policy,omitempty"`
}

// Policy is the resolved policy descriptor returned on a successful redemption.
type Policy struct {
	ID              string   `json:"id"`
	TokenID         string   `json:"tokenId"`
	Name            string   `json:"name"`
	Purpose         string   `json:"purpose"`
	DurationMinutes int      `json:"durationMinutes"`
	Mode            string   `json:"mode"`
	BlockedApps     []string `json:"blockedApps,omitempty"`
	AllowedApps     []string `json:"allowedApps,omitempty"`
	Scheduled       bool     `json:"scheduled"`
	WindowStart     string   `json:"windowStart,omitempty"`
	WindowEnd       string   `json:"windowEnd,omitempty"`
	Days            string   `json:"days,omitempty"`
}

type ListSchedulesRequest struct{}

type ListSchedulesResponse struct {
	Schedules []*Schedule `json:"schedules"`
}

// Schedule is an authoritative schedule. Days are server codes ("MON,WED").
type Schedule struct {
	ID        string   `json:"id"`
	OwnerID   string   `json:"ownerId"`
	CreatorID string   `json:"creatorId"`
	Name      string   `json:"name"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Days      string   `json:"days"`
	Mode      string   `json:"mode"`
	Apps      []string `json:"apps,omitempty"`
	Active    bool     `json:"active"`
}

type SaveScheduleRequest struct {
	Schedule *Schedule `json:"schedule"`
}

type SaveScheduleResponse struct {
	Schedule *Schedule `json:"schedule"`
}
