package client

import (
	"context"

	"github.com/dmitrijs2005/focuslock/internal/api"
)

// Client is the agent's view of the lock service.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	RegisterDevice(ctx context.Context, hardwareID, platform string) (string, error)
	Heartbeat(ctx context.Context, deviceID string, usageAccess, screenTime bool) (bool, error)
	IssueToken(ctx context.Context, req *api.IssueTokenRequest) (*api.IssueTokenResponse, error)
	RedeemToken(ctx context.Context, payload, deviceID string) (*api.Policy, error)
	ListSchedules(ctx context.Context) ([]*api.Schedule, error)
	SaveSchedule(ctx context.Context, s *api.Schedule) (*api.Schedule, error)
}
