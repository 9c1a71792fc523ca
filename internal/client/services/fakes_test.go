package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/focuslock/internal/api"
	"github.com/dmitrijs2005/focuslock/internal/client/agent"
	"github.com/dmitrijs2005/focuslock/internal/client/client"
	"github.com/dmitrijs2005/focuslock/internal/client/models"
	"github.com/dmitrijs2005/focuslock/internal/client/reconciler"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	PingErr error

	RegisterRet string
	RegisterErr error

	HeartbeatRet bool
	HeartbeatErr error

	RedeemRet *api.Policy
	RedeemErr error

	SaveErr error

	LastRegisterHW       string
	LastRegisterPlatform string
	LastHeartbeatDevice  string
	LastRedeemPayload    string
	LastRedeemDevice     string
	LastSaved            *api.Schedule
}

func (f *fakeClient) Close() error                   { return nil }
func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) RegisterDevice(ctx context.Context, hardwareID, platform string) (string, error) {
	f.LastRegisterHW = hardwareID
	f.LastRegisterPlatform = platform
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Heartbeat(ctx context.Context, deviceID string, usageAccess, screenTime bool) (bool, error) {
	f.LastHeartbeatDevice = deviceID
	return f.HeartbeatRet, f.HeartbeatErr
}

func (f *fakeClient) IssueToken(ctx context.Context, req *api.IssueTokenRequest) (*api.IssueTokenResponse, error) {
	return nil, nil
}

func (f *fakeClient) RedeemToken(ctx context.Context, payload, deviceID string) (*api.Policy, error) {
	f.LastRedeemPayload = payload
	f.LastRedeemDevice = deviceID
	return f.RedeemRet, f.RedeemErr
}

func (f *fakeClient) ListSchedules(ctx context.Context) ([]*api.Schedule, error) {
	return nil, nil
}

func (f *fakeClient) SaveSchedule(ctx context.Context, s *api.Schedule) (*api.Schedule, error) {
	f.LastSaved = s
	if f.SaveErr != nil {
		return nil, f.SaveErr
	}
	out := *s
	out.CreatorID = "me"
	return &out, nil
}

type fakeReconciler struct {
	runs int
	err  error
}

func (f *fakeReconciler) Run(context.Context) (reconciler.Report, error) {
	f.runs++
	return reconciler.Report{}, f.err
}

type immediateCall struct {
	label string
	mode  models.Mode
	apps  []string
	d     time.Duration
}

// fakeAgent records StartImmediate calls; everything else is a no-op.
type fakeAgent struct {
	started  []immediateCall
	startErr error
}

func (a *fakeAgent) StartImmediate(_ context.Context, label string, mode models.Mode, apps []string, d time.Duration) error {
	if a.startErr != nil {
		return a.startErr
	}
	a.started = append(a.started, immediateCall{label: label, mode: mode, apps: apps, d: d})
	return nil
}

func (a *fakeAgent) ScheduleEnforcement(context.Context, agent.EnforcementRequest) error { return nil }
func (a *fakeAgent) CancelEnforcement(context.Context, string) error                     { return nil }
func (a *fakeAgent) RestoreCurrentState(context.Context) error                           { return nil }
func (a *fakeAgent) IsActive(context.Context) (bool, error)                              { return false, nil }
func (a *fakeAgent) RemainingDuration(context.Context) (time.Duration, error)            { return 0, nil }
func (a *fakeAgent) StopImmediate(context.Context) error                                 { return nil }
func (a *fakeAgent) StopAllActive(context.Context) ([]string, error)                     { return nil, nil }
