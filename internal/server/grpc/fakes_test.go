package grpc

import (
	"context"

	"github.com/dmitrijs2005/focuslock/internal/server/models"
	"github.com/dmitrijs2005/focuslock/internal/server/services"
	"github.com/dmitrijs2005/focuslock/internal/tokens"
)

type fakeIssuer struct {
	got  services.IssueRequest
	resp *services.IssuedToken
	err  error
}

func (f *fakeIssuer) Issue(_ context.Context, req services.IssueRequest) (*services.IssuedToken, error) {
	f.got = req
	return f.resp, f.err
}

type fakeVerifier struct {
	gotPayload tokens.Payload
	gotDevice  string
	resp       *services.Redemption
	err        error
}

func (f *fakeVerifier) Redeem(_ context.Context, p tokens.Payload, deviceKey string) (*services.Redemption, error) {
	f.gotPayload = p
	f.gotDevice = deviceKey
	return f.resp, f.err
}

type fakeDevices struct {
	device *models.Device
	err    error
}

func (f *fakeDevices) Register(_ context.Context, hardwareID string, platform models.Platform) (*models.Device, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Device{ID: "dev-1", HardwareID: hardwareID, Platform: platform}, nil
}

func (f *fakeDevices) Heartbeat(_ context.Context, deviceKey string, usageAccess, screenTime bool) (*models.Device, error) {
	if f.err != nil {
		return nil, f.err
	}
	d := *f.device
	d.UsageAccessGranted = usageAccess
	d.ScreenTimeGranted = screenTime
	return &d, nil
}

type fakeSchedules struct {
	saved     *models.Schedule
	creator   string
	list      []*models.Schedule
	listedFor string
	err       error
}

func (f *fakeSchedules) Save(_ context.Context, creatorID string, sc *models.Schedule) (*models.Schedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.creator = creatorID
	out := *sc
	out.CreatorID = creatorID
	if out.ID == "" {
		out.ID = "sched-1"
	}
	f.saved = &out
	return &out, nil
}

func (f *fakeSchedules) ListForIdentity(_ context.Context, identity string) ([]*models.Schedule, error) {
	f.listedFor = identity
	return f.list, f.err
}
