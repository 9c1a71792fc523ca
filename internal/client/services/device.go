package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/focuslock/internal/client/client"
	"github.com/dmitrijs2005/focuslock/internal/client/repositories/settings"
)

var ErrNotRegistered = errors.New("device not registered")

// DeviceService keeps this device known to the server.
//
// Contract:
//   - Register: create or look up the device on the server and remember its id.
//   - Heartbeat: report permission flags; returns whether the platform
//     permission counts as granted.
//   - DeviceID: the remembered id, ErrNotRegistered before Register.
type DeviceService interface {
	Register(ctx context.Context, hardwareID, platform string) (string, error)
	Heartbeat(ctx context.Context, usageAccess, screenTime bool) (bool, error)
	DeviceID(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
}

type deviceService struct {
	client client.Client
	db     *sql.DB
}

func NewDeviceService(c client.Client, db *sql.DB) DeviceService {
	return &deviceService{client: c, db: db}
}

func (d *deviceService) store() settings.Store {
	return settings.NewKVStore(settings.NewSQLiteRepository(d.db))
}

// Register is safe to repeat; the server returns the same id for the same
// hardware id.
func (d *deviceService) Register(ctx context.Context, hardwareID, platform string) (string, error) {
	id, err := d.client.RegisterDevice(ctx, hardwareID, platform)
	if err != nil {
		return "", fmt.Errorf("register device error: %w", err)
	}
	if err := d.store().SetDeviceID(ctx, id); err != nil {
		return "", fmt.Errorf("device id saving error: %w", err)
	}
	return id, nil
}

func (d *deviceService) Heartbeat(ctx context.Context, usageAccess, screenTime bool) (bool, error) {
	id, err := d.DeviceID(ctx)
	if err != nil {
		return false, err
	}
	granted, err := d.client.Heartbeat(ctx, id, usageAccess, screenTime)
	if err != nil {
		return false, fmt.Errorf("heartbeat error: %w", err)
	}
	return granted, nil
}

func (d *deviceService) DeviceID(ctx context.Context) (string, error) {
	id, err := d.store().DeviceID(ctx)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", ErrNotRegistered
	}
	return id, nil
}

func (d *deviceService) Ping(ctx context.Context) error {
	return d.client.Ping(ctx)
}
