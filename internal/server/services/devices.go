package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/focuslock/internal/clock"
	"github.com/dmitrijs2005/focuslock/internal/common"
	"github.com/dmitrijs2005/focuslock/internal/server/models"
	"github.com/dmitrijs2005/focuslock/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// DeviceService registers receiving devices and keeps their permission
// flags current.
type DeviceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	clock       clock.Clock
}

func NewDeviceService(db *sql.DB, m repomanager.RepositoryManager, c clock.Clock) *DeviceService {
	return &DeviceService{db: db, repomanager: m, clock: c}
}

// Register creates the device or returns the existing one with the same
// hardware id.
func (s *DeviceService) Register(ctx context.Context, hardwareID string, platform models.Platform) (*models.Device, error) {
	hardwareID = strings.TrimSpace(hardwareID)
	if hardwareID == "" {
		return nil, fmt.Errorf("%w: hardware id is required", common.ErrorValidation)
	}
	if !platform.Valid() {
		return nil, fmt.Errorf("%w: unknown platform %q", common.ErrorValidation, platform)
	}

	d, err := s.repomanager.Devices(s.db).Register(ctx, &models.Device{
		ID:         uuid.NewString(),
		HardwareID: hardwareID,
		Platform:   platform,
		LastSeenAt: s.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("error registering device: %w", err)
	}
	return d, nil
}

// Heartbeat stores the device's current permission flags.
func (s *DeviceService) Heartbeat(ctx context.Context, deviceKey string, usageAccess, screenTime bool) (*models.Device, error) {
	repo := s.repomanager.Devices(s.db)

	d, err := repo.Find(ctx, deviceKey)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("error finding device: %w", err)
	}

	now := s.clock.Now()
	if err := repo.UpdatePermissions(ctx, d.ID, usageAccess, screenTime, now); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("error updating device: %w", err)
	}

	d.UsageAccessGranted = usageAccess
	d.ScreenTimeGranted = screenTime
	d.LastSeenAt = now
	return d, nil
}
