// Package settings keeps device-local options in the metadata key/value table.
package settings

import (
	"context"

	"github.com/dmitrijs2005/focuslock/internal/client/models"
)

// Keys under which typed values are stored.
const (
	KeyPreventRemoval          = "prevent_removal"
	KeyNotificationLeadMinutes = "notification_lead_minutes"
	KeyDeviceID                = "device_id"
)

// Repository is the raw key/value access. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
}

// Store reads and writes typed settings.
type Store interface {
	Load(ctx context.Context) (models.Settings, error)
	Save(ctx context.Context, s models.Settings) error
	DeviceID(ctx context.Context) (string, error)
	SetDeviceID(ctx context.Context, id string) error
}
