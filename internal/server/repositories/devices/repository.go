// Package devices declares the server-side repository contract for
// registered receiving devices.
package devices

import (
	"context"
	"time"

	"github.com/dmitrijs2005/focuslock/internal/server/models"
)

type Repository interface {
	// Register inserts the device or, when the hardware id is already known,
	// refreshes its platform and last-seen time. The stored row is returned.
	Register(ctx context.Context, d *models.Device) (*models.Device, error)

	// Find looks a device up by primary id or by hardware id.
	// Returns common.ErrorNotFound when neither matches.
	Find(ctx context.Context, key string) (*models.Device, error)

	// UpdatePermissions stores both permission flags and bumps last_seen_at.
	UpdatePermissions(ctx context.Context, id string, usageAccess, screenTime bool, seenAt time.Time) error
}
