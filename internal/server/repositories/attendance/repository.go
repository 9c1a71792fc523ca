// Package attendance stores attendance records written when an
// attendance-class policy is redeemed.
package attendance

import (
	"context"

	"github.com/dmitrijs2005/focuslock/internal/server/models"
)

type Repository interface {
	// Record is idempotent per (token, device, day). It reports whether a
	// new row was written.
	Record(ctx context.Context, a *models.AttendanceRecord) (bool, error)
}
