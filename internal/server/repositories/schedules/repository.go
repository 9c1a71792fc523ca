// Package schedules stores guardian-managed (authoritative) schedules.
package schedules

import (
	"context"

	"github.com/dmitrijs2005/focuslock/internal/server/models"
)

type Repository interface {
	// Upsert inserts s or replaces the row with the same id. A row with the
	// same id that belongs to another creator is left untouched and
	// common.ErrAlreadyExists is returned.
	Upsert(ctx context.Context, s *models.Schedule) error
	// ListForIdentity returns schedules owned by or created by identity,
	// ordered by id.
	ListForIdentity(ctx context.Context, identity string) ([]*models.Schedule, error)
}
