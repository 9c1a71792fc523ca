// Package schedules persists the agent's last merged schedule set.
package schedules

import (
	"context"

	"github.com/dmitrijs2005/focuslock/internal/client/models"
)

// Repository is the row-level access to the schedule cache.
type Repository interface {
	Load(ctx context.Context) ([]*models.Schedule, error)
	Clear(ctx context.Context) error
	Insert(ctx context.Context, position int, s *models.Schedule) error
}

// Cache reads and overwrites the full cached set as one unit.
type Cache interface {
	Load(ctx context.Context) ([]*models.Schedule, error)
	Replace(ctx context.Context, list []*models.Schedule) error
}
