// Package adhoc stores schedules created by redeeming windowed tokens.
package adhoc

import (
	"context"

	"github.com/dmitrijs2005/focuslock/internal/client/models"
)

// Repository holds ad-hoc schedules. ExternalKey carries the token id.
type Repository interface {
	List(ctx context.Context) ([]*models.Schedule, error)
	Save(ctx context.Context, s *models.Schedule) error
	Delete(ctx context.Context, id string) error
}
