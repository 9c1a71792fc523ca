// Package tokens persists issued lock tokens.
package tokens

import (
	"context"

	"github.com/dmitrijs2005/focuslock/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, t *models.LockToken) error
	Find(ctx context.Context, id string) (*models.LockToken, error)
}
