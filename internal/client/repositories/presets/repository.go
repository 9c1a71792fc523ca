// Package presets stores user-owned restriction templates.
package presets

import (
	"context"

	"github.com/dmitrijs2005/focuslock/internal/client/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Preset, error)
	Get(ctx context.Context, id string) (*models.Preset, error)
	Save(ctx context.Context, p *models.Preset) error
	Delete(ctx context.Context, id string) error
}
