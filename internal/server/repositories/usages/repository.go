// Package usages records single-use token redemptions.
package usages

import (
	"context"

	"github.com/dmitrijs2005/focuslock/internal/server/models"
)

type Repository interface {
	// Insert stores the usage. A second insert for the same (token, device)
	// pair fails with common.ErrAlreadyExists.
	Insert(ctx context.Context, u *models.UsageRecord) error
}
