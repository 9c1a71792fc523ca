// Package policies persists restriction policies. Policies are immutable, so
// the contract only creates and reads.
package policies

import (
	"context"

	"github.com/dmitrijs2005/focuslock/internal/server/models"
)

type Repository interface {
	// Create stores p. p.ID must already be set.
	Create(ctx context.Context, p *models.RestrictionPolicy) error

	// FindByTokenID resolves the policy a token references.
	// Returns common.ErrorNotFound when the token or the policy is missing.
	FindByTokenID(ctx context.Context, tokenID string) (*models.RestrictionPolicy, error)
}
