package services

import (
	"context"

	"github.com/dmitrijs2005/focuslock/internal/client/reconciler"
)

// Reconciler is the part of *reconciler.Reconciler the services need.
type Reconciler interface {
	Run(ctx context.Context) (reconciler.Report, error)
}
