package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/focuslock/internal/api"
	"github.com/dmitrijs2005/focuslock/internal/client/client"
	"github.com/dmitrijs2005/focuslock/internal/client/models"
	"github.com/dmitrijs2005/focuslock/internal/window"
)

// GuardianService edits authoritative schedules on the server. The server
// decides ownership; a schedule created by someone else comes back as
// client.ErrUnauthorized.
type GuardianService interface {
	Save(ctx context.Context, ownerID string, s *models.Schedule) (*api.Schedule, error)
}

type guardianService struct {
	client     client.Client
	reconciler Reconciler
}

func NewGuardianService(c client.Client, r Reconciler) GuardianService {
	return &guardianService{client: c, reconciler: r}
}

func (g *guardianService) Save(ctx context.Context, ownerID string, s *models.Schedule) (*api.Schedule, error) {
	if s.ReadOnly {
		return nil, fmt.Errorf("schedule %s: %w", s.ID, client.ErrUnauthorized)
	}
	days, err := window.LocalToServer(s.Days)
	if err != nil {
		return nil, err
	}

	saved, err := g.client.SaveSchedule(ctx, &api.Schedule{
		ID:        s.ID,
		OwnerID:   ownerID,
		Name:      s.Name,
		StartTime: s.Start,
		EndTime:   s.End,
		Days:      days,
		Mode:      string(s.Mode),
		Apps:      s.Apps,
		Active:    s.Active,
	})
	if err != nil {
		return nil, fmt.Errorf("save schedule error: %w", err)
	}

	if _, err := g.reconciler.Run(ctx); err != nil {
		return nil, fmt.Errorf("reconcile error: %w", err)
	}
	return saved, nil
}
