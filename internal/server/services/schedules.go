package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/focuslock/internal/clock"
	"github.com/dmitrijs2005/focuslock/internal/common"
	"github.com/dmitrijs2005/focuslock/internal/server/models"
	"github.com/dmitrijs2005/focuslock/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/focuslock/internal/window"
	"github.com/google/uuid"
)

// ScheduleService manages authoritative schedules, the ones a guardian sets
// for a device owner.
type ScheduleService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	clock       clock.Clock
}

func NewScheduleService(db *sql.DB, m repomanager.RepositoryManager, c clock.Clock) *ScheduleService {
	return &ScheduleService{db: db, repomanager: m, clock: c}
}

// Save creates or updates a schedule on behalf of creatorID. A missing id
// creates a new schedule; a missing owner means the creator owns it.
func (s *ScheduleService) Save(ctx context.Context, creatorID string, sc *models.Schedule) (*models.Schedule, error) {
	if err := validateSchedule(sc); err != nil {
		return nil, err
	}

	out := *sc
	out.CreatorID = creatorID
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	if out.OwnerID == "" {
		out.OwnerID = creatorID
	}
	out.Days = strings.ToUpper(strings.ReplaceAll(out.Days, " ", ""))
	out.UpdatedAt = s.clock.Now()

	if err := s.repomanager.Schedules(s.db).Upsert(ctx, &out); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error saving schedule: %w", err)
	}
	return &out, nil
}

// ListForIdentity returns schedules the identity owns or created.
func (s *ScheduleService) ListForIdentity(ctx context.Context, identity string) ([]*models.Schedule, error) {
	list, err := s.repomanager.Schedules(s.db).ListForIdentity(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("error listing schedules: %w", err)
	}
	return list, nil
}

func validateSchedule(sc *models.Schedule) error {
	if strings.TrimSpace(sc.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if _, err := window.ParseClock(sc.StartTime); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	if _, err := window.ParseClock(sc.EndTime); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	if _, err := window.ServerToLocal(sc.Days); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	if sc.Mode != models.ModeFullDevice && sc.Mode != models.ModeAppList {
		return fmt.Errorf("%w: unknown mode %q", common.ErrorValidation, sc.Mode)
	}
	if sc.Mode == models.ModeAppList && len(sc.Apps) == 0 {
		return fmt.Errorf("%w: app_list mode needs apps", common.ErrorValidation)
	}
	return nil
}
