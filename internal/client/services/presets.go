package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/focuslock/internal/client/agent"
	"github.com/dmitrijs2005/focuslock/internal/client/models"
	"github.com/dmitrijs2005/focuslock/internal/client/repositories/presets"
	"github.com/dmitrijs2005/focuslock/internal/common"
	"github.com/dmitrijs2005/focuslock/internal/window"
	"github.com/google/uuid"
)

// PresetService manages user-owned presets. Scheduled presets take effect
// through reconciliation; instant presets are started by hand.
type PresetService interface {
	List(ctx context.Context) ([]*models.Preset, error)
	Save(ctx context.Context, p *models.Preset) (*models.Preset, error)
	Delete(ctx context.Context, id string) error
	Start(ctx context.Context, id string) error
}

type presetService struct {
	repo       presets.Repository
	reconciler Reconciler
	agent      agent.Agent
}

func NewPresetService(repo presets.Repository, r Reconciler, a agent.Agent) PresetService {
	return &presetService{repo: repo, reconciler: r, agent: a}
}

func (s *presetService) List(ctx context.Context) ([]*models.Preset, error) {
	return s.repo.List(ctx)
}

// Save validates p, assigns an id to new presets and reconciles when the
// preset is scheduled.
func (s *presetService) Save(ctx context.Context, p *models.Preset) (*models.Preset, error) {
	if err := validatePreset(p); err != nil {
		return nil, err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	if p.Kind == models.PresetScheduled {
		if _, err := s.reconciler.Run(ctx); err != nil {
			return nil, fmt.Errorf("reconcile error: %w", err)
		}
	}
	return p, nil
}

func (s *presetService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_, err := s.reconciler.Run(ctx)
	return err
}

// Start runs an instant preset now.
func (s *presetService) Start(ctx context.Context, id string) error {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.Kind != models.PresetInstant {
		return fmt.Errorf("%w: preset %s is not instant", common.ErrorValidation, id)
	}
	return s.agent.StartImmediate(ctx, p.Name, p.Mode, p.Apps, time.Duration(p.DurationMinutes)*time.Minute)
}

func validatePreset(p *models.Preset) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if p.Mode != models.ModeFullDevice && p.Mode != models.ModeAppList {
		return fmt.Errorf("%w: unknown mode %q", common.ErrorValidation, p.Mode)
	}
	if p.Mode == models.ModeAppList && len(p.Apps) == 0 {
		return fmt.Errorf("%w: app_list mode needs apps", common.ErrorValidation)
	}

	switch p.Kind {
	case models.PresetScheduled:
		if _, err := window.ParseClock(p.Start); err != nil {
			return fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		if _, err := window.ParseClock(p.End); err != nil {
			return fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		for _, d := range p.Days {
			if _, err := window.ParseSymbol(d); err != nil {
				return fmt.Errorf("%w: %v", common.ErrorValidation, err)
			}
		}
	case models.PresetInstant:
		if p.DurationMinutes <= 0 {
			return fmt.Errorf("%w: duration must be positive", common.ErrorValidation)
		}
	default:
		return fmt.Errorf("%w: unknown preset kind %q", common.ErrorValidation, p.Kind)
	}
	return nil
}
