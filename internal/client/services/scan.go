package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/focuslock/internal/api"
	"github.com/dmitrijs2005/focuslock/internal/client/agent"
	"github.com/dmitrijs2005/focuslock/internal/client/client"
	"github.com/dmitrijs2005/focuslock/internal/client/models"
	"github.com/dmitrijs2005/focuslock/internal/client/repositories/adhoc"
	"github.com/dmitrijs2005/focuslock/internal/client/repositories/rowcodec"
	"github.com/dmitrijs2005/focuslock/internal/logging"
	"github.com/dmitrijs2005/focuslock/internal/tokens"
)

// AdhocPrefix prefixes the schedule id derived from a redeemed token.
const AdhocPrefix = "adhoc-"

// ScanResult describes what a successful scan did.
type ScanResult struct {
	Policy *api.Policy
	// ScheduleID is set when the policy was stored as an ad-hoc schedule.
	ScheduleID string
	// Immediate is set when a restriction was started right away.
	Immediate bool
	Duration  time.Duration
}

// ScanService redeems scanned token payloads.
type ScanService interface {
	Scan(ctx context.Context, payload string) (*ScanResult, error)
}

type scanService struct {
	client     client.Client
	devices    DeviceService
	adhoc      adhoc.Repository
	reconciler Reconciler
	agent      agent.Agent
	log        logging.Logger
}

func NewScanService(c client.Client, devices DeviceService, adhocRepo adhoc.Repository, r Reconciler, a agent.Agent, logger logging.Logger) ScanService {
	return &scanService{
		client:     c,
		devices:    devices,
		adhoc:      adhocRepo,
		reconciler: r,
		agent:      a,
		log:        logger.With("module", "scan"),
	}
}

// Scan validates the payload shape locally, redeems it on the server and
// applies the returned policy. A windowed policy becomes an ad-hoc schedule
// followed by a reconciliation pass; any other policy starts an immediate
// restriction for its duration. Server refusals come back as
// *client.RedeemError.
func (s *scanService) Scan(ctx context.Context, payload string) (*ScanResult, error) {
	p, err := tokens.DecodePayload(payload)
	if err != nil {
		return nil, err
	}
	raw, err := p.Encode()
	if err != nil {
		return nil, err
	}

	deviceID, err := s.devices.DeviceID(ctx)
	if err != nil {
		return nil, err
	}

	policy, err := s.client.RedeemToken(ctx, raw, deviceID)
	if err != nil {
		var re *client.RedeemError
		if errors.As(err, &re) {
			s.log.Info(ctx, "token refused", "token_id", p.TokenID, "outcome", re.Outcome)
		}
		return nil, err
	}

	if policy.Scheduled {
		return s.storeAdhoc(ctx, policy)
	}

	d := time.Duration(policy.DurationMinutes) * time.Minute
	mode := models.Mode(policy.Mode)
	if err := s.agent.StartImmediate(ctx, displayName(policy), mode, policy.BlockedApps, d); err != nil {
		return nil, fmt.Errorf("start restriction error: %w", err)
	}
	s.log.Info(ctx, "immediate restriction started from token", "token_id", policy.TokenID, "duration", d.String())
	return &ScanResult{Policy: policy, Immediate: true, Duration: d}, nil
}

func (s *scanService) storeAdhoc(ctx context.Context, policy *api.Policy) (*ScanResult, error) {
	sch := &models.Schedule{
		ID:          AdhocPrefix + policy.TokenID,
		Name:        displayName(policy),
		Start:       policy.WindowStart,
		End:         policy.WindowEnd,
		Days:        rowcodec.DecodeDays(policy.Days),
		Mode:        models.Mode(policy.Mode),
		Apps:        policy.BlockedApps,
		Active:      true,
		Origin:      models.OriginAdhoc,
		ExternalKey: policy.TokenID,
	}
	if err := s.adhoc.Save(ctx, sch); err != nil {
		return nil, fmt.Errorf("ad-hoc schedule saving error: %w", err)
	}

	if _, err := s.reconciler.Run(ctx); err != nil {
		return nil, fmt.Errorf("reconcile error: %w", err)
	}
	s.log.Info(ctx, "ad-hoc schedule stored from token", "token_id", policy.TokenID, "schedule_id", sch.ID)
	return &ScanResult{Policy: policy, ScheduleID: sch.ID}, nil
}

func displayName(p *api.Policy) string {
	if p.Name != "" {
		return p.Name
	}
	return p.Purpose
}
