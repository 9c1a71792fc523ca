package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/focuslock/internal/api"
	"github.com/dmitrijs2005/focuslock/internal/common"
	"github.com/dmitrijs2005/focuslock/internal/server/models"
	"github.com/dmitrijs2005/focuslock/internal/server/services"
	"github.com/dmitrijs2005/focuslock/internal/tokens"
	"github.com/dmitrijs2005/focuslock/internal/window"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) RegisterDevice(ctx context.Context, req *api.RegisterDeviceRequest) (*api.RegisterDeviceResponse, error) {
	d, err := s.services.Devices.Register(ctx, req.HardwareID, models.Platform(req.Platform))
	if err != nil {
		return nil, s.statusError(ctx, "register device", err)
	}

	s.logger.Info(ctx, "Device registered", "device", d.ID, "platform", d.Platform)
	return &api.RegisterDeviceResponse{DeviceID: d.ID}, nil
}

func (s *GRPCServer) Heartbeat(ctx context.Context, req *api.HeartbeatRequest) (*api.HeartbeatResponse, error) {
	d, err := s.services.Devices.Heartbeat(ctx, req.DeviceID, req.UsageAccessGranted, req.ScreenTimeGranted)
	if err != nil {
		return nil, s.statusError(ctx, "heartbeat", err)
	}
	return &api.HeartbeatResponse{PermissionGranted: d.PermissionGranted()}, nil
}

func (s *GRPCServer) IssueToken(ctx context.Context, req *api.IssueTokenRequest) (*api.IssueTokenResponse, error) {
	in := services.IssueRequest{
		Name:            req.Name,
		Purpose:         models.Purpose(req.Purpose),
		DurationMinutes: req.DurationMinutes,
		BlockedApps:     req.BlockedApps,
		AllowedApps:     req.AllowedApps,
		WindowStart:     req.WindowStart,
		WindowEnd:       req.WindowEnd,
		Days:            req.Days,
		OncePerDevice:   req.OncePerDevice,
	}
	if userID, ok := userIDFromContext(ctx); ok {
		in.IssuerID = &userID
	}

	issued, err := s.services.Issuer.Issue(ctx, in)
	if err != nil {
		return nil, s.statusError(ctx, "issue token", err)
	}

	s.logger.Info(ctx, "Token issued", "token", issued.TokenID, "policy", issued.Policy.ID, "self_issued", in.IssuerID == nil)
	return &api.IssueTokenResponse{TokenID: issued.TokenID, Payload: issued.Payload, ExpiresAt: issued.ExpiresAt.Unix()}, nil
}

func (s *GRPCServer) RedeemToken(ctx context.Context, req *api.RedeemTokenRequest) (*api.RedeemTokenResponse, error) {
	p, err := tokens.DecodePayload(req.Payload)
	if err != nil {
		return &api.RedeemTokenResponse{Outcome: api.OutcomeMalformedPayload, Reason: err.Error()}, nil
	}

	r, err := s.services.Verifier.Redeem(ctx, p, req.DeviceID)
	if err != nil {
		resp, ok := redeemOutcome(err)
		if !ok {
			return nil, s.statusError(ctx, "redeem token", err)
		}
		s.logger.Info(ctx, "Redemption refused", "token", p.TokenID, "device", req.DeviceID, "outcome", resp.Outcome)
		return resp, nil
	}

	return &api.RedeemTokenResponse{Outcome: api.OutcomeOK, Policy: toAPIPolicy(r)}, nil
}

func (s *GRPCServer) ListSchedules(ctx context.Context, req *api.ListSchedulesRequest) (*api.ListSchedulesResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	list, err := s.services.Schedules.ListForIdentity(ctx, userID)
	if err != nil {
		return nil, s.statusError(ctx, "list schedules", err)
	}

	out := make([]*api.Schedule, 0, len(list))
	for _, sc := range list {
		out = append(out, toAPISchedule(sc))
	}
	return &api.ListSchedulesResponse{Schedules: out}, nil
}

func (s *GRPCServer) SaveSchedule(ctx context.Context, req *api.SaveScheduleRequest) (*api.SaveScheduleResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	if req.Schedule == nil {
		return nil, status.Error(codes.InvalidArgument, "schedule is required")
	}

	saved, err := s.services.Schedules.Save(ctx, userID, fromAPISchedule(req.Schedule))
	if err != nil {
		return nil, s.statusError(ctx, "save schedule", err)
	}
	return &api.SaveScheduleResponse{Schedule: toAPISchedule(saved)}, nil
}

// statusError maps service errors to gRPC statuses. Storage failures are
// logged and reported without detail.
func (s *GRPCServer) statusError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, services.ErrDeviceNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.PermissionDenied, "permission denied")
	default:
		s.logger.Error(ctx, op+" failed", "error", err)
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}

// redeemOutcome translates a verifier outcome. It reports false for errors
// that are not outcomes.
func redeemOutcome(err error) (*api.RedeemTokenResponse, bool) {
	var (
		perr *services.PermissionRequiredError
		werr *services.OutOfWindowError
	)
	switch {
	case errors.Is(err, services.ErrInvalidSignature):
		return &api.RedeemTokenResponse{Outcome: api.OutcomeInvalidSignature}, true
	case errors.Is(err, services.ErrExpired):
		return &api.RedeemTokenResponse{Outcome: api.OutcomeExpired}, true
	case errors.Is(err, services.ErrDeviceNotFound):
		return &api.RedeemTokenResponse{Outcome: api.OutcomeDeviceNotFound}, true
	case errors.As(err, &perr):
		return &api.RedeemTokenResponse{Outcome: api.OutcomePermissionRequired, Platform: string(perr.Platform)}, true
	case errors.Is(err, services.ErrPolicyNotFound):
		return &api.RedeemTokenResponse{Outcome: api.OutcomePolicyNotFound}, true
	case errors.As(err, &werr):
		outcome := api.OutcomeOutOfWindow
		if werr.Malformed {
			outcome = api.OutcomeMalformedWindow
		}
		return &api.RedeemTokenResponse{Outcome: outcome, Reason: werr.Reason}, true
	case errors.Is(err, services.ErrAlreadyUsed):
		return &api.RedeemTokenResponse{Outcome: api.OutcomeAlreadyUsed}, true
	default:
		return nil, false
	}
}

func toAPIPolicy(r *services.Redemption) *api.Policy {
	p := r.Policy
	out := &api.Policy{
		ID:              p.ID,
		TokenID:         r.TokenID,
		Name:            p.Name,
		Purpose:         string(p.Purpose),
		DurationMinutes: p.DurationMinutes,
		Mode:            string(p.Mode()),
		BlockedApps:     p.BlockedApps,
		AllowedApps:     p.AllowedApps,
	}
	if r.Window != nil {
		out.Scheduled = true
		out.WindowStart = window.FormatClock(r.Window.Start)
		out.WindowEnd = window.FormatClock(r.Window.End)
		out.Days = window.FormatDays(r.Window.Days)
	}
	return out
}

func toAPISchedule(sc *models.Schedule) *api.Schedule {
	return &api.Schedule{
		ID:        sc.ID,
		OwnerID:   sc.OwnerID,
		CreatorID: sc.CreatorID,
		Name:      sc.Name,
		StartTime: sc.StartTime,
		EndTime:   sc.EndTime,
		Days:      sc.Days,
		Mode:      string(sc.Mode),
		Apps:      sc.Apps,
		Active:    sc.Active,
	}
}

func fromAPISchedule(sc *api.Schedule) *models.Schedule {
	return &models.Schedule{
		ID:        sc.ID,
		OwnerID:   sc.OwnerID,
		Name:      sc.Name,
		StartTime: sc.StartTime,
		EndTime:   sc.EndTime,
		Days:      sc.Days,
		Mode:      models.Mode(sc.Mode),
		Apps:      sc.Apps,
		Active:    sc.Active,
	}
}
