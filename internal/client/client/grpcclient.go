package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/focuslock/internal/api"
	"github.com/dmitrijs2005/focuslock/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.LockServiceClient
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor attaches the access token when one is configured.
// Without a token calls go out anonymously.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient connects lazily to endpointURL. accessToken may be empty.
func NewGRPCClient(endpointURL, accessToken string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken}
	if err := c.initGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) initGRPCClient(extra ...grpc.DialOption) error {
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, extra...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewLockServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) RegisterDevice(ctx context.Context, hardwareID, platform string) (string, error) {
	resp, err := s.client.RegisterDevice(ctx, &api.RegisterDeviceRequest{HardwareID: hardwareID, Platform: platform})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.DeviceID, nil
}

// Heartbeat reports the device's permission flags and returns whether the
// server considers the platform permission granted.
func (s *GRPCClient) Heartbeat(ctx context.Context, deviceID string, usageAccess, screenTime bool) (bool, error) {
	resp, err := s.client.Heartbeat(ctx, &api.HeartbeatRequest{
		DeviceID:           deviceID,
		UsageAccessGranted: usageAccess,
		ScreenTimeGranted:  screenTime,
	})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.PermissionGranted, nil
}

func (s *GRPCClient) IssueToken(ctx context.Context, req *api.IssueTokenRequest) (*api.IssueTokenResponse, error) {
	resp, err := s.client.IssueToken(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// RedeemToken returns the resolved policy, or *RedeemError when the server
// refused the token.
func (s *GRPCClient) RedeemToken(ctx context.Context, payload, deviceID string) (*api.Policy, error) {
	resp, err := s.client.RedeemToken(ctx, &api.RedeemTokenRequest{Payload: payload, DeviceID: deviceID})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.Outcome != api.OutcomeOK {
		return nil, &RedeemError{Outcome: resp.Outcome, Reason: resp.Reason, Platform: resp.Platform}
	}
	if resp.Policy == nil {
		return nil, fmt.Errorf("rpc error: ok outcome without policy")
	}
	return resp.Policy, nil
}

func (s *GRPCClient) ListSchedules(ctx context.Context) ([]*api.Schedule, error) {
	resp, err := s.client.ListSchedules(ctx, &api.ListSchedulesRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Schedules, nil
}

func (s *GRPCClient) SaveSchedule(ctx context.Context, sch *api.Schedule) (*api.Schedule, error) {
	resp, err := s.client.SaveSchedule(ctx, &api.SaveScheduleRequest{Schedule: sch})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Schedule, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
