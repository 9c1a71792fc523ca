// Package grpc exposes the server services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/focuslock/internal/api"
	"github.com/dmitrijs2005/focuslock/internal/logging"
	"github.com/dmitrijs2005/focuslock/internal/server/models"
	"github.com/dmitrijs2005/focuslock/internal/server/services"
	"github.com/dmitrijs2005/focuslock/internal/tokens"
	"google.golang.org/grpc"
)

type Issuer interface {
	Issue(ctx context.Context, req services.IssueRequest) (*services.IssuedToken, error)
}

type Verifier interface {
	Redeem(ctx context.Context, p tokens.Payload, deviceKey string) (*services.Redemption, error)
}

type DeviceRegistry interface {
	Register(ctx context.Context, hardwareID string, platform models.Platform) (*models.Device, error)
	Heartbeat(ctx context.Context, deviceKey string, usageAccess, screenTime bool) (*models.Device, error)
}

type ScheduleStore interface {
	Save(ctx context.Context, creatorID string, sc *models.Schedule) (*models.Schedule, error)
	ListForIdentity(ctx context.Context, identity string) ([]*models.Schedule, error)
}

// Services bundles what the handlers delegate to.
type Services struct {
	Issuer    Issuer
	Verifier  Verifier
	Devices   DeviceRegistry
	Schedules ScheduleStore
}

type GRPCServer struct {
	api.UnimplementedLockServiceServer
	address   string
	services  Services
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, svc Services, jwtSecret string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		services:  svc,
		jwtSecret: []byte(jwtSecret),
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	api.RegisterLockServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
