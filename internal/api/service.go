package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "focuslock.v1.LockService"

// Full method names, as seen by interceptors.
const (
	PingMethod           = "/" + ServiceName + "/Ping"
	RegisterDeviceMethod = "/" + ServiceName + "/RegisterDevice"
	HeartbeatMethod      = "/" + ServiceName + "/Heartbeat"
	IssueTokenMethod     = "/" + ServiceName + "/IssueToken"
	RedeemTokenMethod    = "/" + ServiceName + "/RedeemToken"
	ListSchedulesMethod  = "/" + ServiceName + "/ListSchedules"
	SaveScheduleMethod   = "/" + ServiceName + "/SaveSchedule"
)

// LockServiceServer is the server API for the lock service.
type LockServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	RegisterDevice(context.Context, *RegisterDeviceRequest) (*RegisterDeviceResponse, error)
	Heartbeat(context.Context, *HeartbeatRequest) (*HeartbeatResponse, error)
	IssueToken(context.Context, *IssueTokenRequest) (*IssueTokenResponse, error)
	RedeemToken(context.Context, *RedeemTokenRequest) (*RedeemTokenResponse, error)
	ListSchedules(context.Context, *ListSchedulesRequest) (*ListSchedulesResponse, error)
	SaveSchedule(context.Context, *SaveScheduleRequest) (*SaveScheduleResponse, error)
}

// UnimplementedLockServiceServer can be embedded to satisfy LockServiceServer.
type UnimplementedLockServiceServer struct{}

func (UnimplementedLockServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedLockServiceServer) RegisterDevice(context.Context, *RegisterDeviceRequest) (*RegisterDeviceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterDevice not implemented")
}
func (UnimplementedLockServiceServer) Heartbeat(context.Context, *HeartbeatRequest) (*HeartbeatResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Heartbeat not implemented")
}
func (UnimplementedLockServiceServer) IssueToken(context.Context, *IssueTokenRequest) (*IssueTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method IssueToken not implemented")
}
func (UnimplementedLockServiceServer) RedeemToken(context.Context, *RedeemTokenRequest) (*RedeemTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RedeemToken not implemented")
}
func (UnimplementedLockServiceServer) ListSchedules(context.Context, *ListSchedulesRequest) (*ListSchedulesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListSchedules not implemented")
}
func (UnimplementedLockServiceServer) SaveSchedule(context.Context, *SaveScheduleRequest) (*SaveScheduleResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SaveSchedule not implemented")
}

// ServiceDesc is the grpc.ServiceDesc for the lock service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", LockServiceServer.Ping),
		unary("RegisterDevice", LockServiceServer.RegisterDevice),
		unary("Heartbeat", LockServiceServer.Heartbeat),
		unary("IssueToken", LockServiceServer.IssueToken),
		unary("RedeemToken", LockServiceServer.RedeemToken),
		unary("ListSchedules", LockServiceServer.ListSchedules),
		unary("SaveSchedule", LockServiceServer.SaveSchedule),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "focuslock/v1/lock_service",
}

func RegisterLockServiceServer(s grpc.ServiceRegistrar, srv LockServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unary[Req, Resp any](name string, call func(LockServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LockServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(LockServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// LockServiceClient is the client API for the lock service. Calls always use
// the JSON content-subtype.
type LockServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	RegisterDevice(ctx context.Context, in *RegisterDeviceRequest, opts ...grpc.CallOption) (*RegisterDeviceResponse, error)
	Heartbeat(ctx context.Context, in *HeartbeatRequest, opts ...grpc.CallOption) (*HeartbeatResponse, error)
	IssueToken(ctx context.Context, in *IssueTokenRequest, opts ...grpc.CallOption) (*IssueTokenResponse, error)
	RedeemToken(ctx context.Context, in *RedeemTokenRequest, opts ...grpc.CallOption) (*RedeemTokenResponse, error)
	ListSchedules(ctx context.Context, in *ListSchedulesRequest, opts ...grpc.CallOption) (*ListSchedulesResponse, error)
	SaveSchedule(ctx context.Context, in *SaveScheduleRequest, opts ...grpc.CallOption) (*SaveScheduleResponse, error)
}

type lockServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLockServiceClient(cc grpc.ClientConnInterface) LockServiceClient {
	return &lockServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *lockServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, PingMethod, in, opts)
}

func (c *lockServiceClient) RegisterDevice(ctx context.Context, in *RegisterDeviceRequest, opts ...grpc.CallOption) (*RegisterDeviceResponse, error) {
	return invoke[RegisterDeviceResponse](ctx, c.cc, RegisterDeviceMethod, in, opts)
}

func (c *lockServiceClient) Heartbeat(ctx context.Context, in *HeartbeatRequest, opts ...grpc.CallOption) (*HeartbeatResponse, error) {
	return invoke[HeartbeatResponse](ctx, c.cc, HeartbeatMethod, in, opts)
}

func (c *lockServiceClient) IssueToken(ctx context.Context, in *IssueTokenRequest, opts ...grpc.CallOption) (*IssueTokenResponse, error) {
	return invoke[IssueTokenResponse](ctx, c.cc, IssueTokenMethod, in, opts)
}

func (c *lockServiceClient) RedeemToken(ctx context.Context, in *RedeemTokenRequest, opts ...grpc.CallOption) (*RedeemTokenResponse, error) {
	return invoke[RedeemTokenResponse](ctx, c.cc, RedeemTokenMethod, in, opts)
}

func (c *lockServiceClient) ListSchedules(ctx context.Context, in *ListSchedulesRequest, opts ...grpc.CallOption) (*ListSchedulesResponse, error) {
	return invoke[ListSchedulesResponse](ctx, c.cc, ListSchedulesMethod, in, opts)
}

func (c *lockServiceClient) SaveSchedule(ctx context.Context, in *SaveScheduleRequest, opts ...grpc.CallOption) (*SaveScheduleResponse, error) {
	return invoke[SaveScheduleResponse](ctx, c.cc, SaveScheduleMethod, in, opts)
}
