package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service. Every method takes and
// returns a google.protobuf.Struct holding the same snake_case JSON the REST
// surface uses.
const ServiceName = "minute.policy.v1.PolicyService"

const (
	MethodGetChild        = "GetChild"
	MethodSetLock         = "SetLock"
	MethodSetPaused       = "SetPaused"
	MethodApproveAccess   = "ApproveAccess"
	MethodRecordUsage     = "RecordUsage"
	MethodSetTrustScore   = "SetTrustScore"
	MethodSetAppAllowed   = "SetAppAllowed"
	MethodSetAppPaused    = "SetAppPaused"
	MethodSetAppTimeLimit = "SetAppTimeLimit"
	MethodAddWebRule      = "AddWebRule"
	MethodRemoveWebRule   = "RemoveWebRule"
	MethodListAlerts      = "ListAlerts"
	MethodMarkAlertRead   = "MarkAlertRead"
	MethodDismissAlert    = "DismissAlert"
	MethodSetLimiter      = "SetLimiter"
)

func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type PolicyServiceServer interface {
	GetChild(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetLock(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetPaused(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ApproveAccess(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordUsage(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetTrustScore(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetAppAllowed(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetAppPaused(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetAppTimeLimit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddWebRule(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveWebRule(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAlerts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	MarkAlertRead(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DismissAlert(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetLimiter(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv PolicyServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(method string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PolicyServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PolicyServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var PolicyService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PolicyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(MethodGetChild, PolicyServiceServer.GetChild),
		unaryMethod(MethodSetLock, PolicyServiceServer.SetLock),
		unaryMethod(MethodSetPaused, PolicyServiceServer.SetPaused),
		unaryMethod(MethodApproveAccess, PolicyServiceServer.ApproveAccess),
		unaryMethod(MethodRecordUsage, PolicyServiceServer.RecordUsage),
		unaryMethod(MethodSetTrustScore, PolicyServiceServer.SetTrustScore),
		unaryMethod(MethodSetAppAllowed, PolicyServiceServer.SetAppAllowed),
		unaryMethod(MethodSetAppPaused, PolicyServiceServer.SetAppPaused),
		unaryMethod(MethodSetAppTimeLimit, PolicyServiceServer.SetAppTimeLimit),
		unaryMethod(MethodAddWebRule, PolicyServiceServer.AddWebRule),
		unaryMethod(MethodRemoveWebRule, PolicyServiceServer.RemoveWebRule),
		unaryMethod(MethodListAlerts, PolicyServiceServer.ListAlerts),
		unaryMethod(MethodMarkAlertRead, PolicyServiceServer.MarkAlertRead),
		unaryMethod(MethodDismissAlert, PolicyServiceServer.DismissAlert),
		unaryMethod(MethodSetLimiter, PolicyServiceServer.SetLimiter),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "minute/policy/v1/policy_service",
}

func RegisterPolicyServiceServer(s grpc.ServiceRegistrar, srv PolicyServiceServer) {
	s.RegisterService(&PolicyService_ServiceDesc, srv)
}
