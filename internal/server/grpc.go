package server

import (
	"context"
	"errors"
	"math"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/egg-hatchery/internal/hatch"
)

// ServiceName is the fully qualified gRPC service name. Messages are
// google.protobuf.Struct with the same field names as the JSON API.
const ServiceName = "eggsim.v1.Hatchery"

// HatcheryServer is the server API for the Hatchery service.
type HatcheryServer interface {
	Hatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetParams(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetParams(context.Context, *structpb.Struct) (*structpb.Struct, error)
	OriginalOdds(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(HatcheryServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(method string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(HatcheryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(HatcheryServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var hatcheryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HatcheryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Hatch", Handler: unary("Hatch", HatcheryServer.Hatch)},
		{MethodName: "SetParams", Handler: unary("SetParams", HatcheryServer.SetParams)},
		{MethodName: "GetParams", Handler: unary("GetParams", HatcheryServer.GetParams)},
		{MethodName: "OriginalOdds", Handler: unary("OriginalOdds", HatcheryServer.OriginalOdds)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "eggsim/v1/hatchery.proto",
}

// RegisterHatcheryServer registers srv on s.
func RegisterHatcheryServer(s grpc.ServiceRegistrar, srv HatcheryServer) {
	s.RegisterService(&hatcheryServiceDesc, srv)
}

// HatcheryClient calls the Hatchery service.
type HatcheryClient struct {
	cc grpc.ClientConnInterface
}

func NewHatcheryClient(cc grpc.ClientConnInterface) *HatcheryClient {
	return &HatcheryClient{cc: cc}
}

func (c *HatcheryClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HatcheryClient) Hatch(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Hatch", in, opts...)
}

func (c *HatcheryClient) SetParams(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "SetParams", in, opts...)
}

func (c *HatcheryClient) GetParams(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetParams", in, opts...)
}

func (c *HatcheryClient) OriginalOdds(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "OriginalOdds", in, opts...)
}

// GRPCService adapts a Hatchery to HatcheryServer.
type GRPCService struct {
	h *Hatchery
}

func NewGRPCService(h *Hatchery) *GRPCService { return &GRPCService{h: h} }

func (s *GRPCService) Hatch(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	v, ok := in.GetFields()["eggs"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "missing field eggs")
	}
	n := v.GetNumberValue()
	if _, isNum := v.GetKind().(*structpb.Value_NumberValue); !isNum || n != math.Trunc(n) || n < 1 || n > math.MaxInt32 {
		return nil, status.Error(codes.InvalidArgument, "please enter a valid number of eggs")
	}
	if n > float64(s.h.MaxEggs()) {
		return nil, status.Error(codes.InvalidArgument, "please enter a valid number of eggs")
	}
	rep, err := s.h.Hatch(int(n))
	if err != nil {
		return nil, toStatus(err)
	}
	rows := make([]any, len(rep.Rows))
	for i, r := range rep.Rows {
		rows[i] = map[string]any{
			"label":            r.Label,
			"count":            r.Count,
			"true_probability": r.TrueProbability,
			"expected":         r.Expected,
			"original_odds":    r.OriginalOdds,
		}
	}
	out, err := structpb.NewStruct(map[string]any{
		"run_id":        rep.RunID,
		"eggs":          rep.Eggs,
		"luck_percent":  rep.LuckPercent,
		"shiny_chance":  rep.ShinyChance,
		"mythic_chance": rep.MythicChance,
		"rows":          rows,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func (s *GRPCService) SetParams(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var u ParamUpdate
	for key, dst := range map[string]**float64{
		"luck_percent":   &u.LuckPercent,
		"shiny_percent":  &u.ShinyPercent,
		"mythic_percent": &u.MythicPercent,
	} {
		v, ok := in.GetFields()[key]
		if !ok {
			continue
		}
		if _, isNum := v.GetKind().(*structpb.Value_NumberValue); !isNum {
			return nil, status.Errorf(codes.InvalidArgument, "invalid %s", key)
		}
		f := v.GetNumberValue()
		*dst = &f
	}
	p, err := s.h.Update(u)
	if err != nil {
		return nil, toStatus(err)
	}
	return paramsStruct(p)
}

func (s *GRPCService) GetParams(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return paramsStruct(s.h.Params())
}

func (s *GRPCService) OriginalOdds(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f := in.GetFields()
	name := f["name"].GetStringValue()
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "missing field name")
	}
	var mods [2]bool
	for i, key := range []string{"shiny", "mythic"} {
		v, ok := f[key]
		if !ok {
			continue
		}
		if _, isBool := v.GetKind().(*structpb.Value_BoolValue); !isBool {
			return nil, status.Errorf(codes.InvalidArgument, "invalid %s", key)
		}
		mods[i] = v.GetBoolValue()
	}
	label, odds, err := s.h.OriginalOdds(name, mods[0], mods[1])
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := structpb.NewStruct(map[string]any{"label": label, "original_odds": odds})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func paramsStruct(p hatch.Params) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(map[string]any{
		"luck_percent":  p.LuckPercent(),
		"shiny_chance":  p.ShinyChance(),
		"mythic_chance": p.MythicChance(),
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, hatch.ErrInvalidEggCount),
		errors.Is(err, hatch.ErrInvalidLuck),
		errors.Is(err, hatch.ErrInvalidPercent),
		errors.Is(err, hatch.ErrInvalidTarget):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, hatch.ErrZeroWeight), errors.Is(err, hatch.ErrEmptyTable):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
