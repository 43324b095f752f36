// Package grpc exposes the product catalog over gRPC.
// Messages are protobuf well-known types so no generated stubs are needed.
package grpc

import (
	"context"
	"errors"
	"log/slog"

	perrors "github.com/abgdnv/inventory/internal/product/errors"
	"github.com/abgdnv/inventory/internal/product/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName         = "inventory.v1.ProductService"
	GetProductMethod    = "/" + ServiceName + "/GetProduct"
	ListProductsMethod  = "/" + ServiceName + "/ListProducts"
	DeleteProductMethod = "/" + ServiceName + "/DeleteProduct"
)

// ProductService defines the subset of the service used over gRPC.
type ProductService interface {
	FindByID(ctx context.Context, id int) (*service.ProductDto, error)
	FindAll(ctx context.Context, category, name string) ([]service.ProductDto, error)
	DeleteByID(ctx context.Context, id int) error
}

// ProductServer is the server API for the product gRPC service.
type ProductServer interface {
	GetProduct(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	ListProducts(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	DeleteProduct(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
}

type Server struct {
	service ProductService
}

func NewServer(service ProductService) *Server {
	return &Server{service: service}
}

// Register adds the product service to s.
func Register(s *grpc.Server, srv ProductServer) {
	s.RegisterService(&productServiceDesc, srv)
}

func (s *Server) GetProduct(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	id := int(req.GetValue())
	logger := slog.With(slog.Int("product_id", id))
	product, err := s.service.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			return nil, status.Errorf(codes.NotFound, "product with id %d not found", id)
		}
		logger.ErrorContext(ctx, "service.FindByID failed", slog.Any("error", err))
		return nil, status.Errorf(codes.Internal, "internal server error")
	}
	return toStruct(product)
}

func (s *Server) ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	category, err := stringField(req, "category")
	if err != nil {
		return nil, err
	}
	name, err := stringField(req, "name")
	if err != nil {
		return nil, err
	}

	products, err := s.service.FindAll(ctx, category, name)
	if err != nil {
		slog.ErrorContext(ctx, "service.FindAll failed", slog.Any("error", err))
		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(products))}
	for i := range products {
		st, err := toStruct(&products[i])
		if err != nil {
			return nil, err
		}
		list.Values = append(list.Values, structpb.NewStructValue(st))
	}
	return list, nil
}

func (s *Server) DeleteProduct(ctx context.Context, req *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	id := int(req.GetValue())
	if err := s.service.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			return nil, status.Errorf(codes.NotFound, "product with id %d not found", id)
		}
		slog.ErrorContext(ctx, "service.DeleteByID failed", slog.Int("product_id", id), slog.Any("error", err))
		return nil, status.Errorf(codes.Internal, "internal server error")
	}
	return &emptypb.Empty{}, nil
}

func toStruct(p *service.ProductDto) (*structpb.Struct, error) {
	st, err := structpb.NewStruct(map[string]any{
		"id":       p.ID,
		"name":     p.Name,
		"price":    p.Price,
		"category": p.Category,
		"stock":    p.Stock,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode product: %v", err)
	}
	return st, nil
}

// stringField returns the optional string field key of req.
func stringField(req *structpb.Struct, key string) (string, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return "", nil
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s must be a string", key)
	}
	return sv.StringValue, nil
}

var productServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProductServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetProduct", Handler: getProductHandler},
		{MethodName: "ListProducts", Handler: listProductsHandler},
		{MethodName: "DeleteProduct", Handler: deleteProductHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func getProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProductServer).GetProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetProductMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProductServer).GetProduct(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func listProductsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProductServer).ListProducts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListProductsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProductServer).ListProducts(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func deleteProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProductServer).DeleteProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DeleteProductMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProductServer).DeleteProduct(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}
