// Package app contains the application setup for the inventory service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/inventory/internal/config"
	"github.com/abgdnv/inventory/internal/platform/server"
	grpcImpl "github.com/abgdnv/inventory/internal/product/grpc"
	"github.com/abgdnv/inventory/internal/product/handler"
	"github.com/abgdnv/inventory/internal/product/service"
	"github.com/abgdnv/inventory/internal/product/store"
	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

const ServiceName = "inventory"

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
}

// SetupDependencies builds the in-memory store and the service on top of it.
// The store starts with the sample catalog when seed is true, empty otherwise.
func SetupDependencies(seed bool, logger *slog.Logger) *Dependencies {
	var initial []store.Product
	if seed {
		initial = store.SampleCatalog()
	}
	pService := service.NewService(store.NewInMemoryStore(initial...))

	return &Dependencies{
		ProductService: pService,
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the router and routes for the inventory service.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the inventory service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := handler.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the inventory service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, ServiceName, mux)
}

// SetupGrpcServer initializes the gRPC server with the product service and the standard health service.
// The returned health server starts in SERVING state.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) (*grpc.Server, *health.Server) {
	hs := health.NewServer()
	// Service registration function for gRPC server
	productRegisterFunc := func(s *grpc.Server) {
		grpcImpl.Register(s, grpcImpl.NewServer(deps.ProductService))
	}
	// create a new gRPC server with reflection if enabled
	return server.NewGRPCServer(reflectionEnabled, productRegisterFunc, server.HealthRegistration(hs)), hs
}
