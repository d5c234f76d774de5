package grpc

import (
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/killbill/killbill-moneris-plugin/pkg/auth"
	"github.com/killbill/killbill-moneris-plugin/pkg/tlsutil"
)

const healthServiceName = "killbill-moneris-plugin"

var publicMethods = []string{
	"/grpc.health.v1.Health/Check",
	"/grpc.health.v1.Health/Watch",
}

// ServerOptions controls transport security, reflection and rate limiting.
type ServerOptions struct {
	TLSCertFile string
	TLSKeyFile  string
	Reflection  bool
	// RateLimitRPS caps calls per second across all callers; zero disables it.
	RateLimitRPS int
}

// Server wraps a gRPC server with the plugin handler registered.
type Server struct {
	gs      *grpc.Server
	health  *health.Server
	handler *PluginHandler
	logger  *slog.Logger
}

// NewServer creates and configures the gRPC server. Unlike a missing
// certificate pair, a pair that fails to load is an error.
func NewServer(handler *PluginHandler, logger *slog.Logger, jwtService *auth.JWTService, opts ServerOptions) (*Server, error) {
	interceptors := []grpc.UnaryServerInterceptor{
		UnaryLoggingInterceptor(logger),
		auth.UnaryAuthInterceptor(jwtService, publicMethods),
		auth.RequireRole(publicMethods, readRoles...),
	}
	if opts.RateLimitRPS > 0 {
		interceptors = append(interceptors, UnaryRateLimitInterceptor(NewRateLimiter(opts.RateLimitRPS), publicMethods))
	}
	serverOpts := []grpc.ServerOption{grpc.ChainUnaryInterceptor(interceptors...)}

	if opts.TLSCertFile != "" && opts.TLSKeyFile != "" {
		creds, err := tlsutil.ServerTLSConfig(opts.TLSCertFile, opts.TLSKeyFile)
		if err != nil {
			return nil, fmt.Errorf("grpc tls: %w", err)
		}
		serverOpts = append(serverOpts, grpc.Creds(creds))
		logger.Info("gRPC TLS enabled", "cert", opts.TLSCertFile)
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	gs := grpc.NewServer(serverOpts...)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(gs, healthSrv)
	healthSrv.SetServingStatus(healthServiceName, healthpb.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

	if opts.Reflection {
		reflection.Register(gs)
	}

	RegisterPaymentPluginServiceServer(gs, handler)

	return &Server{
		gs:      gs,
		health:  healthSrv,
		handler: handler,
		logger:  logger,
	}, nil
}

// Serve starts the gRPC server on the specified address.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.ServeListener(lis)
}

// ServeListener serves on an existing listener.
func (s *Server) ServeListener(lis net.Listener) error {
	s.logger.Info("gRPC server listening", "addr", lis.Addr().String())
	return s.gs.Serve(lis)
}

// GracefulStop marks the service as not serving and stops the server gracefully.
func (s *Server) GracefulStop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.gs.GracefulStop()
}
