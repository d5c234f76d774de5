package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/killbill/killbill-moneris-plugin/internal/application/usecase"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/service"
	"github.com/killbill/killbill-moneris-plugin/internal/infrastructure/config"
	"github.com/killbill/killbill-moneris-plugin/internal/infrastructure/gateway/moneris"
	"github.com/killbill/killbill-moneris-plugin/internal/infrastructure/messaging"
	infraPG "github.com/killbill/killbill-moneris-plugin/internal/infrastructure/postgres"
	grpcPresentation "github.com/killbill/killbill-moneris-plugin/internal/presentation/grpc"
	"github.com/killbill/killbill-moneris-plugin/internal/presentation/rest"
	"github.com/killbill/killbill-moneris-plugin/pkg/auth"
	kafkapkg "github.com/killbill/killbill-moneris-plugin/pkg/kafka"
	"github.com/killbill/killbill-moneris-plugin/pkg/observability"
	pgpkg "github.com/killbill/killbill-moneris-plugin/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration. A missing .env file is fine.
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.Telemetry.ServiceName,
		RedactKeys:  []string{"pan", "expdate", "cvd_value", "api_token", "password", "authorization"},
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting killbill-moneris-plugin",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"moneris_host", cfg.Moneris.Host,
	)

	// Initialize tracing.
	if cfg.Telemetry.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Endpoint:    cfg.Telemetry.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Warn("tracer shutdown", "error", err)
				}
			}()
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	// Initialize database.
	dbCfg := pgpkg.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	}
	if err := pgpkg.RunMigrations(dbCfg.DSN(), infraPG.Migrations, infraPG.MigrationsDir); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	pool, err := pgpkg.NewPool(ctx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Initialize Kafka producer.
	producer, err := kafkapkg.NewProducer(kafkapkg.Config{
		ClientID:         cfg.Telemetry.ServiceName,
		Brokers:          cfg.Kafka.Brokers,
		TLS:              cfg.Kafka.TLS,
		SASLEnabled:      cfg.Kafka.SASLEnabled,
		SASLMechanism:    cfg.Kafka.SASLMechanism,
		SASLUsername:     cfg.Kafka.SASLUsername,
		SASLPassword:     cfg.Kafka.SASLPassword,
		AutoCreateTopics: cfg.Kafka.AutoCreate,
	})
	if err != nil {
		logger.Error("failed to create kafka producer", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	gateway, err := moneris.NewClient(moneris.Config{
		Host:     cfg.Moneris.Host,
		StoreID:  cfg.Moneris.StoreID,
		APIToken: cfg.Moneris.APIToken,
		CAFile:   cfg.Moneris.CAFile,
		Timeout:  cfg.Moneris.Timeout,
	})
	if err != nil {
		logger.Error("failed to create gateway client", "error", err)
		os.Exit(1)
	}

	// Wire dependencies (DI via constructors).
	transactionRepo := infraPG.NewTransactionRepo(pool)
	paymentMethodRepo := infraPG.NewPaymentMethodRepo(pool)
	publisher := messaging.NewPublisher(producer)
	builder := service.NewRequestBuilder(service.NewChainResolver(transactionRepo))

	handler := grpcPresentation.NewPluginHandler(grpcPresentation.UseCases{
		ProcessTransaction:      usecase.NewProcessTransaction(transactionRepo, gateway, publisher, builder, logger),
		GetPaymentInfo:          usecase.NewGetPaymentInfo(transactionRepo, logger),
		SearchPayments:          usecase.NewSearchPayments(transactionRepo),
		AddPaymentMethod:        usecase.NewAddPaymentMethod(paymentMethodRepo, logger),
		DeletePaymentMethod:     usecase.NewDeletePaymentMethod(paymentMethodRepo, logger),
		GetPaymentMethodDetail:  usecase.NewGetPaymentMethodDetail(paymentMethodRepo),
		SetDefaultPaymentMethod: usecase.NewSetDefaultPaymentMethod(logger),
		GetPaymentMethods:       usecase.NewGetPaymentMethods(paymentMethodRepo),
		SearchPaymentMethods:    usecase.NewSearchPaymentMethods(paymentMethodRepo),
		ResetPaymentMethods:     usecase.NewResetPaymentMethods(logger),
		BuildFormDescriptor:     usecase.NewBuildFormDescriptor(),
		ProcessNotification:     usecase.NewProcessNotification(),
	}, logger)

	jwtSvc, err := newJWTService(cfg.JWT)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	grpcServer, err := grpcPresentation.NewServer(handler, logger, jwtSvc, grpcPresentation.ServerOptions{
		TLSCertFile:  cfg.TLS.CertFile,
		TLSKeyFile:   cfg.TLS.KeyFile,
		Reflection:   cfg.EnableReflection,
		RateLimitRPS: cfg.RateLimitRPS,
	})
	if err != nil {
		logger.Error("failed to create gRPC server", "error", err)
		os.Exit(1)
	}

	// HTTP server (health checks + metrics).
	mux := http.NewServeMux()
	rest.NewHealthHandler(pool, metricsHandler, logger).RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(fmt.Sprintf(":%d", cfg.GRPCPort)); err != nil {
			errCh <- fmt.Errorf("grpc: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http: %w", err)
		}
	}()

	// Wait for shutdown.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
	grpcServer.GracefulStop()
	logger.Info("killbill-moneris-plugin stopped")
}

// newJWTService prefers an inline public key, then a key file, then the
// shared secret.
func newJWTService(cfg config.JWTConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{Issuer: cfg.Issuer}

	switch {
	case cfg.PublicKey != "":
		jwtCfg.PublicKeyPEM = cfg.PublicKey
	case cfg.PublicKeyFile != "":
		keyData, err := auth.LoadKeyFromFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load JWT public key: %w", err)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtCfg.Secret = cfg.Secret
	}

	return auth.NewJWTService(jwtCfg)
}
