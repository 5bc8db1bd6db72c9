package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/deltagreen-api/internal/config"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
	"github.com/KirkDiggler/deltagreen-api/internal/handlers/api/v1alpha1"
	"github.com/KirkDiggler/deltagreen-api/internal/observability"
	redisclient "github.com/KirkDiggler/deltagreen-api/internal/redis"
	"github.com/KirkDiggler/deltagreen-api/internal/repositories/agent"
	rolllog "github.com/KirkDiggler/deltagreen-api/internal/repositories/roll_log"
)

const (
	redisPingTimeout = 5 * time.Second
	shutdownTimeout  = 30 * time.Second
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the CheckService gRPC server backed by redis.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().Int("port", 50051, "gRPC server port")
}

func runServer(cmd *cobra.Command, _ []string) error {
	v := config.New()
	if err := v.BindPFlag("server.grpc_port", cmd.Flags().Lookup("port")); err != nil {
		return errors.Wrap(err, "failed to bind port flag")
	}
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	client, err := redisclient.New(cfg.Redis.Endpoints(), cfg.Redis.Options())
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := redisclient.Ping(ctx, client, redisPingTimeout); err != nil {
		return err
	}

	agentRepo, err := agent.NewRedis(&agent.RedisConfig{
		Client: client,
		Logger: logger.Named("agents"),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create agent repository")
	}
	rollLogRepo, err := rolllog.NewRedisRepository(&rolllog.Config{
		Client: client,
		TTL:    cfg.Rules.RollLogTTL,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create roll log repository")
	}

	s := &stack{cfg: cfg, logger: logger, agentRepo: agentRepo, rollLogRepo: rollLogRepo}
	localizer, err := s.localizer()
	if err != nil {
		return err
	}
	checkService, err := s.orchestrator(localizer)
	if err != nil {
		return errors.Wrap(err, "failed to create check orchestrator")
	}

	checkHandler, err := v1alpha1.NewCheckHandler(&v1alpha1.CheckHandlerConfig{
		CheckService: checkService,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create check handler")
	}

	lis, err := net.Listen("tcp", cfg.Server.Addr())
	if err != nil {
		return errors.Wrap(err, "failed to listen")
	}

	grpcLogger := observability.GRPCLogger(logger.Named("grpc"))
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpcLogger),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpcLogger),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	v1alpha1.RegisterCheckServiceServer(srv, checkHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.CheckServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("gRPC server starting",
			zap.Int("port", cfg.Server.GRPCPort),
			zap.String("locale", localizer.Locale()))
		if err := srv.Serve(lis); err != nil {
			errChan <- errors.Wrap(err, "failed to serve")
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down gRPC server")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			logger.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			logger.Info("server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}
