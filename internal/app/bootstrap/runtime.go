package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	cacheadapter "github.com/hamelyn/checkout-gateway/internal/adapters/cache"
	"github.com/hamelyn/checkout-gateway/internal/adapters/csvfeed"
	httpadapter "github.com/hamelyn/checkout-gateway/internal/adapters/http"
	"github.com/hamelyn/checkout-gateway/internal/adapters/stripepay"
	"github.com/hamelyn/checkout-gateway/internal/application"
	"github.com/hamelyn/checkout-gateway/internal/domain"
	"github.com/hamelyn/checkout-gateway/internal/ports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	grpcServer *grpc.Server
	grpcLis    net.Listener
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("bootstrapping checkout gateway", "http_port", cfg.HTTPPort, "grpc_port", cfg.GRPCPort)

	// The catalog is loaded exactly once, before any listener starts;
	// afterwards it is immutable shared state.
	source := csvfeed.NewLoader(cfg.CatalogPath, cfg.DefaultCurrency)
	catalog, err := loadCatalog(ctx, source, cfg.CatalogStrictLoad, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded", "path", cfg.CatalogPath, "products", catalog.Size())

	var dedup ports.EventDedupStore
	cleanup := func(context.Context) {}
	if cfg.RedisURL != "" {
		redisClient, err := cacheadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		dedup = cacheadapter.NewRedisEventDedupStore(redisClient)
		cleanup = func(context.Context) { _ = redisClient.Close() }
	} else {
		dedup = cacheadapter.NewMemoryEventDedupStore()
	}

	svc := application.NewService(application.Dependencies{
		Config: application.Config{
			DefaultProductName: cfg.DefaultProductName,
			DefaultImageURL:    cfg.DefaultImageURL,
			DefaultCancelURL:   cfg.DefaultCancelURL,
			SuccessURL:         cfg.SuccessURL,
			ListDefaultLimit:   cfg.ListDefaultLimit,
			ListMaxLimit:       cfg.ListMaxLimit,
			EventDedupTTL:      cfg.EventDedupTTL,
		},
		Catalog:  catalog,
		Provider: stripepay.NewProvider(cfg.StripeSecretKey),
		Verifier: stripepay.NewVerifier(cfg.StripeWebhookSecret),
		Dedup:    dedup,
		Logger:   logger,
	})

	httpadapter.SetLogger(logger)
	router := httpadapter.NewRouter(httpadapter.NewHandler(svc), cfg.CORSAllowedOrigins)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		cleanup(ctx)
		return nil, fmt.Errorf("listen gRPC: %w", err)
	}

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		grpcServer: grpcServer,
		grpcLis:    lis,
		cleanupFn:  cleanup,
	}, nil
}

// loadCatalog applies the strict-load policy: strict aborts startup so
// a checkout API never silently serves zero products, lenient degrades
// to an empty catalog and leaves the failure in the logs.
func loadCatalog(ctx context.Context, source ports.CatalogSource, strict bool, logger *slog.Logger) (*domain.Catalog, error) {
	records, err := source.Load(ctx)
	if err != nil {
		if strict {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		logger.Error("catalog load failed, serving empty catalog", "error", err)
		records = nil
	}
	return domain.NewCatalog(records), nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		r.logger.Info("http server started", "addr", r.httpServer.Addr)
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		r.logger.Info("grpc health server started", "addr", r.grpcLis.Addr().String())
		if err := r.grpcServer.Serve(r.grpcLis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("shutdown signal received")
	case err := <-errCh:
		r.logger.Error("server failure", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.cleanupFn(shutdownCtx)
	return nil
}
