package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"goalboom/internal/dataset"
	"goalboom/internal/events"
	"goalboom/internal/heroes"
	"goalboom/internal/logging"
	"goalboom/internal/onboarding"
	"goalboom/internal/session"
	"goalboom/internal/slides"
	"goalboom/pkg/database"
	"goalboom/pkg/utils"
)

func main() {
	if err := run(); err != nil {
		slog.Error("api server failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := utils.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	// Bundled data must be complete before anything is served.
	dataFS := os.DirFS(cfg.DataDir)
	regions, err := dataset.LoadRegions(dataFS)
	if err != nil {
		return fmt.Errorf("load regions: %w", err)
	}
	jobs, err := dataset.LoadJobs(dataFS, logger)
	if err != nil {
		return fmt.Errorf("load jobs: %w", err)
	}
	deck, err := slides.LoadDeck(dataFS)
	if err != nil {
		return fmt.Errorf("load slides: %w", err)
	}
	catalog := heroes.NewCatalog(heroes.NewAssetResolver(os.DirFS(cfg.AssetDir)), logger)
	if err := catalog.LoadFS(dataFS); err != nil {
		return fmt.Errorf("load heroes: %w", err)
	}

	store, sqliteStore, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	hub := events.NewHub(logger)
	defer hub.Close()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), logging.GinMiddleware(logger))
	// Optional: avoid “trusted all proxies” warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "heroes": catalog.Len(), "slides": len(deck)})
	})
	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		stats := hub.Stats()
		if err := store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"store_error": err.Error(),
				"ws_clients":  stats.WSClients,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"store":      cfg.SessionStore,
			"ws_clients": stats.WSClients,
		})
	})
	router.GET("/ws", events.WSHandler(hub))

	heroes.NewHandler(catalog, regions, jobs).RegisterRoutes(router.Group(""))

	svc := &onboarding.Service{
		Store:   store,
		Deck:    deck,
		Catalog: catalog,
		Regions: regions,
		Events:  hub,
		Logger:  logger,
	}
	tokens := onboarding.TokenService{
		Secret:   []byte(cfg.Token.Secret),
		Issuer:   cfg.Token.Issuer,
		Duration: cfg.Token.Duration,
	}
	onboarding.NewHandler(svc, tokens).RegisterRoutes(router.Group("/onboarding"))

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus("goalboom.Onboarding", healthpb.HealthCheckResponse_SERVING)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP API server listening", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
		logger.Info("gRPC health server listening", "addr", cfg.GRPCAddr)
		if err := grpcSrv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	if sqliteStore != nil {
		g.Go(func() error {
			purgeSessions(gctx, sqliteStore, cfg.SessionTTL, logger)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers")
		healthSrv.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown error", "err", err)
		}
		grpcSrv.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("servers stopped")
	return nil
}

// openStore returns the configured session store. The sqlite store is
// also returned on its own so the caller can run expiry for it; valkey
// expires keys by itself.
func openStore(cfg utils.Config) (session.Store, *session.SQLiteStore, func(), error) {
	switch cfg.SessionStore {
	case "valkey":
		vs, err := session.NewValkeyStore(cfg.ValkeyURL, cfg.SessionTTL)
		if err != nil {
			return nil, nil, nil, err
		}
		return vs, nil, func() { _ = vs.Close() }, nil
	default:
		db, err := database.Open(database.Config{Path: cfg.DBPath})
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, nil, fmt.Errorf("db migrate failed: %w", err)
		}
		ss := session.NewSQLiteStore(db)
		return ss, ss, closeDB(db), nil
	}
}

func closeDB(db *sql.DB) func() {
	return func() { _ = db.Close() }
}

func purgeSessions(ctx context.Context, store *session.SQLiteStore, ttl time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.PurgeBefore(ctx, time.Now().Add(-ttl))
			if err != nil {
				logger.Warn("purge sessions failed", "err", err)
				continue
			}
			if n > 0 {
				logger.Info("purged idle sessions", "count", n)
			}
		}
	}
}
