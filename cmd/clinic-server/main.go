package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ZhangDT-sky/PrivateClinic/internal/config"
	"github.com/ZhangDT-sky/PrivateClinic/internal/domain/authn"
	"github.com/ZhangDT-sky/PrivateClinic/internal/domain/drug"
	"github.com/ZhangDT-sky/PrivateClinic/internal/domain/medicalcase"
	"github.com/ZhangDT-sky/PrivateClinic/internal/domain/patient"
	"github.com/ZhangDT-sky/PrivateClinic/internal/domain/prescription"
	"github.com/ZhangDT-sky/PrivateClinic/internal/domain/prescriptionitem"
	"github.com/ZhangDT-sky/PrivateClinic/internal/domain/user"
	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/auth"
	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/cache"
	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/db"
	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/metrics"
	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/middleware"
	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Private clinic API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	})

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Cache store: Redis when configured, in-process otherwise.
	var store cache.Store
	if cfg.RedisURL != "" {
		redisStore, err := cache.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisStore.Close()
		store = redisStore
		logger.Info().Msg("connected to redis")
	} else {
		memStore := cache.NewMemoryStore()
		cleanupCtx, cancelCleanup := context.WithCancel(ctx)
		defer cancelCleanup()
		memStore.StartCleanup(cleanupCtx, 10*time.Minute)
		store = memStore
		logger.Info().Msg("using in-process cache store")
	}
	accessor := cache.NewAccessor(store, time.Duration(cfg.CacheTTLHours)*time.Hour, logger)

	// Token service
	tokens := token.NewService(cfg.JWTSecretPrimary, cfg.JWTSecretSecondary, cfg.JWTExpirationSeconds)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Everything except login, health and metrics requires a valid token.
	e.Use(auth.Middleware(tokens, func(c echo.Context) bool {
		switch c.Path() {
		case "/auth/login", "/health", "/metrics":
			return true
		}
		return false
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Prometheus metrics
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// Domain wiring
	userRepo := user.NewPgRepository(pool)
	userSvc := user.NewService(userRepo, accessor, logger)

	authn.NewHandler(authn.NewService(userRepo, tokens, logger)).RegisterRoutes(e)

	api := e.Group("/api")

	user.NewHandler(userSvc).RegisterRoutes(api)
	drug.NewHandler(drug.NewService(drug.NewPgRepository(pool), accessor, logger)).RegisterRoutes(api)
	patient.NewHandler(patient.NewService(patient.NewPgRepository(pool), logger)).RegisterRoutes(api)
	medicalcase.NewHandler(medicalcase.NewService(medicalcase.NewPgRepository(pool), logger)).RegisterRoutes(api)
	prescription.NewHandler(prescription.NewService(prescription.NewPgRepository(pool), logger)).RegisterRoutes(api)
	prescriptionitem.NewHandler(prescriptionitem.NewService(prescriptionitem.NewPgRepository(pool), logger)).RegisterRoutes(api)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
