package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/hhgcare/hhg/internal/infrastructure/config"
	"github.com/hhgcare/hhg/internal/infrastructure/database"
	"github.com/hhgcare/hhg/internal/infrastructure/migration"
	"github.com/hhgcare/hhg/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/hhgcare/hhg/internal/interfaces/http"
	"github.com/hhgcare/hhg/internal/shared/goroutine"
	"github.com/hhgcare/hhg/internal/shared/logger"
)

var (
	opts        bootstrap.Options
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the HHG HTTP server with the consent, booking and admin APIs.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&opts.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run gorm AutoMigrate on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.LoadWithDatabase(opts)
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("starting server",
		"mode", cfg.Server.Mode,
		"database", cfg.Database.Driver,
		"ratelimit_store", cfg.RateLimit.Store,
		"auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	db := database.Get()
	if err := handleMigrations(db, cfg, log); err != nil {
		return err
	}

	redisClient, err := newRedisClient(cfg, log)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	container, err := httpRouter.NewContainer(db, redisClient, cfg, log)
	if err != nil {
		return err
	}
	router, err := httpRouter.NewRouter(container)
	if err != nil {
		return fmt.Errorf("failed to create router: %w", err)
	}
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	goroutine.SafeGo(log, "http-server", func() {
		log.Infow("server listening", "address", cfg.Server.GetAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Info("server exited gracefully")
	return nil
}

func handleMigrations(db *gorm.DB, cfg *config.Config, log logger.Interface) error {
	if autoMigrate {
		if cfg.Server.Mode == "release" {
			log.Warn("auto-migration is enabled in release mode - this is not recommended!")
		}

		manager, err := migration.NewManager(cfg.Database.Driver, true)
		if err != nil {
			return err
		}
		if err := manager.Migrate(db); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		return nil
	}

	strategy, err := migration.NewGooseStrategy(cfg.Database.Driver)
	if err != nil {
		return err
	}
	version, err := strategy.GetVersion(db)
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	log.Infow("current migration version", "version", version)
	return nil
}

func newRedisClient(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	if cfg.RateLimit.Store != "redis" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.GetAddr(), err)
	}

	log.Infow("redis connection established", "addr", cfg.Redis.GetAddr(), "db", cfg.Redis.DB)
	return client, nil
}
