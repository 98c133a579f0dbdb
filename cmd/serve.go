package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oscar503sv/gestion-de-proyectos/internal/auth"
	config "github.com/oscar503sv/gestion-de-proyectos/internal/configs"
	httpapi "github.com/oscar503sv/gestion-de-proyectos/internal/http"
	middleware "github.com/oscar503sv/gestion-de-proyectos/internal/http/middlewares"
	"github.com/oscar503sv/gestion-de-proyectos/internal/seed"
	"github.com/oscar503sv/gestion-de-proyectos/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Seeds the store and serves the project management API until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, err := config.NewStore(cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		hasher := auth.NewPasswordHasher(cfg.PasswordHashCost)
		data, err := seed.Load(cfg.SeedFile)
		if err != nil {
			return err
		}
		if err := seed.Apply(ctx, store, hasher, data); err != nil {
			return err
		}
		logger.Info("store seeded",
			zap.Int("users", len(data.Users)),
			zap.Int("projects", len(data.Projects)),
			zap.Int("tasks", len(data.Tasks)),
		)

		var limiter middleware.Limiter = middleware.NewMemoryLimiter(cfg.RateLimit, time.Minute)
		if cfg.RateLimitBackend == config.LimiterRedis {
			redisClient, err := config.NewRedisClient(cfg.RedisAddr())
			if err != nil {
				return err
			}
			defer redisClient.Close()
			limiter = middleware.NewRedisLimiter(redisClient, cfg.RedisKeyPrefix, cfg.RateLimit, time.Minute)
		}

		handler := httpapi.NewHandler(
			services.NewUserService(store, hasher, logger),
			services.NewProjectService(store, logger, nil),
			services.NewTaskService(store, logger, nil),
			services.NewDashboardService(store, logger, nil),
			services.NewAuthService(store, hasher, logger),
		)

		e := echo.New()
		httpapi.Register(e, handler, logger, httpapi.Options{
			Limiter:        limiter,
			AllowedOrigins: cfg.AllowedOrigins(),
		})

		go func() {
			logger.Info("HTTP server listening", zap.String("addr", cfg.AppURL()))
			if err := e.Start(cfg.AppURL()); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server stopped", zap.Error(err))
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}

		logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
