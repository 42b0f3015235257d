package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/handlers"
	"github.com/SscSPs/survey_workspace_app/internal/middleware"
	"github.com/SscSPs/survey_workspace_app/internal/platform/analytics"
	"github.com/SscSPs/survey_workspace_app/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var withWorker bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), withWorker)
		},
	}
	cmd.Flags().BoolVar(&withWorker, "with-worker", false, "also consume side-effect events from the Redis stream")
	return cmd
}

func runServe(parent context.Context, withWorker bool) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	engine, err := newEngine(a)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		a.logger.Info("Server starting", slog.String("port", a.cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})
	if withWorker {
		consumer, err := a.newConsumer(ctx)
		if err != nil {
			return err
		}
		group.Go(func() error { return consumer.Run(gctx) })
	}

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("Server stopped with error", slog.String("error", err.Error()))
		return err
	}
	a.logger.Info("Server stopped")
	return nil
}

func newEngine(a *app) (*gin.Engine, error) {
	if a.cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if a.cfg.OTelEnabled() {
		r.Use(otelgin.Middleware(a.cfg.OTelServiceName))
	}
	r.Use(middleware.StructuredLoggingMiddleware(a.logger), gin.Recovery(), cors.New(corsConfig(a.cfg)))

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	apiLimiter, err := middleware.NewLimiter(a.cfg.RateLimit, "api", a.redis)
	if err != nil {
		return nil, err
	}
	authLimiter, err := middleware.NewLimiter(a.cfg.AuthRateLimit, "auth", a.redis)
	if err != nil {
		return nil, err
	}

	handlers.RegisterRoutes(r, a.cfg, a.services, handlers.RouteOptions{
		APILimiter:  apiLimiter,
		AuthLimiter: authLimiter,
		Analytics:   analytics.NewClient(a.cfg.PosthogAPIKey, "", a.logger),
	})
	return r, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	c.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	if len(cfg.CORSAllowedOrigins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = cfg.CORSAllowedOrigins
	c.AllowCredentials = true
	return c
}
