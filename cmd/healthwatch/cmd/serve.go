package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/healthwatch/api/openapi"
	"github.com/donaldgifford/healthwatch/internal/api/handlers"
	"github.com/donaldgifford/healthwatch/internal/api/middleware"
	"github.com/donaldgifford/healthwatch/internal/engine"
	"github.com/donaldgifford/healthwatch/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	a, err := newApp(connectCtx)
	cancel()
	if err != nil {
		return err
	}
	defer a.close()

	cfg, log := a.cfg, a.log

	if err := a.events.SeedAlertRules(ctx); err != nil {
		log.Warn("seeding alert rules failed", "error", err)
	}

	mon := cfg.Monitoring
	sched, err := engine.NewScheduler(a.evaluator, a.events, a.events, logger.Component(log, "scheduler"),
		engine.WithCheckInterval(mon.CheckInterval),
		engine.WithCleanupInterval(mon.CleanupInterval),
		engine.WithRetentionDays(mon.RetentionDays),
		engine.WithRunOnStart(mon.StartEnabled()),
	)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	admin := engine.NewAdmin(a.evaluator, a.events, sched, a.notifier, logger.Component(log, "admin"),
		engine.WithAdminRetentionDays(mon.RetentionDays),
	)

	e := newServer(a, admin)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if err := sched.Start(ctx); err != nil {
		log.Error("starting scheduler", "error", err)
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Error("server error", "error", err)
	}

	log.Info("shutting down server")

	// Let an in-flight pass finish before the store closes.
	<-sched.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// newServer builds the echo server with the probe, metrics and API routes.
func newServer(a *app, admin *engine.Admin) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = a.cfg.Server.ReadTimeout
	e.Server.WriteTimeout = a.cfg.Server.WriteTimeout

	httpLog := logger.Component(a.log, "http")
	e.Use(middleware.RequestLog(httpLog))
	e.Use(middleware.Recovery(httpLog))
	e.Use(middleware.Metrics())
	e.Use(middleware.AdminAuth(a.cfg.Server.AdminTokenSecret))

	if a.cfg.Server.AdminTokenSecret == "" {
		a.log.Warn("admin_token_secret is not set; admin identity is taken from X-Admin-Email")
	}

	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(a.store))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	openapi.RegisterRoutes(e)
	api := humaecho.New(e, openapi.Config(Version))
	handlers.RegisterEventRoutes(api, handlers.NewEventsHandler(a.events, admin))
	handlers.RegisterMonitoringRoutes(api, handlers.NewMonitoringHandler(admin))
	handlers.RegisterRuleRoutes(api, handlers.NewRulesHandler(a.events))

	return e
}
