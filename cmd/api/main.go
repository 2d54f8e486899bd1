package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/homa/internal/app"
	"github.com/MrJamesThe3rd/homa/internal/config"
	homaHttp "github.com/MrJamesThe3rd/homa/internal/http"
	assistantHandler "github.com/MrJamesThe3rd/homa/internal/http/assistant"
	dashboardHandler "github.com/MrJamesThe3rd/homa/internal/http/dashboard"
	importHandler "github.com/MrJamesThe3rd/homa/internal/http/importdata"
	invoiceHandler "github.com/MrJamesThe3rd/homa/internal/http/invoice"
	maintenanceHandler "github.com/MrJamesThe3rd/homa/internal/http/maintenance"
	tenantHandler "github.com/MrJamesThe3rd/homa/internal/http/tenant"
	unitHandler "github.com/MrJamesThe3rd/homa/internal/http/unit"
	"github.com/MrJamesThe3rd/homa/internal/reminder"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if cfg.Reminder.Enabled {
		scheduler, err := reminder.NewScheduler(cfg.Reminder.Schedule, a.Buildings, cfg.App.Region)
		if err != nil {
			slog.Error("failed to schedule reminders", "error", err)
			os.Exit(1)
		}

		scheduler.Start()
		defer scheduler.Stop()
	}

	var handlers = homaHttp.Handlers{
		Dashboard:   dashboardHandler.NewHandler(a.Buildings),
		Units:       unitHandler.NewHandler(a.Buildings),
		Tenants:     tenantHandler.NewHandler(a.Buildings, cfg.App.Region),
		Invoices:    invoiceHandler.NewHandler(a.Buildings, a.Export),
		Maintenance: maintenanceHandler.NewHandler(a.Buildings, a.Export),
		Assistant:   assistantHandler.NewHandler(a.AI, a.Buildings),
		Import:      importHandler.NewHandler(a.Importer),
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      homaHttp.New(handlers, cfg.CORS.AllowedOrigins),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout + cfg.Gemini.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	slog.Info("starting server", "port", server.Addr, "storage", cfg.Storage.Backend)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
