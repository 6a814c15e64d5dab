// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"farm-advisor/internal/app"
	"farm-advisor/internal/common/camunda"
	"farm-advisor/internal/common/config"
	apperrors "farm-advisor/internal/common/errors"
	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/common/observability"
	"farm-advisor/pkg/registry"

	vfi "farm-advisor/internal/workers/farmer/validate-farmer-input"

	as "farm-advisor/internal/workers/signals/analyze-soil"
	fm "farm-advisor/internal/workers/signals/fetch-market"
	fw "farm-advisor/internal/workers/signals/fetch-weather"
	sp "farm-advisor/internal/workers/signals/suggest-practices"

	cp "farm-advisor/internal/workers/planning/compose-plan"

	spn "farm-advisor/internal/workers/communication/send-plan-notification"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewStructured("info", "console").Error("config load failed", map[string]interface{}{"error": err})
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	log.Info("starting worker manager", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	if err := cfg.ValidateForWorkers(); err != nil {
		fatal(log, "config invalid for workers", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg, err := registry.LoadRegistry(cfg.RegistryPath)
	if err != nil {
		fatal(log, "activity registry load failed", err)
	}
	if err := reg.Validate(); err != nil {
		fatal(log, "activity registry invalid", err)
	}

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()

	// --- Zeebe ---
	zeebe, err := camunda.Connect(ctx, camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	}, log)
	if err != nil {
		fatal(log, "zeebe connection failed", err)
	}
	log.Info("zeebe client connected", map[string]interface{}{"gateway": cfg.Camunda.BrokerAddress})

	// --- Signal cache and tip store ---
	rdb := app.OpenCache(ctx, cfg, log)
	if rdb != nil {
		defer rdb.Close()
	}
	tips, pg := app.OpenTipStore(ctx, cfg, log)
	if pg != nil {
		defer pg.Close()
	}

	signals := app.NewSignalCache(cfg, rdb, log)
	weatherClient := app.NewWeather(cfg, log)
	marketClient := app.NewMarket(cfg, log)
	plans := app.NewPlanner(cfg.Planner)

	manager := camunda.NewManager(zeebe, apperrors.NewErrorHandler(log), obs, log)

	// --- Farmer intake ---
	{
		c := vfi.LoadConfig()
		c.Timeout = workerTimeout(cfg, vfi.TaskType, c.Timeout)
		manager.Start(vfi.TaskType, config.GetWorkerConfig(cfg, vfi.TaskType),
			vfi.NewHandler(c, reg.InputSchema(vfi.TaskType), log))
	}

	// --- Signals ---
	{
		c := fw.LoadConfig()
		c.Timeout = workerTimeout(cfg, fw.TaskType, c.Timeout)
		manager.Start(fw.TaskType, config.GetWorkerConfig(cfg, fw.TaskType),
			fw.NewHandler(c, weatherClient, signals, log))
	}
	{
		c := as.LoadConfig()
		c.Timeout = workerTimeout(cfg, as.TaskType, c.Timeout)
		manager.Start(as.TaskType, config.GetWorkerConfig(cfg, as.TaskType), as.NewHandler(c, log))
	}
	{
		c := fm.LoadConfig()
		c.Timeout = workerTimeout(cfg, fm.TaskType, c.Timeout)
		manager.Start(fm.TaskType, config.GetWorkerConfig(cfg, fm.TaskType),
			fm.NewHandler(c, marketClient, signals, log))
	}
	{
		c := sp.LoadConfig()
		c.Timeout = workerTimeout(cfg, sp.TaskType, c.Timeout)
		manager.Start(sp.TaskType, config.GetWorkerConfig(cfg, sp.TaskType), sp.NewHandler(c, tips, log))
	}

	// --- Planning ---
	{
		c := cp.LoadConfig()
		c.Timeout = workerTimeout(cfg, cp.TaskType, c.Timeout)
		manager.Start(cp.TaskType, config.GetWorkerConfig(cfg, cp.TaskType), cp.NewHandler(c, plans, obs, log))
	}

	// --- Communication ---
	if config.IsWorkerEnabled(cfg, spn.TaskType) {
		c := spn.LoadConfig()
		c.Timeout = workerTimeout(cfg, spn.TaskType, c.Timeout)
		c.EmailEnabled = cfg.Notifications.Email.Enabled
		c.FromEmail = cfg.Notifications.Email.FromEmail
		c.SMSEnabled = cfg.Notifications.SMS.Enabled
		c.SenderID = cfg.Notifications.SMS.SenderID
		c.AWSRegion = cfg.Notifications.AWS.Region

		handler, err := spn.NewHandler(ctx, c, log)
		if err != nil {
			fatal(log, "failed to create send-plan-notification handler", err)
		}
		manager.Start(spn.TaskType, config.GetWorkerConfig(cfg, spn.TaskType), handler)
	}

	running := manager.Running()
	sort.Strings(running)
	log.Info("workers registered", map[string]interface{}{"count": len(running), "taskTypes": running})

	// --- Health & Metrics Server ---
	srv := &http.Server{
		Addr:              cfg.App.HTTPAddr,
		Handler:           newMux(zeebe, config.GetDuration(cfg.Camunda.RequestTimeout)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("health/metrics server listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("health/metrics server failed", map[string]interface{}{"error": err})
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	log.Info("shutdown signal received, stopping workers", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("health/metrics server shutdown failed", map[string]interface{}{"error": err})
	}
	if err := manager.Close(); err != nil {
		log.Error("error closing zeebe client", map[string]interface{}{"error": err})
	}

	log.Info("worker manager stopped", nil)
}

// newMux serves liveness, readiness against the gateway, and Prometheus.
func newMux(zeebe zbc.Client, readyTimeout time.Duration) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", "")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := camunda.HealthCheck(r.Context(), zeebe, readyTimeout); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready", err.Error())
			return
		}
		writeStatus(w, http.StatusOK, "ready", "")
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, code int, status, detail string) {
	body := map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}
	if detail != "" {
		body["error"] = detail
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// workerTimeout caps the handler's own deadline at the job activation timeout
// so a job is never completed after the broker has handed it to someone else.
func workerTimeout(cfg *config.Config, taskType string, handlerDefault time.Duration) time.Duration {
	jobTimeout := config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	if jobTimeout > 0 && jobTimeout < handlerDefault {
		return jobTimeout
	}
	return handlerDefault
}

func fatal(log logger.Logger, msg string, err error) {
	log.Error(msg, map[string]interface{}{"error": err})
	os.Exit(1)
}
