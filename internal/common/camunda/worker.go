// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"sync"
	"time"

	"farm-advisor/internal/common/config"
	apperrors "farm-advisor/internal/common/errors"
	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/common/metrics"
	"farm-advisor/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler completes the job itself and returns an error only when the job
// should be failed or thrown.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job) error
}

// JobErrorHandler turns a handler error into a fail or throw command.
type JobErrorHandler interface {
	HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error)
}

// Manager opens job workers against one Zeebe client and closes them together.
type Manager struct {
	client zbc.Client
	errs   JobErrorHandler
	obs    *observability.Observability
	logger logger.Logger

	mu      sync.Mutex
	workers map[string]worker.JobWorker
}

func NewManager(client zbc.Client, errs JobErrorHandler, obs *observability.Observability, log logger.Logger) *Manager {
	return &Manager{
		client:  client,
		errs:    errs,
		obs:     obs,
		logger:  log,
		workers: make(map[string]worker.JobWorker),
	}
}

// Start opens a worker for taskType unless it is disabled.
func (m *Manager) Start(taskType string, wcfg config.WorkerConfig, handler JobHandler) {
	if !wcfg.Enabled {
		m.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return
	}

	jw := m.client.NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, handler, m.errs, m.obs)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	m.mu.Lock()
	m.workers[taskType] = jw
	m.mu.Unlock()

	m.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
}

// Running lists the task types with an open worker.
func (m *Manager) Running() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.workers))
	for t := range m.workers {
		out = append(out, t)
	}
	return out
}

// Close stops every worker, waiting for in-flight jobs, then the client.
func (m *Manager) Close() error {
	m.mu.Lock()
	for taskType, jw := range m.workers {
		m.logger.Info("stopping worker", map[string]interface{}{"taskType": taskType})
		jw.Close()
		jw.AwaitClose()
	}
	m.workers = map[string]worker.JobWorker{}
	m.mu.Unlock()
	return m.client.Close()
}

// Instrument wraps a handler with job metrics and error routing.
func Instrument(taskType string, handler JobHandler, errs JobErrorHandler, obs *observability.Observability) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		defer metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()

		start := time.Now()
		err := handler.Handle(client, job)
		elapsed := time.Since(start)
		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())

		ctx := context.Background()
		status := "completed"
		if err != nil {
			status = "failed"
			stdErr := apperrors.Normalize(err)
			metrics.WorkerJobsFailed.WithLabelValues(taskType, string(stdErr.Code)).Inc()
			errs.HandleJobError(ctx, client, job, stdErr)
		} else {
			metrics.WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		}
		obs.RecordJobProcessed(ctx, taskType, status)
		obs.RecordJobDuration(ctx, taskType, elapsed, status)
	}
}
