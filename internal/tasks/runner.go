package tasks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"jobharvest/internal/collector/factory"
	"jobharvest/internal/config"
	"jobharvest/internal/exporter"
	"jobharvest/internal/logging"
	"jobharvest/pkg/models"
)

// Runner executes crawl tasks in the background and tracks their state in
// the store.
type Runner struct {
	cfg    *config.Config
	store  Store
	logger logging.Logger
}

func NewRunner(cfg *config.Config, store Store, logger logging.Logger) *Runner {
	return &Runner{cfg: cfg, store: store, logger: logger}
}

// Submit registers a pending task and starts the crawl in a goroutine. The
// returned task ID is immediately pollable.
func (r *Runner) Submit(ctx context.Context, source string, opts models.CollectOptions) (string, error) {
	taskID := uuid.New().String()
	now := time.Now().UTC()

	rec := Record{
		TaskID:    taskID,
		Source:    source,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.store.Save(ctx, rec); err != nil {
		return "", err
	}

	go r.run(rec, opts)
	return taskID, nil
}

func (r *Runner) run(rec Record, opts models.CollectOptions) {
	ctx := context.Background()

	rec.Status = StatusRunning
	rec.UpdatedAt = time.Now().UTC()
	if err := r.store.Save(ctx, rec); err != nil {
		r.logger.Error("Failed to update task record", map[string]interface{}{
			"task_id": rec.TaskID,
			"error":   err.Error(),
		})
	}

	coll, err := factory.New(rec.Source, r.cfg, r.logger)
	if err != nil {
		r.fail(ctx, rec, err)
		return
	}
	defer coll.Cleanup()

	rows, err := coll.Collect(ctx, opts)
	if err != nil {
		r.fail(ctx, rec, err)
		return
	}

	path, err := exporter.WriteCSV(r.cfg.Crawler.OutputDir, rec.Source, rows, time.Now().UTC())
	if err != nil {
		r.fail(ctx, rec, err)
		return
	}

	rec.Status = StatusCompleted
	rec.JobCount = len(rows)
	rec.OutputPath = path
	rec.UpdatedAt = time.Now().UTC()
	if err := r.store.Save(ctx, rec); err != nil {
		r.logger.Error("Failed to update task record", map[string]interface{}{
			"task_id": rec.TaskID,
			"error":   err.Error(),
		})
		return
	}

	r.logger.Info("Crawl task completed", map[string]interface{}{
		"task_id": rec.TaskID,
		"source":  rec.Source,
		"jobs":    rec.JobCount,
		"output":  path,
	})
}

func (r *Runner) fail(ctx context.Context, rec Record, cause error) {
	rec.Status = StatusFailed
	rec.Error = cause.Error()
	rec.UpdatedAt = time.Now().UTC()
	if err := r.store.Save(ctx, rec); err != nil {
		r.logger.Error("Failed to update task record", map[string]interface{}{
			"task_id": rec.TaskID,
			"error":   err.Error(),
		})
	}

	r.logger.Error("Crawl task failed", map[string]interface{}{
		"task_id": rec.TaskID,
		"source":  rec.Source,
		"error":   cause.Error(),
	})
}
