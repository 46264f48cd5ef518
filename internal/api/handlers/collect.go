package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"jobharvest/internal/config"
	"jobharvest/internal/logging"
	"jobharvest/internal/tasks"
	"jobharvest/pkg/models"
	"jobharvest/pkg/utils"
)

var validate = validator.New()

// CollectHandler accepts a crawl request, validates it and hands it to the
// task runner. The crawl itself runs in the background; the response only
// confirms acceptance.
func CollectHandler(cfg *config.Config, runner *tasks.Runner) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.CollectRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind collect request", map[string]interface{}{
				"error": err.Error(),
			})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			logger.Error("Collect request validation failed", map[string]interface{}{
				"error": err.Error(),
			})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		opts := buildOptions(cfg, req.Options)

		taskID, err := runner.Submit(c.Request().Context(), req.Source, opts)
		if err != nil {
			logger.Error("Failed to submit crawl task", map[string]interface{}{
				"source": req.Source,
				"error":  err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "task_submission_failed",
				Message:   fmt.Sprintf("Failed to submit crawl task: %v", err),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Crawl task accepted", map[string]interface{}{
			"task_id": taskID,
			"source":  req.Source,
		})

		return c.JSON(http.StatusAccepted, models.CollectResponse{
			TaskID:    taskID,
			Source:    req.Source,
			Status:    string(tasks.StatusPending),
			RequestID: requestID,
			Timestamp: time.Now(),
		})
	}
}

// TaskStatusHandler returns the stored state of a crawl task.
func TaskStatusHandler(store tasks.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		taskID := c.Param("id")

		rec, err := store.Get(c.Request().Context(), taskID)
		if err == tasks.ErrTaskNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:     "task_not_found",
				Message:   fmt.Sprintf("No crawl task with ID %s", taskID),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "task_lookup_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, rec)
	}
}

// buildOptions layers the request options over the configured defaults.
func buildOptions(cfg *config.Config, reqOpts *models.CollectRequestOptions) models.CollectOptions {
	opts := models.CollectOptions{
		Terms:           cfg.Crawler.Terms,
		MaxPagesPerTerm: cfg.Crawler.MaxPagesPerTerm,
		TotalLimit:      cfg.Crawler.TotalLimit,
		FetchDetails:    cfg.Crawler.FetchDetails,
		MaxNoNewPages:   cfg.Crawler.MaxNoNewPages,
	}
	if reqOpts == nil {
		return opts
	}

	if len(reqOpts.Terms) > 0 {
		opts.Terms = reqOpts.Terms
	}
	if reqOpts.MaxPagesPerTerm > 0 {
		opts.MaxPagesPerTerm = reqOpts.MaxPagesPerTerm
	}
	if reqOpts.TotalLimit > 0 {
		opts.TotalLimit = reqOpts.TotalLimit
	}
	if reqOpts.FetchDetails != nil {
		opts.FetchDetails = *reqOpts.FetchDetails
	}
	if reqOpts.MaxNoNewPages > 0 {
		opts.MaxNoNewPages = reqOpts.MaxNoNewPages
	}
	return opts
}
