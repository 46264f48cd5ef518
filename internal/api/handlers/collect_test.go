package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobharvest/internal/config"
	"jobharvest/internal/logging"
	"jobharvest/internal/tasks"
	"jobharvest/pkg/models"
)

func postCollect(t *testing.T, body string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/collect", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestCollectHandlerRejectsUnknownSource(t *testing.T) {
	cfg := &config.Config{}
	runner := tasks.NewRunner(cfg, tasks.NewMemoryStore(), logging.GetGlobalLogger())

	rec, c := postCollect(t, `{"source":"monster"}`)
	require.NoError(t, CollectHandler(cfg, runner)(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_failed", resp.Error)
}

func TestCollectHandlerRejectsMalformedBody(t *testing.T) {
	cfg := &config.Config{}
	runner := tasks.NewRunner(cfg, tasks.NewMemoryStore(), logging.GetGlobalLogger())

	rec, c := postCollect(t, `{"source":`)
	require.NoError(t, CollectHandler(cfg, runner)(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskStatusHandler(t *testing.T) {
	store := tasks.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), tasks.Record{
		TaskID:    "task-1",
		Source:    "jobup",
		Status:    tasks.StatusCompleted,
		JobCount:  7,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("task-1")

	require.NoError(t, TaskStatusHandler(store)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got tasks.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, tasks.StatusCompleted, got.Status)
	assert.Equal(t, 7, got.JobCount)
}

func TestTaskStatusHandlerNotFound(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	require.NoError(t, TaskStatusHandler(tasks.NewMemoryStore())(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBuildOptionsLayersRequestOverDefaults(t *testing.T) {
	cfg := &config.Config{}
	cfg.Crawler.Terms = []string{"data scientist"}
	cfg.Crawler.MaxPagesPerTerm = 20
	cfg.Crawler.TotalLimit = 1000
	cfg.Crawler.FetchDetails = true
	cfg.Crawler.MaxNoNewPages = 5

	noDetails := false
	opts := buildOptions(cfg, &models.CollectRequestOptions{
		Terms:        []string{"ml engineer"},
		TotalLimit:   50,
		FetchDetails: &noDetails,
	})

	assert.Equal(t, []string{"ml engineer"}, opts.Terms)
	assert.Equal(t, 50, opts.TotalLimit)
	assert.False(t, opts.FetchDetails)
	// Untouched knobs keep the configured values.
	assert.Equal(t, 20, opts.MaxPagesPerTerm)
	assert.Equal(t, 5, opts.MaxNoNewPages)
}

func TestBuildOptionsNilRequest(t *testing.T) {
	cfg := &config.Config{}
	cfg.Crawler.MaxPagesPerTerm = 20
	cfg.Crawler.FetchDetails = true

	opts := buildOptions(cfg, nil)
	assert.Equal(t, 20, opts.MaxPagesPerTerm)
	assert.True(t, opts.FetchDetails)
}
