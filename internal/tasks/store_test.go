package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSaveAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	rec := Record{
		TaskID:    "task-1",
		Source:    "jobup",
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Save(ctx, rec))

	got, err := store.Get(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, rec.Source, got.Source)
	assert.Equal(t, StatusPending, got.Status)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	rec := Record{TaskID: "task-1", Status: StatusRunning}
	require.NoError(t, store.Save(ctx, rec))

	rec.Status = StatusCompleted
	rec.JobCount = 42
	require.NoError(t, store.Save(ctx, rec))

	got, err := store.Get(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, 42, got.JobCount)
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
