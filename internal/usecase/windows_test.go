package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadActiveWindows_CachesActiveWindowsOnly(t *testing.T) {
	repo := newFakeScheduleRepo()
	cache := newMemoryScheduleCache()
	doctorID := uuid.New()

	repo.addWindow(doctorID, time.Tuesday, "09:00", "12:00", 4)
	repo.addWindow(doctorID, time.Tuesday, "14:00", "17:00", 4)
	deactivated := repo.nextID
	_, err := repo.SetWindowActive(context.Background(), nil, deactivated, false)
	require.NoError(t, err)

	windows, err := loadActiveWindows(context.Background(), nil, repo, cache, doctorID, time.Tuesday)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, "09:00", windows[0].StartTime)

	cached, ok := cache.GetWindows(context.Background(), doctorID, time.Tuesday)
	require.True(t, ok)
	require.Len(t, cached, 1)
	assert.Equal(t, "09:00", cached[0].StartTime)
}

func TestLoadActiveWindows_ServesFromCache(t *testing.T) {
	repo := newFakeScheduleRepo()
	cache := newMemoryScheduleCache()
	doctorID := uuid.New()
	repo.addWindow(doctorID, time.Monday, "09:00", "12:00", 4)

	_, err := loadActiveWindows(context.Background(), nil, repo, cache, doctorID, time.Monday)
	require.NoError(t, err)
	require.Equal(t, 1, repo.finds)

	windows, err := loadActiveWindows(context.Background(), nil, repo, cache, doctorID, time.Monday)
	require.NoError(t, err)
	require.Len(t, windows, 1)

	// Served from the cache, the repository was not read again.
	assert.Equal(t, 1, repo.finds)
}

func TestLoadActiveWindows_CachesEmptyWeekday(t *testing.T) {
	repo := newFakeScheduleRepo()
	cache := newMemoryScheduleCache()
	doctorID := uuid.New()

	windows, err := loadActiveWindows(context.Background(), nil, repo, cache, doctorID, time.Friday)
	require.NoError(t, err)
	assert.Empty(t, windows)

	_, err = loadActiveWindows(context.Background(), nil, repo, cache, doctorID, time.Friday)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.finds)
}
