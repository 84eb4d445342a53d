package usecase

import (
	"context"
	"testing"
	"time"

	"clinicflow/internal/delivery/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newScheduleFixture runs the save transaction against the fakes directly.
func newScheduleFixture() (*doctorScheduleUsecase, *fakeScheduleRepo, *memoryScheduleCache) {
	repo := newFakeScheduleRepo()
	cache := newMemoryScheduleCache()
	u := NewDoctorScheduleUsecase(nil, testLogger(), repo, cache).(*doctorScheduleUsecase)
	u.transact = func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return fn(nil)
	}
	return u, repo, cache
}

func TestSaveWeekdayHours_RejectsBadRanges(t *testing.T) {
	u := NewDoctorScheduleUsecase(nil, testLogger(), newFakeScheduleRepo(), noopScheduleCache{})
	doctorID := uuid.New()

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{name: "malformed start", start: "nine", end: "10:00"},
		{name: "malformed end", start: "09:00", end: "later"},
		{name: "start equals end", start: "09:00", end: "09:00"},
		{name: "start after end", start: "10:00", end: "09:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.SaveWeekdayHours(context.Background(), doctorID, &dto.SaveWeekdayHoursRequest{
				Weekday: 1,
				Ranges:  []dto.TimeRangeRequest{{StartTime: tt.start, EndTime: tt.end, SlotsPerHour: 4}},
			})
			assert.ErrorIs(t, err, ErrInvalidTimeRange)
		})
	}
}

func TestSaveWeekdayHours_RepeatedSaveAddsNothing(t *testing.T) {
	u, repo, cache := newScheduleFixture()
	doctorID := uuid.New()

	request := &dto.SaveWeekdayHoursRequest{
		Weekday: int(time.Tuesday),
		Ranges: []dto.TimeRangeRequest{
			{StartTime: "09:00", EndTime: "12:00", SlotsPerHour: 4},
			{StartTime: "14:00", EndTime: "17:00", SlotsPerHour: 2},
		},
	}

	first, err := u.SaveWeekdayHours(context.Background(), doctorID, request)
	require.NoError(t, err)
	require.Len(t, first.Windows, 2)

	second, err := u.SaveWeekdayHours(context.Background(), doctorID, request)
	require.NoError(t, err)
	require.Len(t, second.Windows, 2)

	schedule, err := repo.FindByDoctorAndWeekday(context.Background(), nil, doctorID, time.Tuesday)
	require.NoError(t, err)
	assert.Len(t, schedule.Windows, 2)

	// The save invalidates the weekday so readers reload fresh hours.
	_, ok := cache.GetWindows(context.Background(), doctorID, time.Tuesday)
	assert.False(t, ok)
}

func TestSetWindowActive_UnknownWindow(t *testing.T) {
	u := NewDoctorScheduleUsecase(nil, testLogger(), newFakeScheduleRepo(), noopScheduleCache{})

	err := u.SetWindowActive(context.Background(), uuid.New(), 42, false)
	assert.ErrorIs(t, err, ErrWindowNotFound)
}
