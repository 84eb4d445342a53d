package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type slotFixture struct {
	usecase  *slotUsecase
	users    *fakeUserRepo
	schedule *fakeScheduleRepo
	bookings *fakeBookingRepo
	doctorID uuid.UUID
}

// newSlotFixture wires a slot usecase over fakes with the clock pinned to
// Monday 2025-03-10 08:00 local time.
func newSlotFixture(t *testing.T) *slotFixture {
	t.Helper()

	users := newFakeUserRepo()
	schedule := newFakeScheduleRepo()
	bookings := newFakeBookingRepo()

	doctorID := uuid.New()
	users.addDoctor(doctorID)

	u := NewSlotUsecase(nil, testLogger(), users, schedule, bookings, noopScheduleCache{}).(*slotUsecase)
	u.now = func() time.Time {
		return time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)
	}

	return &slotFixture{
		usecase:  u,
		users:    users,
		schedule: schedule,
		bookings: bookings,
		doctorID: doctorID,
	}
}

func TestListAvailableSlots_ExpandsWindow(t *testing.T) {
	f := newSlotFixture(t)
	f.schedule.addWindow(f.doctorID, time.Tuesday, "09:00", "10:00", 4)

	result, err := f.usecase.ListAvailableSlots(context.Background(), f.doctorID, "2025-03-11")
	require.NoError(t, err)

	require.Len(t, result.Slots, 4)
	assert.Equal(t, "09:00", result.Slots[0].Time)
	assert.Equal(t, "09:15", result.Slots[1].Time)
	assert.Equal(t, "09:30", result.Slots[2].Time)
	assert.Equal(t, "09:45", result.Slots[3].Time)
	assert.Equal(t, "09:00 AM", result.Slots[0].Label)
	assert.Equal(t, 4, result.Total)

	// The window end is a boundary, never a slot.
	for _, slot := range result.Slots {
		assert.NotEqual(t, "10:00", slot.Time)
	}
}

func TestListAvailableSlots_NoScheduleForWeekday(t *testing.T) {
	f := newSlotFixture(t)
	f.schedule.addWindow(f.doctorID, time.Tuesday, "09:00", "10:00", 4)

	// Wednesday has no schedule row.
	result, err := f.usecase.ListAvailableSlots(context.Background(), f.doctorID, "2025-03-12")
	require.NoError(t, err)
	assert.Empty(t, result.Slots)
	assert.Equal(t, 0, result.Total)
}

func TestListAvailableSlots_CapsExpansionPerWindow(t *testing.T) {
	f := newSlotFixture(t)
	// 5-minute slots across the whole day would yield 287 candidates.
	f.schedule.addWindow(f.doctorID, time.Tuesday, "00:00", "23:59", 12)

	result, err := f.usecase.ListAvailableSlots(context.Background(), f.doctorID, "2025-03-11")
	require.NoError(t, err)

	require.Len(t, result.Slots, 50)
	assert.Equal(t, "00:00", result.Slots[0].Time)
	assert.Equal(t, "04:05", result.Slots[49].Time)
}

func TestListAvailableSlots_SuppressesPastTimesToday(t *testing.T) {
	f := newSlotFixture(t)
	f.schedule.addWindow(f.doctorID, time.Monday, "09:00", "10:00", 4)
	f.usecase.now = func() time.Time {
		return time.Date(2025, 3, 10, 9, 20, 0, 0, time.Local)
	}

	result, err := f.usecase.ListAvailableSlots(context.Background(), f.doctorID, "2025-03-10")
	require.NoError(t, err)

	require.Len(t, result.Slots, 2)
	assert.Equal(t, "09:30", result.Slots[0].Time)
	assert.Equal(t, "09:45", result.Slots[1].Time)
}

func TestListAvailableSlots_SkipsBookedTimes(t *testing.T) {
	f := newSlotFixture(t)
	f.schedule.addWindow(f.doctorID, time.Tuesday, "09:00", "10:00", 4)

	booked := newBooking(f.doctorID, uuid.New(), "2025-03-11", "09:30")
	require.NoError(t, f.bookings.CreateIfSlotFree(context.Background(), nil, booked))

	result, err := f.usecase.ListAvailableSlots(context.Background(), f.doctorID, "2025-03-11")
	require.NoError(t, err)

	require.Len(t, result.Slots, 3)
	assert.Equal(t, "09:00", result.Slots[0].Time)
	assert.Equal(t, "09:15", result.Slots[1].Time)
	assert.Equal(t, "09:45", result.Slots[2].Time)
}

func TestListAvailableSlots_MultipleWindowsKeepScheduleOrder(t *testing.T) {
	f := newSlotFixture(t)
	f.schedule.addWindow(f.doctorID, time.Tuesday, "14:00", "15:00", 2)
	f.schedule.addWindow(f.doctorID, time.Tuesday, "09:00", "10:00", 2)

	result, err := f.usecase.ListAvailableSlots(context.Background(), f.doctorID, "2025-03-11")
	require.NoError(t, err)

	// Windows expand in the order the schedule returns them.
	require.Len(t, result.Slots, 4)
	assert.Equal(t, "14:00", result.Slots[0].Time)
	assert.Equal(t, "14:30", result.Slots[1].Time)
	assert.Equal(t, "09:00", result.Slots[2].Time)
	assert.Equal(t, "09:30", result.Slots[3].Time)
}

func TestListAvailableSlots_UnknownDoctor(t *testing.T) {
	f := newSlotFixture(t)

	_, err := f.usecase.ListAvailableSlots(context.Background(), uuid.New(), "2025-03-11")
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestListAvailableSlots_InvalidDate(t *testing.T) {
	f := newSlotFixture(t)

	_, err := f.usecase.ListAvailableSlots(context.Background(), f.doctorID, "11-03-2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestGetBookingPage_SevenDays(t *testing.T) {
	f := newSlotFixture(t)
	f.schedule.addWindow(f.doctorID, time.Tuesday, "09:00", "10:00", 4)

	page, err := f.usecase.GetBookingPage(context.Background(), f.doctorID)
	require.NoError(t, err)

	require.Len(t, page.Days, 7)
	assert.Equal(t, "2025-03-10", page.Days[0].Date)
	assert.Equal(t, "Mon", page.Days[0].Day)
	assert.Equal(t, "Mar", page.Days[0].Month)
	assert.Equal(t, "2025-03-16", page.Days[6].Date)

	// Only Tuesday has hours.
	assert.Empty(t, page.Days[0].Slots)
	assert.Len(t, page.Days[1].Slots, 4)
	for i := 2; i < 7; i++ {
		assert.Empty(t, page.Days[i].Slots)
	}
}

func TestExpandWindow_MalformedTimesSkipWindow(t *testing.T) {
	f := newSlotFixture(t)
	f.schedule.addWindow(f.doctorID, time.Tuesday, "garbage", "10:00", 4)
	f.schedule.addWindow(f.doctorID, time.Tuesday, "11:00", "12:00", 1)

	result, err := f.usecase.ListAvailableSlots(context.Background(), f.doctorID, "2025-03-11")
	require.NoError(t, err)

	require.Len(t, result.Slots, 1)
	assert.Equal(t, "11:00", result.Slots[0].Time)
}
