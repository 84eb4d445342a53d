package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"clinicflow/internal/delivery/dto"
	"clinicflow/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	usecase   *bookingUsecase
	users     *fakeUserRepo
	schedule  *fakeScheduleRepo
	bookings  *fakeBookingRepo
	doctorID  uuid.UUID
	patientID uuid.UUID
}

// newBookingFixture pins the clock to Monday 2025-03-10 08:00 local time and
// gives the doctor Tuesday hours 09:00-10:00 with 15-minute slots.
func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	users := newFakeUserRepo()
	schedule := newFakeScheduleRepo()
	bookings := newFakeBookingRepo()

	doctorID := uuid.New()
	users.addDoctor(doctorID)
	schedule.addWindow(doctorID, time.Tuesday, "09:00", "10:00", 4)

	u := NewBookingUsecase(nil, testLogger(), users, schedule, bookings, noopScheduleCache{}).(*bookingUsecase)
	u.now = func() time.Time {
		return time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)
	}

	return &bookingFixture{
		usecase:   u,
		users:     users,
		schedule:  schedule,
		bookings:  bookings,
		doctorID:  doctorID,
		patientID: uuid.New(),
	}
}

func (f *bookingFixture) request(date, clock string) *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		DoctorID:        f.doctorID,
		AppointmentDate: date,
		AppointmentTime: clock,
	}
}

func TestCreateBooking_Success(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.usecase.CreateBooking(context.Background(), f.patientID, f.request("2025-03-11", "09:15"))
	require.NoError(t, err)

	assert.Equal(t, "2025-03-11", booking.AppointmentDate)
	assert.Equal(t, "09:15", booking.AppointmentTime)
	assert.Equal(t, string(entity.BookingStatusPending), booking.Status)
	assert.Equal(t, f.patientID, booking.PatientID)
}

func TestCreateBooking_UnknownDoctor(t *testing.T) {
	f := newBookingFixture(t)

	req := f.request("2025-03-11", "09:15")
	req.DoctorID = uuid.New()
	_, err := f.usecase.CreateBooking(context.Background(), f.patientID, req)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestCreateBooking_InvalidInputBeforePastCheck(t *testing.T) {
	f := newBookingFixture(t)

	// A malformed date that would also be in the past reports invalid
	// input, not a past-time error.
	_, err := f.usecase.CreateBooking(context.Background(), f.patientID, f.request("03/11/2020", "09:15"))
	assert.ErrorIs(t, err, ErrInvalidBookingInput)

	_, err = f.usecase.CreateBooking(context.Background(), f.patientID, f.request("2020-03-11", "9 o'clock"))
	assert.ErrorIs(t, err, ErrInvalidBookingInput)
}

func TestCreateBooking_PastDateTime(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.usecase.CreateBooking(context.Background(), f.patientID, f.request("2025-03-04", "09:15"))
	assert.ErrorIs(t, err, ErrPastDateTime)

	// Earlier the same day is also past.
	f.schedule.addWindow(f.doctorID, time.Monday, "07:00", "10:00", 4)
	_, err = f.usecase.CreateBooking(context.Background(), f.patientID, f.request("2025-03-10", "07:30"))
	assert.ErrorIs(t, err, ErrPastDateTime)
}

func TestCreateBooking_OutsideWorkingHours(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.usecase.CreateBooking(context.Background(), f.patientID, f.request("2025-03-11", "08:00"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	_, err = f.usecase.CreateBooking(context.Background(), f.patientID, f.request("2025-03-11", "10:15"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	// A weekday without hours rejects everything.
	_, err = f.usecase.CreateBooking(context.Background(), f.patientID, f.request("2025-03-12", "09:15"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestCreateBooking_WindowEndIsBookable(t *testing.T) {
	f := newBookingFixture(t)

	// Slot expansion stops before 10:00 but a request for the window end
	// itself is accepted.
	booking, err := f.usecase.CreateBooking(context.Background(), f.patientID, f.request("2025-03-11", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, "10:00", booking.AppointmentTime)
}

func TestCreateBooking_SlotTaken(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.usecase.CreateBooking(context.Background(), f.patientID, f.request("2025-03-11", "09:15"))
	require.NoError(t, err)

	_, err = f.usecase.CreateBooking(context.Background(), uuid.New(), f.request("2025-03-11", "09:15"))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestCreateBooking_PatientDoubleBooked(t *testing.T) {
	f := newBookingFixture(t)

	otherDoctor := uuid.New()
	f.users.addDoctor(otherDoctor)
	f.schedule.addWindow(otherDoctor, time.Tuesday, "09:00", "10:00", 4)

	_, err := f.usecase.CreateBooking(context.Background(), f.patientID, f.request("2025-03-11", "09:15"))
	require.NoError(t, err)

	req := f.request("2025-03-11", "09:15")
	req.DoctorID = otherDoctor
	_, err = f.usecase.CreateBooking(context.Background(), f.patientID, req)
	assert.ErrorIs(t, err, ErrPatientDoubleBooked)
}

func TestCreateBooking_CancelledSlotReopens(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.usecase.CreateBooking(context.Background(), f.patientID, f.request("2025-03-11", "09:15"))
	require.NoError(t, err)

	_, err = f.usecase.CancelBooking(context.Background(), f.patientID, booking.ID)
	require.NoError(t, err)

	// The slot is free again for another patient.
	_, err = f.usecase.CreateBooking(context.Background(), uuid.New(), f.request("2025-03-11", "09:15"))
	assert.NoError(t, err)
}

func TestCreateBooking_ConcurrentSameSlot(t *testing.T) {
	f := newBookingFixture(t)

	patients := []uuid.UUID{uuid.New(), uuid.New()}
	errs := make([]error, len(patients))

	var wg sync.WaitGroup
	for i, patientID := range patients {
		wg.Add(1)
		go func(i int, patientID uuid.UUID) {
			defer wg.Done()
			_, errs[i] = f.usecase.CreateBooking(context.Background(), patientID, f.request("2025-03-11", "09:30"))
		}(i, patientID)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrSlotTaken)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestConfirmBooking_Transitions(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.usecase.CreateBooking(context.Background(), f.patientID, f.request("2025-03-11", "09:00"))
	require.NoError(t, err)

	confirmed, err := f.usecase.ConfirmBooking(context.Background(), f.doctorID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.BookingStatusConfirmed), confirmed.Status)

	// Confirming twice fails: the booking is no longer pending.
	_, err = f.usecase.ConfirmBooking(context.Background(), f.doctorID, booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotTransitive)
}

func TestConfirmBooking_WrongDoctor(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.usecase.CreateBooking(context.Background(), f.patientID, f.request("2025-03-11", "09:00"))
	require.NoError(t, err)

	_, err = f.usecase.ConfirmBooking(context.Background(), uuid.New(), booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotOwned)
}

func TestCompleteBooking_FromConfirmed(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.usecase.CreateBooking(context.Background(), f.patientID, f.request("2025-03-11", "09:00"))
	require.NoError(t, err)

	_, err = f.usecase.ConfirmBooking(context.Background(), f.doctorID, booking.ID)
	require.NoError(t, err)

	completed, err := f.usecase.CompleteBooking(context.Background(), f.doctorID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.BookingStatusCompleted), completed.Status)

	// Terminal bookings never transition again.
	_, err = f.usecase.CancelBooking(context.Background(), f.patientID, booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotTransitive)
}

func TestCancelBooking_ByDoctorOrPatientOnly(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.usecase.CreateBooking(context.Background(), f.patientID, f.request("2025-03-11", "09:00"))
	require.NoError(t, err)

	_, err = f.usecase.CancelBooking(context.Background(), uuid.New(), booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotOwned)

	cancelled, err := f.usecase.CancelBooking(context.Background(), f.doctorID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.BookingStatusCancelled), cancelled.Status)
}

func TestMarkNoShow(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.usecase.CreateBooking(context.Background(), f.patientID, f.request("2025-03-11", "09:00"))
	require.NoError(t, err)

	noShow, err := f.usecase.MarkNoShow(context.Background(), f.doctorID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.BookingStatusNoShow), noShow.Status)
}

func TestCancelBooking_NotFound(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.usecase.CancelBooking(context.Background(), f.patientID, uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
