package usecase

import (
	"context"
	"sync"
	"time"

	"clinicflow/internal/domain/entity"
	"clinicflow/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory fakes. Repository methods take the db handle as a parameter, so
// the fakes simply ignore it and tests run without a database.

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) addDoctor(id uuid.UUID) {
	f.users[id] = &entity.User{
		ID:       id,
		RoleID:   entity.RoleIDDoctor,
		Email:    "doctor@example.com",
		FullName: "Dr. Test",
		IsActive: true,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, db *gorm.DB, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindActiveDoctor(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	u := f.users[id]
	if u == nil || !u.IsDoctor() || !u.IsActive {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserRepo) FindActiveDoctorIDs(ctx context.Context, db *gorm.DB) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, u := range f.users {
		if u.IsDoctor() && u.IsActive {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type scheduleKey struct {
	doctorID uuid.UUID
	weekday  time.Weekday
}

type fakeScheduleRepo struct {
	// windows per (doctor, weekday); a missing key means no schedule row
	windows     map[uuid.UUID]map[time.Weekday][]entity.AvailabilityWindow
	scheduleIDs map[scheduleKey]int
	schedules   map[int]scheduleKey
	registry    map[string]entity.AvailabilityWindow
	nextID      int
	finds       int
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		windows:     make(map[uuid.UUID]map[time.Weekday][]entity.AvailabilityWindow),
		scheduleIDs: make(map[scheduleKey]int),
		schedules:   make(map[int]scheduleKey),
		registry:    make(map[string]entity.AvailabilityWindow),
	}
}

func (f *fakeScheduleRepo) addWindow(doctorID uuid.UUID, weekday time.Weekday, start, end string, slotsPerHour int) {
	if f.windows[doctorID] == nil {
		f.windows[doctorID] = make(map[time.Weekday][]entity.AvailabilityWindow)
	}
	f.nextID++
	window := entity.AvailabilityWindow{
		ID:           f.nextID,
		StartTime:    start,
		EndTime:      end,
		SlotsPerHour: slotsPerHour,
		IsActive:     true,
	}
	f.registry[start+"-"+end] = window
	f.windows[doctorID][weekday] = append(f.windows[doctorID][weekday], window)
}

func (f *fakeScheduleRepo) FindByDoctorAndWeekday(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, weekday time.Weekday) (*entity.WeeklySchedule, error) {
	f.finds++
	windows, ok := f.windows[doctorID][weekday]
	if !ok {
		return nil, nil
	}
	return &entity.WeeklySchedule{
		DoctorID: doctorID,
		Weekday:  weekday,
		Windows:  windows,
	}, nil
}

func (f *fakeScheduleRepo) FindByDoctor(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.WeeklySchedule, error) {
	var schedules []entity.WeeklySchedule
	for weekday, windows := range f.windows[doctorID] {
		schedules = append(schedules, entity.WeeklySchedule{
			DoctorID: doctorID,
			Weekday:  weekday,
			Windows:  windows,
		})
	}
	return schedules, nil
}

func (f *fakeScheduleRepo) UpsertWeekday(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, weekday time.Weekday) (*entity.WeeklySchedule, error) {
	if f.windows[doctorID] == nil {
		f.windows[doctorID] = make(map[time.Weekday][]entity.AvailabilityWindow)
	}
	if _, ok := f.windows[doctorID][weekday]; !ok {
		f.windows[doctorID][weekday] = nil
	}

	key := scheduleKey{doctorID: doctorID, weekday: weekday}
	id, ok := f.scheduleIDs[key]
	if !ok {
		f.nextID++
		id = f.nextID
		f.scheduleIDs[key] = id
		f.schedules[id] = key
	}
	return &entity.WeeklySchedule{ID: id, DoctorID: doctorID, Weekday: weekday}, nil
}

func (f *fakeScheduleRepo) GetOrCreateWindow(ctx context.Context, db *gorm.DB, start, end string, slotsPerHour int) (*entity.AvailabilityWindow, error) {
	if window, ok := f.registry[start+"-"+end]; ok {
		return &window, nil
	}
	f.nextID++
	window := entity.AvailabilityWindow{
		ID:           f.nextID,
		StartTime:    start,
		EndTime:      end,
		SlotsPerHour: slotsPerHour,
		IsActive:     true,
	}
	f.registry[start+"-"+end] = window
	return &window, nil
}

func (f *fakeScheduleRepo) AttachWindow(ctx context.Context, db *gorm.DB, scheduleID, windowID int) error {
	key, ok := f.schedules[scheduleID]
	if !ok {
		return nil
	}
	for _, attached := range f.windows[key.doctorID][key.weekday] {
		if attached.ID == windowID {
			return nil
		}
	}
	for _, window := range f.registry {
		if window.ID == windowID {
			f.windows[key.doctorID][key.weekday] = append(f.windows[key.doctorID][key.weekday], window)
			return nil
		}
	}
	return nil
}

func (f *fakeScheduleRepo) SetWindowActive(ctx context.Context, db *gorm.DB, windowID int, active bool) (int64, error) {
	var affected int64
	for doctorID := range f.windows {
		for weekday := range f.windows[doctorID] {
			for i := range f.windows[doctorID][weekday] {
				if f.windows[doctorID][weekday][i].ID == windowID {
					f.windows[doctorID][weekday][i].IsActive = active
					affected = 1
				}
			}
		}
	}
	for key, window := range f.registry {
		if window.ID == windowID {
			window.IsActive = active
			f.registry[key] = window
			affected = 1
		}
	}
	return affected, nil
}

// fakeBookingRepo mirrors the transactional slot check with a mutex: the
// conflict scan and the insert happen under one lock, like the row locks do
// in Postgres.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{}
}

func (f *fakeBookingRepo) CreateIfSlotFree(ctx context.Context, db *gorm.DB, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.IsTerminal() {
			continue
		}
		if !b.AppointmentDate.Equal(booking.AppointmentDate) || b.AppointmentTime != booking.AppointmentTime {
			continue
		}
		if b.DoctorID == booking.DoctorID {
			return repository.ErrDoctorSlotConflict
		}
		if b.PatientID == booking.PatientID {
			return repository.ErrPatientSlotConflict
		}
	}

	booking.ID = uuid.New()
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Booking
	for _, b := range f.bookings {
		if b.PatientID == patientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Booking
	for _, b := range f.bookings {
		if b.DoctorID == doctorID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindDoctorBookedTimes(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var times []string
	for _, b := range f.bookings {
		if b.DoctorID == doctorID && sameDate(b.AppointmentDate, date) && !b.IsTerminal() {
			times = append(times, b.AppointmentTime)
		}
	}
	return times, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, from []entity.BookingStatus, to entity.BookingStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID != id {
			continue
		}
		for _, s := range from {
			if b.Status == s {
				b.Status = to
				return 1, nil
			}
		}
		return 0, nil
	}
	return 0, nil
}

func newBooking(doctorID, patientID uuid.UUID, date, clock string) *entity.Booking {
	day, _ := time.ParseInLocation("2006-01-02", date, time.Local)
	return &entity.Booking{
		DoctorID:        doctorID,
		PatientID:       patientID,
		AppointmentDate: day,
		AppointmentTime: clock,
		Status:          entity.BookingStatusPending,
	}
}

// noopScheduleCache always misses so tests exercise the repository path.
type noopScheduleCache struct{}

func (noopScheduleCache) GetWindows(ctx context.Context, doctorID uuid.UUID, weekday time.Weekday) ([]entity.AvailabilityWindow, bool) {
	return nil, false
}

func (noopScheduleCache) SetWindows(ctx context.Context, doctorID uuid.UUID, weekday time.Weekday, windows []entity.AvailabilityWindow) {
}

func (noopScheduleCache) Invalidate(ctx context.Context, doctorID uuid.UUID, weekday time.Weekday) {}

// memoryScheduleCache is a map-backed cache so tests can observe what the
// read-through path stores and serves.
type memoryScheduleCache struct {
	entries map[scheduleKey][]entity.AvailabilityWindow
}

func newMemoryScheduleCache() *memoryScheduleCache {
	return &memoryScheduleCache{entries: make(map[scheduleKey][]entity.AvailabilityWindow)}
}

func (c *memoryScheduleCache) GetWindows(ctx context.Context, doctorID uuid.UUID, weekday time.Weekday) ([]entity.AvailabilityWindow, bool) {
	windows, ok := c.entries[scheduleKey{doctorID: doctorID, weekday: weekday}]
	return windows, ok
}

func (c *memoryScheduleCache) SetWindows(ctx context.Context, doctorID uuid.UUID, weekday time.Weekday, windows []entity.AvailabilityWindow) {
	if windows == nil {
		windows = []entity.AvailabilityWindow{}
	}
	c.entries[scheduleKey{doctorID: doctorID, weekday: weekday}] = windows
}

func (c *memoryScheduleCache) Invalidate(ctx context.Context, doctorID uuid.UUID, weekday time.Weekday) {
	delete(c.entries, scheduleKey{doctorID: doctorID, weekday: weekday})
}
