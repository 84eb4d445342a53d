package jobs

import (
	"context"
	"time"

	"clinicflow/internal/domain/repository"
	"clinicflow/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ScheduleCacheWarmer pre-populates the schedule cache for every active
// doctor so the first booking page of the day is served from Redis. It runs
// once at startup and then daily shortly after midnight, when cached "today"
// entries from the previous day stop being useful.
type ScheduleCacheWarmer struct {
	db            *gorm.DB
	log           *logrus.Logger
	userRepo      repository.UserRepository
	scheduleRepo  repository.ScheduleRepository
	scheduleCache service.ScheduleCache
}

func NewScheduleCacheWarmer(db *gorm.DB, log *logrus.Logger, userRepo repository.UserRepository, scheduleRepo repository.ScheduleRepository, scheduleCache service.ScheduleCache) *ScheduleCacheWarmer {
	return &ScheduleCacheWarmer{
		db:            db,
		log:           log,
		userRepo:      userRepo,
		scheduleRepo:  scheduleRepo,
		scheduleCache: scheduleCache,
	}
}

// Start warms the cache immediately and registers the daily refresh.
func (j *ScheduleCacheWarmer) Start() *cron.Cron {
	go j.Run()

	c := cron.New()
	if _, err := c.AddJob("5 0 * * *", j); err != nil {
		j.log.WithError(err).Error("failed to register schedule cache warm job")
		return c
	}
	c.Start()
	return c
}

func (j *ScheduleCacheWarmer) Run() {
	ctx := context.Background()
	started := time.Now()

	doctorIDs, err := j.userRepo.FindActiveDoctorIDs(ctx, j.db)
	if err != nil {
		j.log.WithError(err).Error("failed to list doctors for cache warm")
		return
	}

	warmed := 0
	for _, doctorID := range doctorIDs {
		schedules, err := j.scheduleRepo.FindByDoctor(ctx, j.db, doctorID)
		if err != nil {
			j.log.WithError(err).Warnf("failed to load schedule for doctor %s", doctorID)
			continue
		}

		byWeekday := make(map[time.Weekday]bool, len(schedules))
		for i := range schedules {
			schedule := &schedules[i]
			j.scheduleCache.SetWindows(ctx, doctorID, schedule.Weekday, schedule.ActiveWindows())
			byWeekday[schedule.Weekday] = true
		}
		// Weekdays without a schedule row are cached empty so lookups for
		// off days skip the database too.
		for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
			if !byWeekday[weekday] {
				j.scheduleCache.SetWindows(ctx, doctorID, weekday, nil)
			}
		}
		warmed++
	}

	j.log.WithFields(logrus.Fields{
		"doctors":  warmed,
		"duration": time.Since(started).String(),
	}).Info("schedule cache warmed")
}
