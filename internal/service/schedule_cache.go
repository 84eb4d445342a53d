package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clinicflow/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Redis key prefix for cached schedule windows
const scheduleWindowsKeyPrefix = "schedule:windows:"

// ScheduleCache caches a doctor's active availability windows per weekday.
// Schedule data is read-mostly: it changes only when a doctor edits hours,
// while slot listings read it on every booking page load. Cache misses are
// reported via the ok flag so callers fall through to the database; cache
// failures never fail a request.
type ScheduleCache interface {
	GetWindows(ctx context.Context, doctorID uuid.UUID, weekday time.Weekday) ([]entity.AvailabilityWindow, bool)
	SetWindows(ctx context.Context, doctorID uuid.UUID, weekday time.Weekday, windows []entity.AvailabilityWindow)
	Invalidate(ctx context.Context, doctorID uuid.UUID, weekday time.Weekday)
}

type redisScheduleCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewRedisScheduleCache(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) ScheduleCache {
	return &redisScheduleCache{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

func (c *redisScheduleCache) GetWindows(ctx context.Context, doctorID uuid.UUID, weekday time.Weekday) ([]entity.AvailabilityWindow, bool) {
	payload, err := c.redisClient.Get(ctx, windowsKey(doctorID, weekday)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read schedule cache for doctor %s weekday %d: %+v", doctorID, weekday, err)
		}
		return nil, false
	}

	var windows []entity.AvailabilityWindow
	if err := json.Unmarshal(payload, &windows); err != nil {
		c.log.Warnf("Corrupt schedule cache entry for doctor %s weekday %d: %+v", doctorID, weekday, err)
		return nil, false
	}
	return windows, true
}

func (c *redisScheduleCache) SetWindows(ctx context.Context, doctorID uuid.UUID, weekday time.Weekday, windows []entity.AvailabilityWindow) {
	// Cache an empty slice too: "doctor is unavailable that day" is just as
	// frequent a lookup as a day with hours.
	if windows == nil {
		windows = []entity.AvailabilityWindow{}
	}

	payload, err := json.Marshal(windows)
	if err != nil {
		c.log.Warnf("Failed to marshal schedule cache for doctor %s weekday %d: %+v", doctorID, weekday, err)
		return
	}

	if err := c.redisClient.Set(ctx, windowsKey(doctorID, weekday), payload, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to write schedule cache for doctor %s weekday %d: %+v", doctorID, weekday, err)
	}
}

func (c *redisScheduleCache) Invalidate(ctx context.Context, doctorID uuid.UUID, weekday time.Weekday) {
	if err := c.redisClient.Del(ctx, windowsKey(doctorID, weekday)).Err(); err != nil {
		c.log.Warnf("Failed to invalidate schedule cache for doctor %s weekday %d: %+v", doctorID, weekday, err)
	}
}

func windowsKey(doctorID uuid.UUID, weekday time.Weekday) string {
	return fmt.Sprintf("%s%s:%d", scheduleWindowsKeyPrefix, doctorID.String(), int(weekday))
}
