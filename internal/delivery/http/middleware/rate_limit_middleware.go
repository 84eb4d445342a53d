package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"clinicflow/pkg/response"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const bookingRateKeyPrefix = "rate:bookings:"

// rateCounter is the slice of the redis client the limiter needs.
type rateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RateLimitMiddleware caps how many booking attempts a user may make per
// window. The counter lives in redis so the cap holds across instances.
type RateLimitMiddleware struct {
	counter rateCounter
	log     *logrus.Logger
	limit   int64
	window  time.Duration
}

func NewRateLimitMiddleware(redisClient *redis.Client, log *logrus.Logger, limit int, window time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		counter: redisClient,
		log:     log,
		limit:   int64(limit),
		window:  window,
	}
}

func (m *RateLimitMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "User not authenticated")
			return
		}

		key := fmt.Sprintf("%s%s", bookingRateKeyPrefix, userID.String())
		count, err := m.counter.Incr(r.Context(), key).Result()
		if err != nil {
			// Fail open: redis being down should not block bookings.
			m.log.Warnf("Failed to count booking attempts for user %s: %+v", userID, err)
			next.ServeHTTP(w, r)
			return
		}

		if count == 1 {
			if err := m.counter.Expire(r.Context(), key, m.window).Err(); err != nil {
				m.log.Warnf("Failed to set booking rate window for user %s: %+v", userID, err)
			}
		}

		if count > m.limit {
			response.Error(w, http.StatusTooManyRequests, "Too many booking attempts, please try again later", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
