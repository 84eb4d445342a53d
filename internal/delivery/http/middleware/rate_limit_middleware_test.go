package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type fakeRateCounter struct {
	counts  map[string]int64
	windows map[string]time.Duration
}

func newFakeRateCounter() *fakeRateCounter {
	return &fakeRateCounter{
		counts:  make(map[string]int64),
		windows: make(map[string]time.Duration),
	}
}

func (f *fakeRateCounter) Incr(ctx context.Context, key string) *redis.IntCmd {
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeRateCounter) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.windows[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func newRateLimitFixture(counter rateCounter, limit int64) *RateLimitMiddleware {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &RateLimitMiddleware{
		counter: counter,
		log:     log,
		limit:   limit,
		window:  time.Hour,
	}
}

func sendAs(handler http.Handler, userID uuid.UUID) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey, userID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_BlocksUserOverLimit(t *testing.T) {
	counter := newFakeRateCounter()
	m := newRateLimitFixture(counter, 2)

	served := 0
	handler := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served++
		w.WriteHeader(http.StatusCreated)
	}))

	userID := uuid.New()
	assert.Equal(t, http.StatusCreated, sendAs(handler, userID).Code)
	assert.Equal(t, http.StatusCreated, sendAs(handler, userID).Code)
	assert.Equal(t, http.StatusTooManyRequests, sendAs(handler, userID).Code)
	assert.Equal(t, 2, served)

	// The window starts with the first attempt.
	assert.Equal(t, time.Hour, counter.windows["rate:bookings:"+userID.String()])
}

func TestRateLimit_CountsPerUser(t *testing.T) {
	counter := newFakeRateCounter()
	m := newRateLimitFixture(counter, 1)

	handler := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	first := uuid.New()
	second := uuid.New()
	assert.Equal(t, http.StatusCreated, sendAs(handler, first).Code)
	assert.Equal(t, http.StatusCreated, sendAs(handler, second).Code)
	assert.Equal(t, http.StatusTooManyRequests, sendAs(handler, first).Code)
}

func TestRateLimit_RejectsMissingIdentity(t *testing.T) {
	m := newRateLimitFixture(newFakeRateCounter(), 1)

	served := 0
	handler := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served++
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, served)
}
