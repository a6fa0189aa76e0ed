package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/middleware"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/utils/ratelimit"
)

// MockRateLimiter implements the middleware.RateLimiter interface
type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(clientID, category string) bool {
	args := m.Called(clientID, category)
	return args.Bool(0)
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		remoteAddr     string
		headers        map[string]string
		allowed        bool
		expectCall     bool
		expectedIP     string
		expectedStatus int
	}{
		{
			name:           "Allowed request",
			path:           "/api/notices/render",
			remoteAddr:     "192.0.2.1:1234",
			allowed:        true,
			expectCall:     true,
			expectedIP:     "192.0.2.1",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Limited request",
			path:           "/api/notices/render",
			remoteAddr:     "192.0.2.1:1234",
			allowed:        false,
			expectCall:     true,
			expectedIP:     "192.0.2.1",
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name:           "Forwarded client is limited by its own address",
			path:           "/api/notices/stylesheet",
			remoteAddr:     "10.0.0.1:80",
			headers:        map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"},
			allowed:        true,
			expectCall:     true,
			expectedIP:     "203.0.113.9",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Real IP header",
			path:           "/api/notices/stylesheet",
			remoteAddr:     "10.0.0.1:80",
			headers:        map[string]string{"X-Real-IP": "203.0.113.10"},
			allowed:        true,
			expectCall:     true,
			expectedIP:     "203.0.113.10",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Remote address without port",
			path:           "/api/notices/render",
			remoteAddr:     "192.0.2.7",
			allowed:        true,
			expectCall:     true,
			expectedIP:     "192.0.2.7",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Health check is exempt",
			path:           "/health",
			remoteAddr:     "192.0.2.1:1234",
			expectCall:     false,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := new(MockRateLimiter)
			if tt.expectCall {
				limiter.On("Allow", tt.expectedIP, "public").Return(tt.allowed)
			}

			next := &MockHandler{}
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()

			middleware.RateLimit(limiter, "public", 30*time.Second)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusTooManyRequests {
				assert.False(t, next.Called)
				assert.Equal(t, "30", rr.Header().Get("Retry-After"))
				assert.Contains(t, rr.Body.String(), "too_many_requests")
			} else {
				assert.True(t, next.Called)
			}

			if tt.expectCall {
				limiter.AssertExpectations(t)
			} else {
				limiter.AssertNotCalled(t, "Allow", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestRateLimit_WithStore(t *testing.T) {
	store := ratelimit.NewStore(ratelimit.Rate{RequestsPerSecond: 0, Burst: 2}, time.Minute)
	handler := middleware.RateLimit(store, "public", 0)(&MockHandler{})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/notices/stylesheet", nil)
		req.RemoteAddr = "198.51.100.4:5000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// A different client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/api/notices/stylesheet", nil)
	req.RemoteAddr = "198.51.100.5:5000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequestLogging(t *testing.T) {
	var logBuf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&logBuf)
	defer func() { log.Logger = original }()

	t.Run("Records written status", func(t *testing.T) {
		logBuf.Reset()
		handler := middleware.RequestLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/notices/stylesheet", nil)
		req.Header.Set("User-Agent", "probe/1.0")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTeapot, rr.Code)
		out := logBuf.String()
		assert.Contains(t, out, `"status":418`)
		assert.Contains(t, out, "/api/notices/stylesheet")
		assert.Contains(t, out, "probe/1.0")
	})

	t.Run("Implicit OK", func(t *testing.T) {
		logBuf.Reset()
		handler := middleware.RequestLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/version", nil))

		assert.Contains(t, logBuf.String(), `"status":200`)
	})
}
