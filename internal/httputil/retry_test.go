// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	RetryBaseDelay = time.Millisecond
}

// scriptedServer answers with statuses in order, repeating the last one,
// and records the body and arrival time of every request.
type scriptedServer struct {
	statuses   []int
	retryAfter string

	mu     sync.Mutex
	bodies []string
	times  []time.Time
}

func (s *scriptedServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	n := len(s.bodies)
	s.bodies = append(s.bodies, string(data))
	s.times = append(s.times, time.Now())
	s.mu.Unlock()

	status := s.statuses[min(n, len(s.statuses)-1)]
	if status == http.StatusTooManyRequests && s.retryAfter != "" {
		w.Header().Set("Retry-After", s.retryAfter)
	}
	w.WriteHeader(status)
}

func (s *scriptedServer) requests() ([]string, []time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies, s.times
}

func TestDoWithRetry(t *testing.T) {
	const body = `{"text":"мама"}`

	tests := []struct {
		name       string
		statuses   []int
		retryAfter string
		body       string
		maxRetries int
		wantStatus int
		wantCalls  int
		minGap     time.Duration
	}{
		{
			name:       "immediate success",
			statuses:   []int{http.StatusOK},
			maxRetries: 5,
			wantStatus: http.StatusOK,
			wantCalls:  1,
		},
		{
			name:       "rate limited twice then ok",
			statuses:   []int{http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusOK},
			maxRetries: 5,
			wantStatus: http.StatusOK,
			wantCalls:  3,
		},
		{
			name:       "last 429 returned when retries run out",
			statuses:   []int{http.StatusTooManyRequests},
			maxRetries: 3,
			wantStatus: http.StatusTooManyRequests,
			wantCalls:  4,
		},
		{
			name:       "zero max retries uses the default",
			statuses:   []int{http.StatusTooManyRequests},
			wantStatus: http.StatusTooManyRequests,
			wantCalls:  1 + defaultMaxRetries,
		},
		{
			name:       "server error is not retried",
			statuses:   []int{http.StatusInternalServerError},
			maxRetries: 5,
			wantStatus: http.StatusInternalServerError,
			wantCalls:  1,
		},
		{
			name:       "body sent again on retry",
			statuses:   []int{http.StatusTooManyRequests, http.StatusOK},
			body:       body,
			maxRetries: 3,
			wantStatus: http.StatusOK,
			wantCalls:  2,
		},
		{
			name:       "Retry-After holds the retry",
			statuses:   []int{http.StatusTooManyRequests, http.StatusOK},
			retryAfter: "1",
			body:       body,
			maxRetries: 3,
			wantStatus: http.StatusOK,
			wantCalls:  2,
			minGap:     50 * time.Millisecond,
		},
	}

	old := MaxRetryAfter
	MaxRetryAfter = 50 * time.Millisecond
	t.Cleanup(func() { MaxRetryAfter = old })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := &scriptedServer{statuses: tt.statuses, retryAfter: tt.retryAfter}
			ts := httptest.NewServer(srv)
			defer ts.Close()

			method, reqBody := http.MethodGet, io.Reader(nil)
			if tt.body != "" {
				method, reqBody = http.MethodPost, strings.NewReader(tt.body)
			}
			req, err := http.NewRequest(method, ts.URL, reqBody)
			require.NoError(t, err)

			resp, err := DoWithRetry(context.Background(), ts.Client(), req, tt.maxRetries)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			bodies, times := srv.requests()
			require.Len(t, bodies, tt.wantCalls)
			for i, got := range bodies {
				assert.Equal(t, tt.body, got, "request %d body", i+1)
			}
			if tt.minGap > 0 {
				assert.GreaterOrEqual(t, times[1].Sub(times[0]), tt.minGap)
			}
		})
	}
}

func TestDoWithRetry_Errors(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		base    time.Duration
		newBody func() io.Reader
		wantIs  error
		wantMsg string
	}{
		{
			name:    "context expires during backoff",
			timeout: 50 * time.Millisecond,
			base:    time.Second,
			wantIs:  context.DeadlineExceeded,
		},
		{
			name:    "body without GetBody cannot be replayed",
			newBody: func() io.Reader { return io.NopCloser(strings.NewReader("x")) },
			base:    time.Millisecond,
			wantMsg: "cannot be replayed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(&scriptedServer{statuses: []int{http.StatusTooManyRequests}})
			defer ts.Close()

			old := RetryBaseDelay
			RetryBaseDelay = tt.base
			defer func() { RetryBaseDelay = old }()

			ctx := context.Background()
			if tt.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, tt.timeout)
				defer cancel()
			}

			method, body := http.MethodGet, io.Reader(nil)
			if tt.newBody != nil {
				method, body = http.MethodPost, tt.newBody()
			}
			req, err := http.NewRequest(method, ts.URL, body)
			require.NoError(t, err)

			_, err = DoWithRetry(ctx, ts.Client(), req, 3)
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantMsg != "" {
				assert.ErrorContains(t, err, tt.wantMsg)
			}
		})
	}
}

func TestRetryAfter(t *testing.T) {
	old := MaxRetryAfter
	MaxRetryAfter = 10 * time.Second
	defer func() { MaxRetryAfter = old }()

	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"3", 3 * time.Second},
		{"0", 0},
		{"-1", 0},
		{"soon", 0},
		{"Wed, 21 Oct 2015 07:28:00 GMT", 0},
		{"3600", 10 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, retryAfter(tt.in))
		})
	}
}
