// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stress

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/nagolos/internal/httputil"
	"github.com/pdiddy/nagolos/pkg/types"
)

func TestHTTPStressifier(t *testing.T) {
	var got stressRequest
	var auth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"text": "ма" + acute + "ма"})
	}))
	defer ts.Close()

	h := &HTTPStressifier{
		Client:  ts.Client(),
		URL:     ts.URL,
		Token:   "tok_123",
		Options: Options{Symbol: types.SymbolCombining, OnAmbiguity: types.AmbiguityFirst},
	}
	out, err := h.Transform(context.Background(), "мама")
	require.NoError(t, err)

	assert.Equal(t, "ма"+acute+"ма", out)
	assert.Equal(t, "Bearer tok_123", auth)
	assert.Equal(t, stressRequest{Text: "мама", Symbol: "combining", OnAmbiguity: "first"}, got)
}

func TestHTTPStressifierRetriesRateLimit(t *testing.T) {
	old := httputil.RetryBaseDelay
	httputil.RetryBaseDelay = time.Millisecond
	defer func() { httputil.RetryBaseDelay = old }()

	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req stressRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text != "мама" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"text": req.Text})
	}))
	defer ts.Close()

	h := &HTTPStressifier{Client: ts.Client(), URL: ts.URL, MaxRetries: 2}
	out, err := h.Transform(context.Background(), "мама")
	require.NoError(t, err)
	assert.Equal(t, "мама", out)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestHTTPStressifierErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "server error with body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "model not loaded", http.StatusServiceUnavailable)
			},
			wantErr: "HTTP 503: model not loaded",
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantErr: "stress service returned HTTP 401",
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte("{not json"))
			},
			wantErr: "parsing stress response",
		},
		{
			name: "missing text",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"result":"x"}`))
			},
			wantErr: "no text field",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			h := &HTTPStressifier{Client: ts.Client(), URL: ts.URL}
			_, err := h.Transform(context.Background(), "мама")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHTTPStressifierBlankUnits(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	h := &HTTPStressifier{Client: ts.Client(), URL: ts.URL}
	out, err := h.Transform(context.Background(), "  ")
	require.NoError(t, err)
	assert.Equal(t, "  ", out)
	assert.Zero(t, atomic.LoadInt32(&calls))
}
