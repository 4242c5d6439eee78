// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggerMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		enabled   bool
		threshold time.Duration
		shouldLog bool
	}{
		{
			name: "enabled - fast ok response",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte("OK"))
			},
			enabled:   true,
			shouldLog: true,
		},
		{
			name: "disabled - fast ok response",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte("OK"))
			},
			shouldLog: false,
		},
		{
			name: "disabled - slow response",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				time.Sleep(20 * time.Millisecond)
				w.Write([]byte("OK"))
			},
			threshold: time.Millisecond,
			shouldLog: true,
		},
		{
			name: "disabled - server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			shouldLog: true,
		},
		{
			name: "disabled - client error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "bad", http.StatusBadRequest)
			},
			shouldLog: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.NewLogger(log.JSONHandler(&buf))

			var enabled atomic.Bool
			enabled.Store(tt.enabled)

			var seen string
			handler := RequestLoggerMiddleware(logger, &enabled, tt.threshold)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				seen = string(body)
				tt.handler(w, r)
			}))

			req := httptest.NewRequest(http.MethodPost, "/pool/deposit", strings.NewReader(`{"sender":"0x01"}`))
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, `{"sender":"0x01"}`, seen, "body is still readable by the handler")
			if tt.shouldLog {
				assert.Contains(t, buf.String(), "API Request")
				assert.Contains(t, buf.String(), "/pool/deposit")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
