// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"ok", nil, http.StatusOK, ""},
		{"bad request", BadRequest(errors.New("bad input")), http.StatusBadRequest, "bad input\n"},
		{"unauthorized", Unauthorized(errors.New("who")), http.StatusUnauthorized, "who\n"},
		{"forbidden", Forbidden(errors.New("no")), http.StatusForbidden, "no\n"},
		{"conflict", errors.Wrap(Conflict(errors.New("taken")), "call"), http.StatusConflict, "taken\n"},
		{"no cause", HTTPError(nil, http.StatusNotFound), http.StatusNotFound, ""},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "boom\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
				return tt.err
			})(rr, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.body, rr.Body.String())
			if tt.err != nil {
				assert.Equal(t, tt.status, StatusOf(tt.err))
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"a":1}`), &v))
	assert.Equal(t, 1, v.A)

	assert.Error(t, ParseJSON(strings.NewReader(`{"a":1,"b":2}`), &v), "unknown fields are rejected")
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rr, M{"a": 1}))
	assert.Equal(t, JSONContentType, rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"a":1}`, rr.Body.String())
}
