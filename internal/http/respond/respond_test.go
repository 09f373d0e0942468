package respond_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
	"github.com/MrJamesThe3rd/gastrack/internal/http/respond"
)

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   map[string]any
		retryAfter bool
	}{
		{
			name:       "StateConflict",
			err:        apperror.StateConflict([]apperror.Conflict{{ID: "CYL1001", Status: "empty"}}, "are not available for dispatch"),
			wantStatus: http.StatusBadRequest,
			wantBody: map[string]any{
				"error":     "CYL1001 (empty) are not available for dispatch",
				"kind":      "state_conflict",
				"ids":       []any{"CYL1001"},
				"conflicts": []any{map[string]any{"id": "CYL1001", "status": "empty"}},
			},
		},
		{
			name:       "NotFoundInBatch",
			err:        apperror.NotFoundInBatch([]string{"CYL1"}, []string{"CYL9"}, "CYL9 not found in inventory"),
			wantStatus: http.StatusBadRequest,
			wantBody: map[string]any{
				"error":   "CYL9 not found in inventory",
				"kind":    "not_found",
				"ids":     []any{"CYL9"},
				"found":   []any{"CYL1"},
				"missing": []any{"CYL9"},
			},
		},
		{
			name:       "NotFoundSingle",
			err:        apperror.NotFound([]string{"CYL9"}, "CYL9 not found in inventory"),
			wantStatus: http.StatusNotFound,
			wantBody: map[string]any{
				"error":   "CYL9 not found in inventory",
				"kind":    "not_found",
				"ids":     []any{"CYL9"},
				"missing": []any{"CYL9"},
			},
		},
		{
			name:       "StoreHidesCause",
			err:        apperror.Store("dispatch", errors.New("pq: password authentication failed")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"error": "dispatch failed", "kind": "store"},
		},
		{
			name:       "Timeout",
			err:        apperror.Store("dispatch", fmt.Errorf("locking: %w", context.DeadlineExceeded)),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   map[string]any{"error": "dispatch failed, please retry", "kind": "store"},
			retryAfter: true,
		},
		{
			name:       "Foreign",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"error": "request failed", "kind": "store"},
		},
		{
			name:       "Unauthenticated",
			err:        apperror.Unauthenticated("token expired"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   map[string]any{"error": "token expired", "kind": "unauthenticated"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond.Error(rec, httptest.NewRequest(http.MethodPost, "/x", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.retryAfter, rec.Header().Get("Retry-After") != "")

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=worker admin"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "Valid", body: `{"username":"ana","role":"admin"}`},
		{name: "Empty", body: ``, wantErr: "request body is required"},
		{name: "Malformed", body: `{"username":`, wantErr: "invalid request body"},
		{name: "Required", body: `{}`, wantErr: "username is required"},
		{name: "OneOf", body: `{"username":"ana","role":"root"}`, wantErr: "role must be one of worker admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst loginRequest

			err := respond.Decode(req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.KindValidation))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDateRange(t *testing.T) {
	r, err := respond.DateRange(url.Values{"start": {"2026-01-01"}, "end": {"2026-01-31"}})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *r.Start)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), *r.End)

	r, err = respond.DateRange(url.Values{"end": {"2026-01-31T12:00:00Z"}})
	require.NoError(t, err)
	assert.Nil(t, r.Start)
	assert.Equal(t, time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC), *r.End)

	_, err = respond.DateRange(url.Values{"start": {"yesterday"}})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}
