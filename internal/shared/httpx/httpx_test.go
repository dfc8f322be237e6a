package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"social-api/internal/shared/apperr"
	"social-api/internal/shared/httpx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doWrapped(t *testing.T, err error) (*httptest.ResponseRecorder, httpx.APIError) {
	t.Helper()
	h := httpx.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		return err
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	var payload httpx.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return rec, payload
}

func TestWrapStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"NotFound", apperr.NotFound("post"), http.StatusNotFound},
		{"Forbidden", apperr.Forbidden("nope"), http.StatusForbidden},
		{"Unauthorized", apperr.ErrUnauthorized, http.StatusUnauthorized},
		{"Validation", apperr.Validation("bad input"), http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, payload := doWrapped(t, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.status, payload.Status)
		})
	}
}

func TestWrapClassifiesTimeoutAsTransient(t *testing.T) {
	rec, payload := doWrapped(t, fmt.Errorf("list posts: %w", context.DeadlineExceeded))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "transient", payload.Reason)
	assert.NotContains(t, rec.Body.String(), "list posts")
}

func TestWrapHidesInternalErrors(t *testing.T) {
	rec, payload := doWrapped(t, errors.New("pq: connection refused to 10.0.0.5"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", payload.Error)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestWrapNoErrorWritesNothingExtra(t *testing.T) {
	h := httpx.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		httpx.WriteJSON(w, map[string]string{"ok": "yes"}, http.StatusCreated)
		return nil
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"ok":"yes"}`, rec.Body.String())
}

func TestUserFromCtx(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x", nil)

	_, err := httpx.UserFromCtx(r)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	uid, err := httpx.UserFromCtx(httpx.WithUser(r, 9))
	require.NoError(t, err)
	assert.Equal(t, uint(9), uid)
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x?page=3&junk=abc", nil)
	assert.Equal(t, 3, httpx.QueryInt(r, "page", 1))
	assert.Equal(t, 1, httpx.QueryInt(r, "junk", 1))
	assert.Equal(t, 1, httpx.QueryInt(r, "missing", 1))
}
