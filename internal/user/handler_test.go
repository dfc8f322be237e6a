package user_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"social-api/internal/auth"
	"social-api/internal/shared/httpx"
	"social-api/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *auth.Auth) {
	t.Helper()
	db := setupDB(t)
	svc := newService(t, db)
	a := auth.New("test-secret", time.Hour, nil)
	h := user.NewHandler(svc, a)

	mux := http.NewServeMux()
	mux.Handle("POST /register", httpx.Wrap(h.Register))
	mux.Handle("POST /login", httpx.Wrap(h.Login))
	mux.Handle("GET /user", httpx.AuthMiddleware(a, httpx.Wrap(h.Me)))
	mux.Handle("POST /logout", httpx.AuthMiddleware(a, httpx.Wrap(h.Logout)))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, a
}

func registerForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestRegisterLoginFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	body, contentType := registerForm(t, map[string]string{
		"name":                  "Ann",
		"email":                 "ann@x.com",
		"password":              "secret-password",
		"password_confirmation": "secret-password",
	})
	resp, err := http.Post(srv.URL+"/register", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var reg user.TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reg))
	require.NotEmpty(t, reg.Token)

	// The token identifies the registered user.
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/user", nil)
	req.Header.Set("Authorization", "Bearer "+reg.Token)
	meResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer meResp.Body.Close()
	require.Equal(t, http.StatusOK, meResp.StatusCode)

	var me user.User
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&me))
	assert.Equal(t, "ann@x.com", me.Email)

	// Login returns a token for the same user.
	loginBody, _ := json.Marshal(user.LoginReq{Email: "ann@x.com", Password: "secret-password"})
	loginResp, err := http.Post(srv.URL+"/login", "application/json", bytes.NewReader(loginBody))
	require.NoError(t, err)
	defer loginResp.Body.Close()
	assert.Equal(t, http.StatusOK, loginResp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("PasswordConfirmationMismatch", func(t *testing.T) {
		body, contentType := registerForm(t, map[string]string{
			"name":                  "Ann",
			"email":                 "ann2@x.com",
			"password":              "secret-password",
			"password_confirmation": "different-thing",
		})
		resp, err := http.Post(srv.URL+"/register", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("BadEmail", func(t *testing.T) {
		body, contentType := registerForm(t, map[string]string{
			"name":                  "Ann",
			"email":                 "not-an-email",
			"password":              "secret-password",
			"password_confirmation": "secret-password",
		})
		resp, err := http.Post(srv.URL+"/register", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/user")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
