package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"social-api/internal/auth"
	"social-api/internal/shared/apperr"

	"github.com/go-playground/validator/v10"
)

type ctxKey string

const (
	userKey  ctxKey = "httpx.user_id"
	tokenKey ctxKey = "httpx.token"
)

type HandlerFunc func(http.ResponseWriter, *http.Request) error

type APIError struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Status int    `json:"status"`
}

// Wrap converts handler errors into the structured JSON error payload.
// Unknown errors are logged and reported as a generic 500 so repository
// internals never reach the client.
func Wrap(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		var verrs validator.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			WriteError(w, http.StatusUnprocessableEntity, err, "validation_failed")
		case errors.Is(err, apperr.ErrValidation):
			WriteError(w, http.StatusUnprocessableEntity, err, "validation_failed")
		case errors.Is(err, apperr.ErrUnauthorized):
			WriteError(w, http.StatusUnauthorized, err, "unauthorized")
		case errors.Is(err, apperr.ErrForbidden):
			WriteError(w, http.StatusForbidden, err, "forbidden")
		case errors.Is(err, apperr.ErrNotFound):
			WriteError(w, http.StatusNotFound, err, "not_found")
		case errors.Is(err, context.DeadlineExceeded):
			WriteError(w, http.StatusServiceUnavailable, errors.New("temporarily unavailable"), "transient")
		default:
			log.Printf("internal error: %s %s: %v", r.Method, r.URL.Path, err)
			WriteError(w, http.StatusInternalServerError, errors.New("internal error"), "internal")
		}
	})
}

func Decode[T any](r *http.Request) (T, error) {
	var t T
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		return t, apperr.Validation("malformed request body")
	}
	return t, nil
}

func WriteJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, err error, reason string) {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}
	WriteJSON(w, APIError{Error: err.Error(), Reason: reason, Status: status}, status)
}

// AuthMiddleware resolves the actor from the bearer token and stores the
// user id and parsed token in the request context. All failures are 401.
func AuthMiddleware(a *auth.Auth, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			WriteError(w, http.StatusUnauthorized, apperr.ErrUnauthorized, "missing_bearer")
			return
		}
		tok, err := a.Parse(r.Context(), strings.TrimSpace(h[7:]))
		if err != nil {
			WriteError(w, http.StatusUnauthorized, apperr.ErrUnauthorized, "invalid_token")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, tok.UserID)
		ctx = context.WithValue(ctx, tokenKey, tok)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserFromCtx(r *http.Request) (uint, error) {
	uid, _ := r.Context().Value(userKey).(uint)
	if uid == 0 {
		return 0, apperr.ErrUnauthorized
	}
	return uid, nil
}

func TokenFromCtx(r *http.Request) (*auth.Token, error) {
	tok, _ := r.Context().Value(tokenKey).(*auth.Token)
	if tok == nil {
		return nil, apperr.ErrUnauthorized
	}
	return tok, nil
}

// WithUser is a test helper for exercising handlers behind the middleware.
func WithUser(r *http.Request, uid uint) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userKey, uid))
}

func QueryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func PathUint(r *http.Request, name string) (uint, error) {
	n, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil || n == 0 {
		return 0, apperr.Validation("invalid %s", name)
	}
	return uint(n), nil
}
