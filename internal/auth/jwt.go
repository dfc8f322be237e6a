package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrInvalidToken = errors.New("invalid token")

// Token is a parsed, validated bearer token.
type Token struct {
	UserID    uint
	JTI       string
	ExpiresAt time.Time
}

// Auth issues and validates HS256 bearer tokens. Revocation is backed by
// a Redis denylist keyed by jti; without Redis, logout is a client-side
// concern only.
type Auth struct {
	secret []byte
	ttl    time.Duration
	rdb    *redis.Client
}

func New(secret string, ttl time.Duration, rdb *redis.Client) *Auth {
	return &Auth{secret: []byte(secret), ttl: ttl, rdb: rdb}
}

func (a *Auth) Make(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(a.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Auth) Parse(ctx context.Context, tokenStr string) (*Token, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return a.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	uid, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || uid == 0 {
		return nil, ErrInvalidToken
	}
	jti, _ := mc["jti"].(string)
	expf, _ := mc["exp"].(float64)

	t := &Token{UserID: uint(uid), JTI: jti, ExpiresAt: time.Unix(int64(expf), 0)}
	if a.revoked(ctx, t.JTI) {
		return nil, ErrInvalidToken
	}
	return t, nil
}

// Revoke denylists the token's jti for the remainder of its lifetime.
func (a *Auth) Revoke(ctx context.Context, t *Token) error {
	if a.rdb == nil || t.JTI == "" {
		return nil
	}
	ttl := time.Until(t.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return a.rdb.Set(ctx, revokeKey(t.JTI), "1", ttl).Err()
}

func (a *Auth) revoked(ctx context.Context, jti string) bool {
	if a.rdb == nil || jti == "" {
		return false
	}
	n, err := a.rdb.Exists(ctx, revokeKey(jti)).Result()
	return err == nil && n > 0
}

func revokeKey(jti string) string { return "auth:revoked:" + jti }
