package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/ports"
)

// TokenKey is the local storage key of the optional bearer token.
const TokenKey = "auth_token"

// TokenStore keeps a bearer token issued at login. JWTs are inspected for
// expiry without verification: the signing key lives on the backend, which
// remains the only judge of validity. Opaque tokens are sent as-is.
type TokenStore struct {
	kv  ports.KeyValueStore
	now func() time.Time
}

func NewTokenStore(kv ports.KeyValueStore) *TokenStore {
	return &TokenStore{kv: kv, now: time.Now}
}

func (ts *TokenStore) Save(ctx context.Context, token string) error {
	if err := ts.kv.Set(ctx, TokenKey, []byte(strings.TrimSpace(token))); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (ts *TokenStore) Clear(ctx context.Context) error {
	if err := ts.kv.Delete(ctx, TokenKey); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Bearer returns the stored token unless it is missing or expired. An
// expired token is removed.
func (ts *TokenStore) Bearer(ctx context.Context) (string, bool) {
	raw, err := ts.kv.Get(ctx, TokenKey)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", false
	}
	if expired(token, ts.now()) {
		_ = ts.Clear(ctx)
		return "", false
	}
	return token, true
}

func expired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.After(now)
}
