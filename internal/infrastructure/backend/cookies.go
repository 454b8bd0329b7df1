package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/ports"
)

// CookieKey is the local storage key of the backend session cookies.
const CookieKey = "backend_cookies"

const cookieSaveTimeout = 2 * time.Second

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PersistentJar is a cookie jar whose cookies for the backend origin survive
// restarts, so a CLI login carries over to the next invocation.
type PersistentJar struct {
	mu   sync.Mutex
	jar  *cookiejar.Jar
	kv   ports.KeyValueStore
	base *url.URL
	log  zerolog.Logger
}

// NewPersistentJar restores previously saved cookies for base.
func NewPersistentJar(ctx context.Context, kv ports.KeyValueStore, base *url.URL, log zerolog.Logger) (*PersistentJar, error) {
	jar, err := NewJar()
	if err != nil {
		return nil, err
	}
	j := &PersistentJar{jar: jar, kv: kv, base: base, log: log}

	raw, err := kv.Get(ctx, CookieKey)
	switch {
	case errors.Is(err, domain.ErrKeyNotFound):
		return j, nil
	case err != nil:
		return nil, fmt.Errorf("load cookies: %w", err)
	}
	var stored []storedCookie
	if err := json.Unmarshal(raw, &stored); err != nil {
		log.Warn().Err(err).Msg("stored cookies unreadable, starting without a session")
		return j, nil
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, sc := range stored {
		cookies = append(cookies, &http.Cookie{Name: sc.Name, Value: sc.Value, Path: "/"})
	}
	jar.SetCookies(base, cookies)
	return j, nil
}

func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}

// SetCookies stores the cookies and writes the backend's current set through
// to local storage. Write failures are logged; the in-memory jar stays valid.
func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.jar.SetCookies(u, cookies)

	current := j.jar.Cookies(j.base)
	ctx, cancel := context.WithTimeout(context.Background(), cookieSaveTimeout)
	defer cancel()

	if len(current) == 0 {
		if err := j.kv.Delete(ctx, CookieKey); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
			j.log.Warn().Err(err).Msg("failed to drop stored cookies")
		}
		return
	}
	stored := make([]storedCookie, 0, len(current))
	for _, c := range current {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		j.log.Warn().Err(err).Msg("failed to encode cookies")
		return
	}
	if err := j.kv.Set(ctx, CookieKey, raw); err != nil {
		j.log.Warn().Err(err).Msg("failed to store cookies")
	}
}
