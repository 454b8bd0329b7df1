package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/shopspring/decimal"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
	"github.com/Slganeshkarthik/AgriConnect/internal/pkg/config"
)

// fakeBackend answers /api/me from the session cookie set by /api/login.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/me", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("session")
		if err != nil || c.Value == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": map[string]any{"username": c.Value}})
	})
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		http.SetCookie(w, &http.Cookie{Name: "session", Value: body["username"], Path: "/"})
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": map[string]any{"username": body["username"]}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func testConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	cfg, err := config.LoadWith(context.Background(), envconfig.MapLookuper(env))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func TestNew_RestoresCartAndSessionAcrossRestart(t *testing.T) {
	ctx := context.Background()
	srv := fakeBackend(t)
	env := map[string]string{
		"BACKEND_URL": srv.URL,
		"SQLITE_PATH": filepath.Join(t.TempDir(), "local.db"),
	}

	first, err := New(ctx, testConfig(t, env), zerolog.Nop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := first.Session.Snapshot().State; got != domain.SessionAnonymous {
		t.Fatalf("expected anonymous before login, got %q", got)
	}
	if res := first.Session.Login(ctx, domain.Credentials{Username: "ravi", Password: "secret"}); !res.OK {
		t.Fatalf("login failed: %+v", res)
	}
	if err := first.Cart.AddItem(ctx, domain.Product{ID: "1", Name: "Tomato", Price: domain.NewPrice(decimal.NewFromInt(40))}, 3); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := New(ctx, testConfig(t, env), zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })

	if got := second.Cart.Count(); got != 3 {
		t.Errorf("expected 3 units restored, got %d", got)
	}
	if got := second.Cart.Total().String(); got != "120" {
		t.Errorf("expected total 120, got %s", got)
	}
	s := second.Session.Snapshot()
	if !s.Authenticated() || s.User.Username != "ravi" {
		t.Errorf("expected session restored for ravi, got %+v", s)
	}
}

func TestNew_UnreachableBackendIsAnonymous(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	a, err := New(context.Background(), testConfig(t, map[string]string{
		"BACKEND_URL": addr,
		"SQLITE_PATH": ":memory:",
	}), zerolog.Nop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	s := a.Session.Snapshot()
	if s.State != domain.SessionAnonymous {
		t.Fatalf("expected anonymous, got %q", s.State)
	}
	if s.LastError == "" {
		t.Error("expected the transport failure to be recorded")
	}
}

func TestApp_RouterReadiness(t *testing.T) {
	srv := fakeBackend(t)
	a, err := New(context.Background(), testConfig(t, map[string]string{
		"BACKEND_URL": srv.URL,
		"SQLITE_PATH": ":memory:",
	}), zerolog.Nop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "etcd"}}
	if _, err := OpenStorage(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
