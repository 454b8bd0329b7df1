package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// fakeBackend mimics the Flask session endpoints.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/me", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err != nil || c.Value != "ravi" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": map[string]any{"username": "ravi", "name": nil}})
	})
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid credentials"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: body["username"], Path: "/"})
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": map[string]any{"username": body["username"]}})
	})
	mux.HandleFunc("/api/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "", Path: "/", MaxAge: -1})
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
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

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient(baseURL, opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestNewClient_RejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "  ", "ftp://backend"} {
		if _, err := NewClient(raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestClient_SessionCookieFlow(t *testing.T) {
	srv := fakeBackend(t)
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	me, err := c.Me(ctx)
	if err != nil || me.OK {
		t.Fatalf("expected anonymous answer, got %+v err=%v", me, err)
	}

	login, err := c.Login(ctx, domain.Credentials{Username: "ravi", Password: "secret"})
	if err != nil || !login.OK || login.User.Username != "ravi" {
		t.Fatalf("unexpected login: %+v err=%v", login, err)
	}

	me, err = c.Me(ctx)
	if err != nil || !me.OK || me.User.Username != "ravi" {
		t.Fatalf("expected session cookie to be sent, got %+v err=%v", me, err)
	}

	if err := c.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if me, _ = c.Me(ctx); me.OK {
		t.Error("expected anonymous after logout")
	}
}

func TestClient_LoginRejectedCarriesMessage(t *testing.T) {
	srv := fakeBackend(t)
	c := newTestClient(t, srv.URL)

	res, err := c.Login(context.Background(), domain.Credentials{Username: "ravi", Password: "wrong"})
	if err != nil {
		t.Fatalf("rejection must not be an error: %v", err)
	}
	if res.OK || res.Message != "Invalid credentials" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestClient_NetworkFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := newTestClient(t, base, WithTimeout(time.Second))
	if _, err := c.Me(context.Background()); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestClient_SendsRequestIDAndBearer(t *testing.T) {
	var gotID, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(requestIDHeader)
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "orders": []any{}})
	}))
	defer srv.Close()

	kv := newMemKV()
	kv.data[TokenKey] = []byte("opaque-token")
	c := newTestClient(t, srv.URL, WithTokenStore(NewTokenStore(kv)))

	if _, err := c.AdminOrders(context.Background()); err != nil {
		t.Fatalf("admin orders: %v", err)
	}
	if gotID == "" {
		t.Error("expected X-Request-ID header")
	}
	if gotAuth != "Bearer opaque-token" {
		t.Errorf("unexpected Authorization header %q", gotAuth)
	}
}

func TestClient_PlaceOrder(t *testing.T) {
	var body struct {
		Cart []map[string]any `json:"cart"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/place-order" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Order placed successfully!", "order_number": "ORD12345678"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	placed, err := c.PlaceOrder(context.Background(), []domain.OrderLine{{ID: "p1", Name: "Rice", Quantity: 2, Qty: 2}})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if placed.OrderNumber != "ORD12345678" {
		t.Errorf("unexpected order number %q", placed.OrderNumber)
	}
	if len(body.Cart) != 1 || body.Cart[0]["qty"] != float64(2) {
		t.Errorf("unexpected cart payload: %+v", body.Cart)
	}
}

func TestClient_PlaceOrderRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Please complete your delivery details"})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).PlaceOrder(context.Background(), nil)

	var re *domain.RemoteError
	if !errors.As(err, &re) || re.Status != http.StatusBadRequest || re.Message != "Please complete your delivery details" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Profile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"orders":[{"id":3,"order_number":"ORD1","total_amount":120.5,"status":"pending"}],"total_orders":1,"pending_orders":1,"completed_orders":0,"total_spent":120.5}`)
	}))
	defer srv.Close()

	p, err := newTestClient(t, srv.URL).Profile(context.Background())
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if len(p.Orders) != 1 || p.Orders[0].ID != "3" || p.Stats.Pending != 1 {
		t.Errorf("unexpected profile: %+v", p)
	}
	if p.TotalSpent.String() != "120.5" {
		t.Errorf("unexpected total spent %s", p.TotalSpent)
	}
}

func TestClient_UpdateOrderStatusSendsNumericID(t *testing.T) {
	var raw map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}))
	defer srv.Close()

	if err := newTestClient(t, srv.URL).UpdateOrderStatus(context.Background(), "42", domain.OrderShipped); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if string(raw["order_id"]) != "42" || string(raw["status"]) != `"shipped"` {
		t.Errorf("unexpected payload: order_id=%s status=%s", raw["order_id"], raw["status"])
	}
}

func TestClient_UpdateOrderStatusNonCanonicalIDStaysString(t *testing.T) {
	for _, id := range []domain.OrderID{"007", "+5", "ORD-9"} {
		var raw map[string]json.RawMessage
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&raw)
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
		}))

		err := newTestClient(t, srv.URL).UpdateOrderStatus(context.Background(), id, domain.OrderShipped)
		srv.Close()
		if err != nil {
			t.Fatalf("update status %q: %v", id, err)
		}
		want, _ := json.Marshal(string(id))
		if string(raw["order_id"]) != string(want) {
			t.Errorf("id %q: expected order_id %s, got %s", id, want, raw["order_id"])
		}
	}
}

func TestClient_ProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/7") {
			_, _ = io.WriteString(w, `{"id":7,"name":"Tomato","price":40,"seller_type":"farmer"}`)
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Product not found"})
	}))
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	p, err := c.Product(context.Background(), "7")
	if err != nil || p.Name != "Tomato" {
		t.Fatalf("unexpected product %+v err=%v", p, err)
	}

	_, err = c.Product(context.Background(), "99")
	var re *domain.RemoteError
	if !errors.As(err, &re) || re.Status != http.StatusNotFound || re.Message != "Product not found" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTokenStore_DropsExpiredJWT(t *testing.T) {
	kv := newMemKV()
	ts := NewTokenStore(kv)
	ctx := context.Background()

	expired := signed(t, time.Now().Add(-time.Minute))
	_ = ts.Save(ctx, expired)
	if _, ok := ts.Bearer(ctx); ok {
		t.Error("expected expired token to be rejected")
	}
	if _, ok := kv.data[TokenKey]; ok {
		t.Error("expected expired token to be removed")
	}

	fresh := signed(t, time.Now().Add(time.Hour))
	_ = ts.Save(ctx, fresh)
	if got, ok := ts.Bearer(ctx); !ok || got != fresh {
		t.Error("expected fresh token to be returned")
	}
}

func TestPersistentJar_SurvivesRestart(t *testing.T) {
	srv := fakeBackend(t)
	kv := newMemKV()
	base, _ := url.Parse(srv.URL)
	ctx := context.Background()

	jar, err := NewPersistentJar(ctx, kv, base, testLogger())
	if err != nil {
		t.Fatalf("jar: %v", err)
	}
	first := newTestClient(t, srv.URL, WithJar(jar))
	if res, _ := first.Login(ctx, domain.Credentials{Username: "ravi", Password: "secret"}); !res.OK {
		t.Fatalf("login failed: %+v", res)
	}

	jar2, err := NewPersistentJar(ctx, kv, base, testLogger())
	if err != nil {
		t.Fatalf("jar: %v", err)
	}
	second := newTestClient(t, srv.URL, WithJar(jar2))
	if me, err := second.Me(ctx); err != nil || !me.OK {
		t.Fatalf("expected restored session, got %+v err=%v", me, err)
	}

	_ = second.Logout(ctx)
	if _, ok := kv.data[CookieKey]; ok {
		t.Error("expected stored cookies to be dropped after logout")
	}
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "ravi",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("backend-only-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func testLogger() zerolog.Logger { return zerolog.Nop() }
