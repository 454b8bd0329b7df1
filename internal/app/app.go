// Package app wires the storefront core: local storage, the backend client,
// the cart and session stores and the services built on them.
package app

import (
	"context"
	"fmt"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/Slganeshkarthik/AgriConnect/internal/api"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/ports"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/service"
	"github.com/Slganeshkarthik/AgriConnect/internal/infrastructure/backend"
	"github.com/Slganeshkarthik/AgriConnect/internal/pkg/config"
	"github.com/Slganeshkarthik/AgriConnect/internal/pkg/validation"
)

// App owns one shopper's state. Build it with New and release it with Close.
type App struct {
	Cart     *service.CartStore
	Session  *service.SessionStore
	Checkout *service.CheckoutService
	Orders   *service.OrderService
	Catalog  ports.CatalogClient

	storage Storage
	backend *backend.Client
	log     zerolog.Logger
}

// New opens storage, restores the cart and backend cookies, and resolves the
// session once. A backend that cannot be reached leaves the session anonymous;
// it does not fail New.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	storage, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	a, err := build(ctx, cfg, storage, log)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("app: %w", err), storage.Close())
	}
	return a, nil
}

func build(ctx context.Context, cfg *config.Config, storage Storage, log zerolog.Logger) (*App, error) {
	base, err := url.Parse(cfg.Backend.URL)
	if err != nil {
		return nil, fmt.Errorf("backend url: %w", err)
	}
	jar, err := backend.NewPersistentJar(ctx, storage, base, log)
	if err != nil {
		return nil, err
	}
	client, err := backend.NewClient(cfg.Backend.URL,
		backend.WithJar(jar),
		backend.WithTokenStore(backend.NewTokenStore(storage)),
		backend.WithTimeout(cfg.Backend.Timeout),
		backend.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	cart := service.NewCartStore(ctx, storage, log)
	session := service.NewSessionStore(client, domain.NewRolePolicy(cfg.Backend.AdminUsernames...), log)
	a := &App{
		Cart:     cart,
		Session:  session,
		Checkout: service.NewCheckoutService(cart, session, client, client, validation.New(), log),
		Orders:   service.NewOrderService(session, client, log),
		Catalog:  client,
		storage:  storage,
		backend:  client,
		log:      log,
	}

	s := session.CheckSession(ctx)
	log.Info().
		Str("session", string(s.State)).
		Int("cart_items", cart.Count()).
		Str("backend", base.Redacted()).
		Str("storage", cfg.Storage.Driver).
		Msg("storefront core ready")
	return a, nil
}

// Router returns the local HTTP API over this app.
func (a *App) Router() *echo.Echo {
	return api.NewRouter(api.Deps{
		Cart:     a.Cart,
		Session:  a.Session,
		Checkout: a.Checkout,
		Orders:   a.Orders,
		Health: map[string]ports.Pinger{
			"storage": a.storage,
			"backend": a.backend,
		},
		Log: a.log,
	})
}

// Close releases the storage backend.
func (a *App) Close() error {
	var err error
	if a.storage != nil {
		err = multierr.Append(err, a.storage.Close())
	}
	return err
}
