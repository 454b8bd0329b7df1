package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/ports"
)

// Me resolves the current session. 401 and success:false are answers, not
// errors.
func (c *Client) Me(ctx context.Context) (ports.IdentityResponse, error) {
	var env envelope
	status, err := c.do(ctx, "me", http.MethodGet, "/api/me", nil, &env)
	if err != nil {
		var re *domain.RemoteError
		if errors.As(err, &re) && re.Status == http.StatusUnauthorized {
			return ports.IdentityResponse{}, nil
		}
		return ports.IdentityResponse{}, err
	}
	switch {
	case env.ok() && env.User != nil:
		return ports.IdentityResponse{OK: true, User: env.User}, nil
	case status == http.StatusUnauthorized, env.Success != nil && status < http.StatusInternalServerError:
		return ports.IdentityResponse{Message: env.message()}, nil
	default:
		return ports.IdentityResponse{}, rejection("me", status, env)
	}
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (ports.IdentityResponse, error) {
	return c.authenticate(ctx, "login", "/api/login", creds)
}

func (c *Client) Signup(ctx context.Context, creds domain.Credentials) (ports.IdentityResponse, error) {
	return c.authenticate(ctx, "signup", "/api/signup", creds)
}

func (c *Client) authenticate(ctx context.Context, op, path string, creds domain.Credentials) (ports.IdentityResponse, error) {
	var env envelope
	status, err := c.do(ctx, op, http.MethodPost, path, creds, &env)
	if err != nil {
		var re *domain.RemoteError
		if errors.As(err, &re) && re.Status < http.StatusInternalServerError {
			return ports.IdentityResponse{Message: re.Message}, nil
		}
		return ports.IdentityResponse{}, err
	}
	if env.Success == nil {
		return ports.IdentityResponse{}, rejection(op, status, env)
	}
	if !env.ok() {
		return ports.IdentityResponse{Message: env.message()}, nil
	}
	if env.Token != "" && c.tokens != nil {
		if err := c.tokens.Save(ctx, env.Token); err != nil {
			c.log.Warn().Err(err).Str("op", op).Msg("bearer token not stored")
		}
	}
	return ports.IdentityResponse{OK: true, Message: env.Message, User: env.User}, nil
}

// Logout ends the backend session. Local credentials are dropped even when
// the backend cannot be reached.
func (c *Client) Logout(ctx context.Context) error {
	if c.tokens != nil {
		if err := c.tokens.Clear(ctx); err != nil {
			c.log.Warn().Err(err).Msg("bearer token not cleared")
		}
	}
	var env envelope
	status, err := c.do(ctx, "logout", http.MethodPost, "/api/logout", nil, &env)
	if err != nil {
		return err
	}
	if status >= http.StatusBadRequest {
		return rejection("logout", status, env)
	}
	return nil
}

func (c *Client) UpdateDetails(ctx context.Context, d domain.DeliveryDetails) error {
	var env envelope
	status, err := c.do(ctx, "update user details", http.MethodPost, "/api/update-user-details", d, &env)
	if err != nil {
		return err
	}
	if !env.ok() {
		return rejection("update user details", status, env)
	}
	return nil
}
