package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/ports"
)

type SessionHandler struct {
	session ports.SessionStore
}

func NewSessionHandler(session ports.SessionStore) *SessionHandler {
	return &SessionHandler{session: session}
}

// Get returns the session as currently resolved.
//
// @Summary      Get the session
// @Tags         session
// @Produce      json
// @Success      200  {object}  domain.Session
// @Router       /v1/session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.session.Snapshot())
}

// Check asks the backend who is signed in.
//
// @Summary      Resolve the session
// @Tags         session
// @Produce      json
// @Success      200  {object}  domain.Session
// @Router       /v1/session/check [post]
func (h *SessionHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, h.session.CheckSession(c.Request().Context()))
}

// Login signs in with a username and password.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  authResponse
// @Router       /v1/session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	creds, err := bindCredentials(c)
	if err != nil {
		return err
	}
	return authReply(c, h.session.Login(c.Request().Context(), creds), http.StatusUnauthorized)
}

// Signup registers a new account and signs in.
//
// @Summary      Sign up
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  authResponse
// @Router       /v1/session/signup [post]
func (h *SessionHandler) Signup(c echo.Context) error {
	creds, err := bindCredentials(c)
	if err != nil {
		return err
	}
	return authReply(c, h.session.Signup(c.Request().Context(), creds), http.StatusBadRequest)
}

// Logout ends the session. The result is always anonymous.
//
// @Summary      Logout
// @Tags         session
// @Produce      json
// @Success      200  {object}  domain.Session
// @Router       /v1/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, h.session.Logout(c.Request().Context()))
}

// UpdateUser merges the given fields into the signed-in user.
//
// @Summary      Update the session user
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      domain.UserPatch  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/session/user [patch]
func (h *SessionHandler) UpdateUser(c echo.Context) error {
	var patch domain.UserPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	u, err := h.session.UpdateUser(patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func bindCredentials(c echo.Context) (domain.Credentials, error) {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return domain.Credentials{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.Credentials{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return domain.Credentials{Username: req.Username, Password: req.Password}, nil
}

func authReply(c echo.Context, res domain.AuthResult, failStatus int) error {
	status := http.StatusOK
	if !res.OK {
		status = failStatus
	}
	return c.JSON(status, authResponse{Success: res.OK, Message: res.Message, User: res.User})
}
