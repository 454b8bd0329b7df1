package domain

// RouteKind classifies a navigation target by who may reach it.
type RouteKind string

const (
	RoutePublic        RouteKind = "public"
	RouteAuthenticated RouteKind = "authenticated"
	RouteAdmin         RouteKind = "admin"
)

// Decision is the guard outcome. Defer means the session is still unresolved
// and the caller should show a loading state and ask again.
type Decision string

const (
	Allow Decision = "allow"
	Deny  Decision = "deny"
	Defer Decision = "defer"
)

// CanAccess decides whether a route of the given kind is reachable. Public
// routes ignore the session entirely.
func CanAccess(kind RouteKind, s Session) Decision {
	if kind == RoutePublic {
		return Allow
	}
	if !s.Resolved() {
		return Defer
	}
	if !s.Authenticated() {
		return Deny
	}
	switch kind {
	case RouteAuthenticated:
		return Allow
	case RouteAdmin:
		if s.User.HasRole(RoleAdmin) {
			return Allow
		}
	}
	return Deny
}

// Authorize is CanAccess expressed as an error for service code:
// ErrSessionUnresolved, ErrNotAuthenticated or ErrForbidden.
func Authorize(kind RouteKind, s Session) error {
	switch CanAccess(kind, s) {
	case Allow:
		return nil
	case Defer:
		return ErrSessionUnresolved
	}
	if !s.Authenticated() {
		return ErrNotAuthenticated
	}
	return ErrForbidden
}
