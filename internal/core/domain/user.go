package domain

import "strings"

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is the authenticated shopper as reported by the backend.
type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Pincode  string `json:"pincode"`
	Phone    string `json:"phone"`
	Role     string `json:"role,omitempty"`
}

// HasRole reports whether the user carries the given role.
func (u User) HasRole(role string) bool {
	return u.Role == role
}

// HasDeliveryDetails reports whether every field an order needs is present.
func (u User) HasDeliveryDetails() bool {
	for _, v := range []string{u.Name, u.Address, u.Pincode, u.Phone} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// UserPatch is a shallow profile update: every non-nil field overwrites the
// matching field of the session user. Identity fields (username, role) are
// not patchable.
type UserPatch struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Pincode *string `json:"pincode,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// Apply returns u with the patch merged in.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.Pincode != nil {
		u.Pincode = *p.Pincode
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	return u
}

// Credentials are what login and signup send to the backend.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// DeliveryDetails is the address block checkout needs before an order can be
// placed.
type DeliveryDetails struct {
	Name    string `json:"name"    validate:"required"`
	Address string `json:"address" validate:"required"`
	Pincode string `json:"pincode" validate:"required,numeric,len=6"`
	Phone   string `json:"phone"   validate:"required,numeric,len=10"`
}

// Patch converts the details into a full-overwrite UserPatch.
func (d DeliveryDetails) Patch() UserPatch {
	return UserPatch{Name: &d.Name, Address: &d.Address, Pincode: &d.Pincode, Phone: &d.Phone}
}

// RolePolicy assigns roles to user payloads that arrive without one.
type RolePolicy struct {
	admins map[string]struct{}
}

// NewRolePolicy treats the listed usernames as administrators.
func NewRolePolicy(adminUsernames ...string) RolePolicy {
	admins := make(map[string]struct{}, len(adminUsernames))
	for _, name := range adminUsernames {
		if name = strings.TrimSpace(name); name != "" {
			admins[name] = struct{}{}
		}
	}
	return RolePolicy{admins: admins}
}

// Apply keeps a role the backend already supplied and fills it in otherwise.
func (p RolePolicy) Apply(u User) User {
	if u.Role != "" {
		return u
	}
	if _, ok := p.admins[u.Username]; ok {
		u.Role = RoleAdmin
	} else {
		u.Role = RoleCustomer
	}
	return u
}

// AuthResult is the outcome of a login or signup attempt. It never carries a
// Go error: failures are reported through OK and Message.
type AuthResult struct {
	OK      bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}
