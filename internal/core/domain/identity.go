package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleOperator   = "operator"
	RoleSuperAdmin = "super_admin"
)

// Identity is the resolved record describing who is signed in and what
// privileges they hold. It is a closed union: the concrete type is either
// *Passenger or *Administrator, so an admin-privileged record cannot exist
// without the Administrator shape.
type Identity interface {
	UserID() int64
	UserEmail() string
	RoleNames() []string

	isIdentity()
}

// Passenger is the end-user variant of Identity.
type Passenger struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Passenger) UserID() int64       { return p.ID }
func (p *Passenger) UserEmail() string   { return p.Email }
func (p *Passenger) RoleNames() []string { return p.Roles }
func (p *Passenger) isIdentity()         {}

// Administrator is the back-office variant of Identity.
type Administrator struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	Username         string     `json:"username"`
	FullName         string     `json:"full_name"`
	Roles            []string   `json:"roles"`
	Active           bool       `json:"is_active"`
	TwoFactorEnabled bool       `json:"is_2fa_enabled"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (a *Administrator) UserID() int64       { return a.ID }
func (a *Administrator) UserEmail() string   { return a.Email }
func (a *Administrator) RoleNames() []string { return a.Roles }
func (a *Administrator) isIdentity()         {}

// IsAdministrator reports whether id carries admin privileges. The variant is
// authoritative; role names are advisory and never grant admin access.
func IsAdministrator(id Identity) bool {
	_, ok := id.(*Administrator)
	return ok
}

// HasRole reports whether id holds the named role. Always false for a nil
// identity.
func HasRole(id Identity, role string) bool {
	if id == nil {
		return false
	}
	for _, r := range id.RoleNames() {
		if r == role {
			return true
		}
	}
	return false
}
