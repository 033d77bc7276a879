package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of staff roles. Anything outside it is rejected.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDentist   Role = "dentist"
	RoleFrontdesk Role = "frontdesk"
)

// ErrUnknownRole is returned for any role value outside the closed set.
var ErrUnknownRole = errors.New("unknown role")

// Dashboard paths staff land on after login.
const (
	AdminDashboardPath     = "/admin/dashboard"
	DentistDashboardPath   = "/dentist/dashboard"
	FrontdeskDashboardPath = "/frontdesk/dashboard"
)

// DashboardPath maps a role to its post-login destination. The mapping is
// total over the closed enumeration and fails closed for anything else.
func (r Role) DashboardPath() (string, error) {
	switch r {
	case RoleAdmin:
		return AdminDashboardPath, nil
	case RoleDentist:
		return DentistDashboardPath, nil
	case RoleFrontdesk:
		return FrontdeskDashboardPath, nil
	default:
		return "", ErrUnknownRole
	}
}

// Valid reports whether the role is one of the known staff roles.
func (r Role) Valid() bool {
	_, err := r.DashboardPath()
	return err == nil
}

// AccountStatus is the account lifecycle state.
type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "inactive"
)

// Account is a staff credential record. Username and email are both unique,
// either works as the login identifier.
type Account struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	Username     string        `json:"username" db:"username"`
	Email        string        `json:"email" db:"email"`
	PasswordHash string        `json:"-" db:"password_hash"` // Never serialize in JSON
	FirstName    string        `json:"first_name" db:"first_name"`
	LastName     string        `json:"last_name" db:"last_name"`
	Role         Role          `json:"role" db:"role"`
	Status       AccountStatus `json:"status" db:"status"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// IsActive reports whether the account may establish a session.
func (a *Account) IsActive() bool {
	return a.Status == StatusActive
}
