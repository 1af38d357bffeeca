package models

// Actor roles supplied by the identity layer.
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// Actor is the authenticated caller, threaded explicitly into every core
// operation instead of being read from ambient request state.
type Actor struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// IsStaff reports whether the actor holds staff or admin privileges.
func (a Actor) IsStaff() bool {
	return a.Role == RoleStaff || a.Role == RoleAdmin
}
