package domain

type ContextKey string

const UserContextKey ContextKey = "user"

// User is the authenticated principal reconstructed from JWT claims by
// the auth middleware. Rule administration requires the admin role.
type User struct {
	ID    string `json:"id"` // UUID
	Email string `json:"email"`
	Role  string `json:"role"`
}

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)
