package domain

// Principal is the resolved identity for one request or one issued token.
// It is derived from a stored customer record and never persisted.
type Principal struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// NewPrincipal creates a principal for a customer and its role name.
func NewPrincipal(username, role string) Principal {
	return Principal{
		Username: username,
		Role:     role,
	}
}

// Authority returns the authority string carried inside issued tokens.
func (p Principal) Authority() string {
	return "ROLE_" + p.Role
}

// HasRole reports whether the principal carries the given role name.
func (p Principal) HasRole(role string) bool {
	return p.Role == role
}
