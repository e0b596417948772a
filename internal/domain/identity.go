package domain

// Role gates view access and cart actions. The strings match the role
// column of the platform's profiles table.
type Role string

const (
	RoleBuyer Role = "comprador"
	RoleAdmin Role = "admin"
)

// Identity is the authenticated user's profile as held client-side.
type Identity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

func (i *Identity) IsBuyer() bool {
	return i != nil && i.Role == RoleBuyer
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
