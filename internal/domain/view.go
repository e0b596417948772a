package domain

// View identifies one mutually-exclusive screen of the application.
type View string

const (
	ViewLogin          View = "login"
	ViewRegister       View = "register"
	ViewProducts       View = "products"
	ViewCart           View = "cart"
	ViewAdmin          View = "admin"
	ViewAdminDashboard View = "admin-dashboard"
)

// HomeView is the landing view for a role. Home views are always
// permitted for their role, which makes role-guard redirects terminal.
func HomeView(identity *Identity) View {
	switch {
	case identity == nil:
		return ViewLogin
	case identity.Role == RoleAdmin:
		return ViewAdminDashboard
	default:
		return ViewProducts
	}
}
