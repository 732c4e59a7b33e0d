package user

// Role names known to the system. The excluded auth layer assigns them;
// this core only compares against them.
const (
	RoleManager    = "MANAGER"
	RoleAccountant = "ACCOUNTANT"
	RolePurchasing = "PURCHASING"
	RoleSales      = "SALES"
	RoleClient     = "CLIENT"
)

// User is the authenticated identity supplied per request by the excluded
// auth layer. It is never persisted by this core.
type User struct {
	Username string
	Active   bool
	Roles    []string
}

func New(username string, active bool, roles ...string) *User {
	return &User{
		Username: username,
		Active:   active,
		Roles:    roles,
	}
}

// HasRole reports whether the user carries the exact role name.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the user's role set intersects the given roles.
func (u *User) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if u.HasRole(r) {
			return true
		}
	}
	return false
}
