package models

// Numeric role discriminators used by the backend. The landing area a user is
// routed to after login is keyed off these; any other value is rejected at login.
const (
	RoleIDAdmin     = 1
	RoleIDInspector = 2
)

// Console routes handed back to the caller after auth transitions.
const (
	RouteAdminHome     = "/dashboard"
	RouteInspectorHome = "/inspector"
	RouteLogin         = "/login"
)

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	RoleID int    `json:"roleId,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

// UserPatch is a partial update applied to the current user. Nil fields are
// left untouched.
type UserPatch struct {
	Name   *string
	Email  *string
	Role   *string
	RoleID *int
	Phone  *string
}

// Apply merges the patch into u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.RoleID != nil {
		u.RoleID = *p.RoleID
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
}
