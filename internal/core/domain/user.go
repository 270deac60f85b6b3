package domain

// Role is the coarse permission level carried by the identity credential.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// User is the identity projection the workflow needs: who someone is and
// whether they may act at all.
type User struct {
	UserID    string `json:"userID"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	IsActive  bool   `json:"isActive"`
	IsDeleted bool   `json:"isDeleted"`
}

// Actor is an already-authenticated caller.
type Actor struct {
	UserID string `json:"userID"`
	Role   Role   `json:"role"`
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
