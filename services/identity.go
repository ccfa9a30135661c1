package services

// Roles are a closed set. Access checks compare against these tags, there is
// no role hierarchy.
const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// Identity is the resolved caller identity handed down by the API layer.
// A nil *Identity means a guest caller.
type Identity struct {
	UserID uint
	Role   string
}

func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == RoleAdmin
}
