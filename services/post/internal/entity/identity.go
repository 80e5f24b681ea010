package entity

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Identity is the caller on whose behalf a session or directory read runs.
type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
