package domain

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleMechanic Role = "mechanic"
	RoleOperator Role = "operator"
)

// CanManage reports whether the role carries blanket authority over tasks.
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleManager
}

// Assignable reports whether users with this role may hold task assignments.
func (r Role) Assignable() bool {
	return r == RoleMechanic || r == RoleOperator
}

type User struct {
	ID     uint64
	Name   string
	Role   Role
	Active bool
}

// Actor is the identity on whose behalf a mutation runs. It is always passed
// explicitly; there is no ambient current-user state.
type Actor struct {
	ID   uint64
	Role Role
}
