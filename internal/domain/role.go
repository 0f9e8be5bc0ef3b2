package domain

// Role selects which account collection a record belongs to.
type Role string

const (
	RoleUser       Role = "user"
	RoleShopkeeper Role = "shopkeeper"
)

// Roles lists every recognized role.
var Roles = []Role{RoleUser, RoleShopkeeper}

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleShopkeeper
}

// Collection maps a role onto its account collection. Anything that is not a
// shopkeeper lands in the user collection.
func (r Role) Collection() Role {
	if r == RoleShopkeeper {
		return RoleShopkeeper
	}
	return RoleUser
}
