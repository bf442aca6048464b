package entities

// Role is a privileged-operation capability tag.
type Role string

const (
	RoleOwner           Role = "OWNER"
	RoleBridge          Role = "BRIDGE"
	RoleEmergencyAdmin  Role = "EMERGENCY_ADMIN"
	RoleTaxManagerOwner Role = "TAX_MANAGER_OWNER"
)

// RoleSet is the explicit set of roles held by one account. Computed once
// per request and passed into authorization checks, never re-derived from
// address comparisons at call sites.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from role tags.
func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// Has reports whether the set contains r.
func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}
