package roles

// Role is the permission level of an account.
type Role string

const (
	Staff   Role = "staff"
	Manager Role = "manager"
	Admin   Role = "admin"
)

type HierarchyLevel int

const (
	StaffLevel   HierarchyLevel = 1
	ManagerLevel HierarchyLevel = 2
	AdminLevel   HierarchyLevel = 3
)

// GetHierarchyLevel maps unknown roles to the lowest level.
func (r Role) GetHierarchyLevel() HierarchyLevel {
	switch r {
	case Staff:
		return StaffLevel
	case Manager:
		return ManagerLevel
	case Admin:
		return AdminLevel
	default:
		return StaffLevel
	}
}

func (r Role) HasPermission(requiredRole Role) bool {
	return r.IsValid() && r.GetHierarchyLevel() >= requiredRole.GetHierarchyLevel()
}

func (r Role) IsValid() bool {
	switch r {
	case Staff, Manager, Admin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
