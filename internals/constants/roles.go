package constants

// System roles seeded per tenant; immutable via the roles API.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStaff   = "staff"
	RoleStudent = "student"
	RoleParent  = "parent"
)

var SystemRoles = []string{RoleAdmin, RoleTeacher, RoleStaff, RoleStudent, RoleParent}

// Permission slugs follow resource.action.
var DefaultRolePermissions = map[string][]string{
	RoleAdmin: {
		"classes.manage", "sections.manage", "subjects.manage", "academic_years.manage",
		"staff.manage", "students.manage", "parents.manage",
		"fees.manage", "incomes.manage", "expenses.manage",
		"hostel.manage", "inventory.manage", "transport.manage", "library.manage",
		"visitors.manage", "roles.manage", "users.manage",
	},
	RoleTeacher: {
		"classes.read", "sections.read", "subjects.read", "students.read",
	},
	RoleStaff: {
		"inventory.read", "visitors.manage", "library.manage",
	},
	RoleStudent: {"fees.read"},
	RoleParent:  {"fees.read"},
}
