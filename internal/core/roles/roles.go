package roles

// Role is the closed set of positions in the company hierarchy. Handlers and
// services compare against these constants only; raw strings from storage are
// parsed once at the boundary.
type Role string

const (
	RoleOperator          Role = "OPERATOR"
	RoleSupervisor        Role = "SUPERVISOR"
	RoleGeneralSupervisor Role = "GENERAL_SUPERVISOR"
	RoleManager           Role = "MANAGER"
	RoleSecretary         Role = "SECRETARY"
	RoleDirector          Role = "DIRECTOR"
	RoleAdmin             Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOperator, RoleSupervisor, RoleGeneralSupervisor,
		RoleManager, RoleSecretary, RoleDirector, RoleAdmin:
		return true
	}
	return false
}

// Operation names the inbound commands gated by the capability table.
type Operation string

const (
	OpCreateAssignment  Operation = "assignment.create"
	OpApproveAssignment Operation = "assignment.approve"
	OpRejectAssignment  Operation = "assignment.reject"
	OpReassignOperator  Operation = "assignment.reassign"
	OpEndAssignment     Operation = "assignment.end"
	OpListAssignments   Operation = "assignment.list"
	OpRegisterOperator  Operation = "registration.operator"
	OpViewDashboard     Operation = "dashboard.view"
)

// capabilities maps each role to the operations it may perform. This replaces
// the ad hoc role-name string comparisons that used to be scattered through
// the request handlers.
var capabilities = map[Role]map[Operation]bool{
	RoleAdmin: allOperations(),
	RoleDirector: {
		OpCreateAssignment:  true,
		OpApproveAssignment: true,
		OpRejectAssignment:  true,
		OpReassignOperator:  true,
		OpEndAssignment:     true,
		OpListAssignments:   true,
		OpRegisterOperator:  true,
		OpViewDashboard:     true,
	},
	RoleManager: {
		OpCreateAssignment:  true,
		OpApproveAssignment: true,
		OpRejectAssignment:  true,
		OpReassignOperator:  true,
		OpEndAssignment:     true,
		OpListAssignments:   true,
		OpRegisterOperator:  true,
		OpViewDashboard:     true,
	},
	RoleGeneralSupervisor: {
		OpCreateAssignment:  true,
		OpApproveAssignment: true,
		OpRejectAssignment:  true,
		OpReassignOperator:  true,
		OpEndAssignment:     true,
		OpListAssignments:   true,
		OpRegisterOperator:  true,
		OpViewDashboard:     true,
	},
	RoleSupervisor: {
		OpCreateAssignment: true,
		OpListAssignments:  true,
		OpViewDashboard:    true,
	},
	RoleSecretary: {
		OpCreateAssignment: true,
		OpRegisterOperator: true,
		OpListAssignments:  true,
	},
	RoleOperator: {},
}

func allOperations() map[Operation]bool {
	return map[Operation]bool{
		OpCreateAssignment:  true,
		OpApproveAssignment: true,
		OpRejectAssignment:  true,
		OpReassignOperator:  true,
		OpEndAssignment:     true,
		OpListAssignments:   true,
		OpRegisterOperator:  true,
		OpViewDashboard:     true,
	}
}

// Can reports whether the role is allowed to perform the operation.
func Can(r Role, op Operation) bool {
	ops, ok := capabilities[r]
	if !ok {
		return false
	}
	return ops[op]
}

// HasApprovalAuthority reports whether assignments created by this role enter
// ACTIVE directly instead of waiting in PENDING.
func HasApprovalAuthority(r Role) bool {
	return Can(r, OpApproveAssignment)
}

// UnrestrictedScope reports whether the role sees every supervisor rather
// than a hierarchy-resolved subset.
func UnrestrictedScope(r Role) bool {
	return r == RoleManager || r == RoleDirector || r == RoleAdmin
}
