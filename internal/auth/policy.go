package auth

import "slices"

// Capability names a group of operations guarded by the same roles.
type Capability string

const (
	CapCylinderRead       Capability = "cylinder.read"
	CapCylinderTransition Capability = "cylinder.transition"
	CapCylinderManage     Capability = "cylinder.manage"
	CapCompanyRead        Capability = "company.read"
	CapCompanyManage      Capability = "company.manage"
	CapLedgerOwn          Capability = "ledger.own"
	CapReportRead         Capability = "report.read"
	CapUserManage         Capability = "user.manage"
)

var policy = map[Capability][]Role{
	CapCylinderRead:       {RoleWorker, RoleAdmin},
	CapCylinderTransition: {RoleWorker, RoleAdmin},
	CapCylinderManage:     {RoleAdmin},
	CapCompanyRead:        {RoleWorker, RoleAdmin},
	CapCompanyManage:      {RoleAdmin},
	CapLedgerOwn:          {RoleWorker, RoleAdmin},
	CapReportRead:         {RoleAdmin},
	CapUserManage:         {RoleAdmin},
}

// Allows reports whether role holds capability. Unknown capabilities are
// denied.
func Allows(role Role, capability Capability) bool {
	return slices.Contains(policy[capability], role)
}
