package policy

// Roles a CompanyUser can hold within a tenant.
const (
	RoleBoss               = "boss"
	RoleManager            = "manager"
	RoleRep                = "rep"
	RoleBackOffice         = "back_office"
	RoleDispatchSupervisor = "dispatch_supervisor"
)

// Resources and actions the API gates on.
const (
	ResourceLead       = "lead"
	ResourceProduct    = "product"
	ResourceTask       = "task"
	ResourceShop       = "shop"
	ResourceStaff      = "staff"
	ResourceOrder      = "order"
	ResourceVisit      = "visit"
	ResourceAttendance = "attendance"
	ResourceProfile    = "profile"

	ActionRead     = "read"
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionComplete = "complete"
)

// Capability is one (role, resource, action) grant. The table below is the
// whole authorization surface; services additionally narrow rep access to
// rows the rep owns.
type Capability struct {
	Role     string
	Resource string
	Action   string
}

var managerial = []string{RoleBoss, RoleManager}
var everyone = []string{RoleBoss, RoleManager, RoleRep, RoleBackOffice, RoleDispatchSupervisor}

func grantAll(roles []string, resource string, actions ...string) []Capability {
	var out []Capability
	for _, role := range roles {
		for _, action := range actions {
			out = append(out, Capability{Role: role, Resource: resource, Action: action})
		}
	}
	return out
}

// Capabilities returns the full static grant table.
func Capabilities() []Capability {
	var caps []Capability

	// Sales pipeline: everyone reads, managers write.
	caps = append(caps, grantAll(everyone, ResourceLead, ActionRead)...)
	caps = append(caps, grantAll(managerial, ResourceLead, ActionCreate, ActionUpdate, ActionDelete)...)

	caps = append(caps, grantAll(everyone, ResourceProduct, ActionRead)...)
	caps = append(caps, grantAll(managerial, ResourceProduct, ActionCreate, ActionUpdate, ActionDelete)...)

	caps = append(caps, grantAll(everyone, ResourceTask, ActionRead)...)
	caps = append(caps, grantAll(managerial, ResourceTask, ActionCreate, ActionUpdate, ActionDelete)...)
	// Reps close out their own tasks; the service checks ownership.
	caps = append(caps, grantAll([]string{RoleRep, RoleBoss, RoleManager}, ResourceTask, ActionComplete)...)

	caps = append(caps, grantAll(everyone, ResourceShop, ActionRead)...)
	caps = append(caps, grantAll(managerial, ResourceShop, ActionCreate, ActionUpdate, ActionDelete)...)

	caps = append(caps, grantAll(managerial, ResourceStaff, ActionRead, ActionCreate, ActionUpdate, ActionDelete)...)

	caps = append(caps, grantAll(everyone, ResourceOrder, ActionRead)...)
	caps = append(caps, grantAll([]string{RoleRep, RoleBoss, RoleManager, RoleBackOffice}, ResourceOrder, ActionCreate)...)
	caps = append(caps, grantAll([]string{RoleBoss, RoleManager, RoleBackOffice, RoleDispatchSupervisor}, ResourceOrder, ActionUpdate)...)

	caps = append(caps, grantAll(everyone, ResourceVisit, ActionRead)...)
	caps = append(caps, grantAll([]string{RoleRep, RoleBoss, RoleManager}, ResourceVisit, ActionCreate)...)

	caps = append(caps, grantAll(everyone, ResourceAttendance, ActionRead, ActionCreate)...)

	caps = append(caps, grantAll(everyone, ResourceProfile, ActionRead, ActionUpdate)...)

	return caps
}

// CanReadAll reports whether a role sees every company row, as opposed to a
// rep who only sees rows it owns.
func CanReadAll(role string) bool {
	switch role {
	case RoleBoss, RoleManager, RoleBackOffice, RoleDispatchSupervisor:
		return true
	default:
		return false
	}
}

// ValidRole reports whether role is one of the known membership roles.
func ValidRole(role string) bool {
	switch role {
	case RoleBoss, RoleManager, RoleRep, RoleBackOffice, RoleDispatchSupervisor:
		return true
	default:
		return false
	}
}
