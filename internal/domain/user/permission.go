package user

import (
	"sort"
	"strings"
)

// Capability is a "resource:action" grant, e.g. "leaves:approve".
type Capability string

func NewCapability(resource, action string) Capability {
	return Capability(resource + ":" + action)
}

func (c Capability) Resource() string {
	resource, _, _ := strings.Cut(string(c), ":")
	return resource
}

func (c Capability) Action() string {
	_, action, _ := strings.Cut(string(c), ":")
	return action
}

const (
	CapDashboardView Capability = "dashboard:view"
	CapChatView      Capability = "chat:view"

	CapAttendanceView Capability = "attendence:view"
	CapAttendanceAdd  Capability = "attendence:add"
	CapAttendanceEdit Capability = "attendence:edit"

	CapEmployeesView Capability = "employees:view"
	CapEmployeesAdd  Capability = "employees:add"
	CapEmployeesEdit Capability = "employees:edit"

	CapDepartmentsView  Capability = "departments:view"
	CapDepartmentsAdd   Capability = "departments:add"
	CapDepartmentsEdit  Capability = "departments:edit"
	CapDesignationsView Capability = "designations:view"
	CapDesignationsAdd  Capability = "designations:add"
	CapDesignationsEdit Capability = "designations:edit"

	CapPayrollView     Capability = "payroll:view"
	CapPayrollGenerate Capability = "payroll:generate"
	CapPayrollEdit     Capability = "payroll:edit"

	CapLeavesView       Capability = "leaves:view"
	CapLeavesApply      Capability = "leaves:apply"
	CapLeavesTeam       Capability = "leaves:teams_leave"
	CapLeavesApprove    Capability = "leaves:approve"
	CapLeavesReject     Capability = "leaves:reject"
	CapPerformanceView  Capability = "performance:view"
	CapPerformanceAdd   Capability = "performance:add"
	CapPerformanceEdit  Capability = "performance:edit"
	CapNotificationView Capability = "notifications:view"
	CapNotificationSend Capability = "notifications:send"
	CapReportsView      Capability = "reports:view"

	CapRolesView   Capability = "roles:view"
	CapRolesAdd    Capability = "roles:add"
	CapRolesEdit   Capability = "roles:edit"
	CapRolesDelete Capability = "roles:delete"
	CapUsersView   Capability = "users:view"
	CapUsersEdit   Capability = "users:edit"
)

// DefaultCapabilities is used when a user has no custom role.
var DefaultCapabilities = map[Role][]Capability{
	RoleAdmin: {
		CapDashboardView, CapChatView,
		CapAttendanceView, CapAttendanceAdd, CapAttendanceEdit,
		CapEmployeesView, CapEmployeesAdd, CapEmployeesEdit,
		CapDepartmentsView, CapDepartmentsAdd, CapDepartmentsEdit,
		CapDesignationsView, CapDesignationsAdd, CapDesignationsEdit,
		CapPayrollView, CapPayrollGenerate, CapPayrollEdit,
		CapLeavesView, CapLeavesApprove, CapLeavesReject,
		CapPerformanceView, CapPerformanceAdd, CapPerformanceEdit,
		CapNotificationView, CapNotificationSend,
		CapReportsView,
		CapRolesView, CapRolesAdd, CapRolesEdit, CapRolesDelete,
		CapUsersView, CapUsersEdit,
	},
	RoleHR: {
		CapDashboardView, CapChatView,
		CapAttendanceView, CapAttendanceAdd, CapAttendanceEdit,
		CapEmployeesView, CapEmployeesAdd, CapEmployeesEdit,
		CapDepartmentsView, CapDepartmentsAdd, CapDepartmentsEdit,
		CapDesignationsView, CapDesignationsAdd, CapDesignationsEdit,
		CapPayrollView, CapPayrollGenerate,
		CapLeavesView, CapLeavesApprove, CapLeavesReject,
		CapPerformanceView, CapPerformanceAdd, CapPerformanceEdit,
		CapNotificationView, CapNotificationSend,
		CapReportsView,
	},
	RoleManager: {
		CapDashboardView, CapChatView,
		CapAttendanceView, CapAttendanceAdd, CapAttendanceEdit,
		CapEmployeesView,
		CapPayrollView,
		CapLeavesView, CapLeavesTeam, CapLeavesApprove, CapLeavesReject,
		CapPerformanceView, CapPerformanceAdd, CapPerformanceEdit,
		CapNotificationView, CapNotificationSend,
		CapReportsView,
	},
	RoleEmployee: {
		CapDashboardView, CapChatView,
		CapAttendanceView, CapAttendanceAdd, CapAttendanceEdit,
		CapPayrollView,
		CapLeavesView, CapLeavesApply,
		CapPerformanceView,
		CapNotificationView,
		CapReportsView,
	},
}

// Catalog returns every known capability, sorted.
func Catalog() []Capability {
	set := make(CapabilitySet)
	for _, caps := range DefaultCapabilities {
		for _, c := range caps {
			set[c] = struct{}{}
		}
	}
	return set.List()
}

// CapabilitySet is resolved once at login and carried in the Session.
type CapabilitySet map[Capability]struct{}

func NewCapabilitySet(caps ...Capability) CapabilitySet {
	set := make(CapabilitySet, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// List returns the capabilities sorted.
func (s CapabilitySet) List() []Capability {
	out := make([]Capability, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Grouped returns actions keyed by resource, the shape the UI renders.
func (s CapabilitySet) Grouped() map[string][]string {
	out := make(map[string][]string)
	for _, c := range s.List() {
		out[c.Resource()] = append(out[c.Resource()], c.Action())
	}
	return out
}

// ResolveCapabilities prefers the custom role's grants and falls back to the
// built-in map when the role has none.
func ResolveCapabilities(role Role, custom []Capability) CapabilitySet {
	if len(custom) > 0 {
		return NewCapabilitySet(custom...)
	}
	return NewCapabilitySet(DefaultCapabilities[role]...)
}
