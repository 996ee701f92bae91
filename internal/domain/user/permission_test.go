package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCapabilities(t *testing.T) {
	t.Run("falls back to built-in role map", func(t *testing.T) {
		caps := ResolveCapabilities(RoleEmployee, nil)
		assert.True(t, caps.Has(CapLeavesApply))
		assert.False(t, caps.Has(CapLeavesApprove))
	})

	t.Run("custom role replaces defaults", func(t *testing.T) {
		caps := ResolveCapabilities(RoleEmployee, []Capability{CapReportsView})
		assert.True(t, caps.Has(CapReportsView))
		assert.False(t, caps.Has(CapLeavesApply))
	})
}

func TestCapabilitySet_Grouped(t *testing.T) {
	set := NewCapabilitySet(CapLeavesView, CapLeavesApprove, CapPayrollView)
	assert.Equal(t, map[string][]string{
		"leaves":  {"approve", "view"},
		"payroll": {"view"},
	}, set.Grouped())
}

func TestCapability_Parts(t *testing.T) {
	c := NewCapability("roles", "delete")
	assert.Equal(t, CapRolesDelete, c)
	assert.Equal(t, "roles", c.Resource())
	assert.Equal(t, "delete", c.Action())
}

func TestCatalog_CoversAllRoles(t *testing.T) {
	catalog := NewCapabilitySet(Catalog()...)
	for role, caps := range DefaultCapabilities {
		for _, c := range caps {
			assert.Truef(t, catalog.Has(c), "%s grant %s missing from catalog", role, c)
		}
	}
	assert.True(t, catalog.Has(CapLeavesTeam))
}

func TestSession_CanAccessEmployee(t *testing.T) {
	employee := Session{Role: RoleEmployee, EmployeeID: "e1"}
	assert.True(t, employee.CanAccessEmployee("e1"))
	assert.False(t, employee.CanAccessEmployee("e2"))

	hr := Session{Role: RoleHR, EmployeeID: "h1"}
	assert.True(t, hr.CanAccessEmployee("e2"))
	assert.True(t, hr.IsPrivileged())
}
