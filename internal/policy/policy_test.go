package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilityTable(t *testing.T) {
	svc, err := NewService()
	assert.NoError(t, err)

	cases := []struct {
		role     string
		resource string
		action   string
		want     bool
	}{
		{RoleManager, ResourceLead, ActionCreate, true},
		{RoleBoss, ResourceLead, ActionDelete, true},
		{RoleRep, ResourceLead, ActionCreate, false},
		{RoleRep, ResourceLead, ActionRead, true},
		{RoleRep, ResourceProduct, ActionUpdate, false},
		{RoleBackOffice, ResourceOrder, ActionUpdate, true},
		{RoleDispatchSupervisor, ResourceOrder, ActionUpdate, true},
		{RoleDispatchSupervisor, ResourceOrder, ActionCreate, false},
		{RoleRep, ResourceOrder, ActionCreate, true},
		{RoleRep, ResourceStaff, ActionRead, false},
		{RoleManager, ResourceStaff, ActionDelete, true},
		{RoleRep, ResourceAttendance, ActionCreate, true},
		{RoleRep, ResourceTask, ActionComplete, true},
		{RoleBackOffice, ResourceTask, ActionComplete, false},
		{RoleRep, ResourceProfile, ActionUpdate, true},
	}

	for _, tc := range cases {
		got, err := svc.Allowed(tc.role, tc.resource, tc.action)
		assert.NoError(t, err)
		assert.Equalf(t, tc.want, got, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}

func TestCanReadAll(t *testing.T) {
	assert.True(t, CanReadAll(RoleManager))
	assert.True(t, CanReadAll(RoleBoss))
	assert.False(t, CanReadAll(RoleRep))
	assert.False(t, CanReadAll("unknown"))
}
