package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequirement_SatisfiedBy(t *testing.T) {
	tests := []struct {
		name        string
		requirement Requirement
		caps        CapabilitySet
		want        bool
	}{
		{"empty requirement", Requirement{}, NewCapabilitySet(nil, nil), true},
		{"any role matched", Requirement{AnyRole: []string{"admin", "editor"}}, NewCapabilitySet([]string{"editor"}, nil), true},
		{"any role missing", Requirement{AnyRole: []string{"admin"}}, NewCapabilitySet([]string{"viewer"}, nil), false},
		{"all permissions", Requirement{AllPermissions: []string{"a", "b"}}, NewCapabilitySet(nil, []string{"a", "b", "c"}), true},
		{"partial permissions", Requirement{AllPermissions: []string{"a", "b"}}, NewCapabilitySet(nil, []string{"a"}), false},
		{"role and permission", Requirement{AnyRole: []string{"admin"}, AllPermissions: []string{"a"}}, NewCapabilitySet([]string{"admin"}, nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.requirement.SatisfiedBy(tt.caps))
		})
	}
}

func TestGate_Allows(t *testing.T) {
	gate := CatalogWriter()

	assert.True(t, gate.Allows(NewCapabilitySet([]string{RoleAdmin}, nil)))
	assert.True(t, gate.Allows(NewCapabilitySet(nil, []string{CatalogWrite})))
	assert.False(t, gate.Allows(NewCapabilitySet([]string{"viewer"}, []string{"catalog:read"})))
	assert.True(t, Gate{}.Allows(NewCapabilitySet(nil, nil)))
}

func TestParseList(t *testing.T) {
	assert.Nil(t, ParseList(""))
	assert.Equal(t, []string{"admin", "catalog:write"}, ParseList(" admin, ,catalog:write "))
}

func TestNewCapabilitySet_IgnoresBlank(t *testing.T) {
	caps := NewCapabilitySet([]string{" ", "admin "}, []string{""})

	assert.True(t, caps.HasRole("admin"))
	assert.False(t, caps.HasRole(""))
	assert.False(t, caps.HasPermission(""))
}
