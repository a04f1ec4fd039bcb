package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Role
		ok       bool
	}{
		{name: "exact", input: "ROLE_ADMIN", expected: RoleAdmin, ok: true},
		{name: "lowercase", input: "role_doctor", expected: RoleDoctor, ok: true},
		{name: "padded", input: "  role_patient ", expected: RolePatient, ok: true},
		{name: "empty", input: "", ok: false},
		{name: "unknown", input: "ROLE_GUEST", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, ok := ParseRole(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, role)
		})
	}
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleStaff.Valid())
	assert.False(t, Role("role_staff").Valid())
	assert.False(t, Role("").Valid())
}
