package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		required Role
		expected bool
	}{
		{"staff reads", Staff, Staff, true},
		{"staff cannot delete", Staff, Manager, false},
		{"manager deletes", Manager, Manager, true},
		{"manager is not admin", Manager, Admin, false},
		{"admin does everything", Admin, Staff, true},
		{"unknown role is denied", Role("guest"), Staff, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.role.HasPermission(tt.required))
		})
	}
}
