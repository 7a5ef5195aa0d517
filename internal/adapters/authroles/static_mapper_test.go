package authroles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/jobagent/jobagent/internal/domain/auth"
)

func TestStaticMapper_Map(t *testing.T) {
	mapper := NewStaticMapper("jobagent-admins")

	tests := []struct {
		name   string
		groups []string
		want   domainauth.Role
	}{
		{"admin group present", []string{"engineering", "jobagent-admins"}, domainauth.RoleAdmin},
		{"admin group only", []string{"jobagent-admins"}, domainauth.RoleAdmin},
		{"no admin group", []string{"engineering", "recruiting"}, domainauth.RoleCandidate},
		{"no groups", nil, domainauth.RoleCandidate},
		{"empty groups", []string{}, domainauth.RoleCandidate},
		{"case sensitive match", []string{"JobAgent-Admins"}, domainauth.RoleCandidate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapper.Map(tt.groups))
		})
	}
}

func TestStaticMapper_EmptyAdminGroup(t *testing.T) {
	mapper := NewStaticMapper("")

	// With no admin group configured nothing maps to admin, not even an
	// empty-string group claim.
	assert.Equal(t, domainauth.RoleCandidate, mapper.Map([]string{""}))
	assert.Equal(t, domainauth.RoleCandidate, mapper.Map([]string{"jobagent-admins"}))
}
