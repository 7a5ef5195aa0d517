package authroles

import (
	domainauth "github.com/jobagent/jobagent/internal/domain/auth"
	"github.com/jobagent/jobagent/internal/ports"
)

// StaticMapper maps IdP group claims to an application role by simple string
// membership. Anyone in the configured admin group becomes an admin; everyone
// else is a candidate.
type StaticMapper struct {
	AdminGroup string
}

var _ ports.RoleMapper = StaticMapper{}

// NewStaticMapper creates a mapper with the given admin group name. An empty
// admin group means no group ever maps to admin.
func NewStaticMapper(adminGroup string) StaticMapper {
	return StaticMapper{AdminGroup: adminGroup}
}

func (m StaticMapper) Map(groups []string) domainauth.Role {
	for _, g := range groups {
		if m.AdminGroup != "" && g == m.AdminGroup {
			return domainauth.RoleAdmin
		}
	}
	return domainauth.RoleCandidate
}
