package entities

import "github.com/google/uuid"

// Role is the closed set of dashboard roles
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
)

var dashboardPaths = map[Role]string{
	RoleAdmin:   "/admin/dashboard",
	RoleTeacher: "/teacher/dashboard",
	RoleParent:  "/parent/dashboard",
}

// Roles lists every valid role
func Roles() []Role {
	return []Role{RoleAdmin, RoleTeacher, RoleParent}
}

// IsValid checks if the role is one of the known roles
func (r Role) IsValid() bool {
	_, ok := dashboardPaths[r]
	return ok
}

// DashboardPath returns the landing page for the role.
// Unknown roles land on the parent dashboard.
func (r Role) DashboardPath() string {
	if p, ok := dashboardPaths[r]; ok {
		return p
	}
	return dashboardPaths[RoleParent]
}

// Principal is the identity resolved for a single request
type Principal struct {
	UserID          uuid.UUID
	Email           string
	Name            string
	Role            Role
	SchoolID        *uuid.UUID
	UnlockedModules []string
}

// HasModule reports whether the principal's school unlocked the module
func (p *Principal) HasModule(moduleID string) bool {
	if p == nil {
		return false
	}
	for _, m := range p.UnlockedModules {
		if m == moduleID {
			return true
		}
	}
	return false
}

// HasRole reports whether the principal holds any of the given roles
func (p *Principal) HasRole(roles ...Role) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// School returns the principal's school or ErrNoSchool
func (p *Principal) School() (uuid.UUID, error) {
	if p == nil || p.SchoolID == nil || *p.SchoolID == uuid.Nil {
		return uuid.Nil, ErrNoSchool
	}
	return *p.SchoolID, nil
}
