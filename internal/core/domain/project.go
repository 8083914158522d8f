package domain

import (
	"errors"
	"time"
)

// Member roles. Only Administrators may mutate a project or enroll members.
const (
	RoleAdministrator = "Administrator"
	RoleMember        = "Member"
)

var ErrProjectNotFound = errors.New("project not found")
var ErrForbidden = errors.New("access forbidden")
var ErrAlreadyMember = errors.New("user is already a member of the project")

// Member is a project-scoped snapshot of a User taken at enrollment time.
// FullName and Avatar are intentionally not kept in sync with later edits to
// the canonical User record.
type Member struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Avatar    string `json:"avatar,omitempty"`
	Role      string `json:"role"`
}

// NewMemberSnapshot builds a Member from a canonical User with the given role.
// The ID is assigned by the repository on insert.
func NewMemberSnapshot(u *User, role string) *Member {
	return &Member{
		Email:    u.Email,
		FullName: u.FullName(),
		Avatar:   u.Avatar,
		Role:     role,
	}
}

// Project is the aggregate root. Members and Tasks hold ordered lists of
// member/task identifiers; hydration into full records happens in the
// repository via joins.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Members     []string  `json:"members"`
	Tasks       []string  `json:"tasks"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectView is a project with its relation lists hydrated into full
// records. Tasks is only populated by slug lookups; ID lookups resolve
// members alone.
type ProjectView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Members     []Member  `json:"members"`
	Tasks       []Task    `json:"tasks"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsAuthorized reports whether the actor identified by email may perform
// administrative mutations on a project, given its resolved member set.
// It is a pure predicate over already-loaded data; callers translate a
// false result into ErrForbidden.
func IsAuthorized(members []Member, actorEmail string) bool {
	for _, m := range members {
		if m.Email == actorEmail && m.Role == RoleAdministrator {
			return true
		}
	}
	return false
}

// HasMemberEmail reports whether email is already enrolled in the view.
func (v *ProjectView) HasMemberEmail(email string) bool {
	for _, m := range v.Members {
		if m.Email == email {
			return true
		}
	}
	return false
}

// Administrator returns the first member holding the Administrator role,
// or nil when none is resolved.
func (v *ProjectView) Administrator() *Member {
	for i := range v.Members {
		if v.Members[i].Role == RoleAdministrator {
			return &v.Members[i]
		}
	}
	return nil
}
